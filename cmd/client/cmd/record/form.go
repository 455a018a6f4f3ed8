package record

import (
	"fmt"

	"github.com/spf13/cobra"

	"employees/cmd/client/cmd/types"
	"employees/internal/app/client"
	"employees/internal/domain/record"
)

const maxAttempts = 3

func addFieldFlags(c *cobra.Command) {
	for _, f := range record.Fields {
		c.Flags().String(f, "", fieldLabels[f])
	}
}

// runForm проводит форму через загрузку, заполнение и отправку. В терминале
// недостающие и ошибочные поля запрашиваются интерактивно.
func runForm(cmd *cobra.Command, id string) error {
	app, err := types.App(cmd.Context())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var next string
	form := app.NewForm(id, func(route string) { next = route })

	if err := form.Load(ctx); err != nil {
		if form.State() == client.StateNotFound {
			return fmt.Errorf("запись %s не найдена", id)
		}
		return err
	}

	given := 0
	for _, f := range record.Fields {
		if !cmd.Flags().Changed(f) {
			continue
		}
		v, _ := cmd.Flags().GetString(f)
		if err := form.Set(f, v); err != nil {
			return err
		}
		given++
	}

	interactive := isInteractive(cmd.InOrStdin())
	p := newPrompter(cmd.InOrStdin(), out)
	if interactive {
		var ask []string
		for _, f := range record.Fields {
			v, _ := form.Draft().Get(f)
			if (form.Mode() == client.ModeEdit && given == 0) || v == "" {
				ask = append(ask, f)
			}
		}
		if err := p.fill(form, ask); err != nil {
			return err
		}
	}

	for attempt := 1; ; attempt++ {
		rec, err := form.Submit(ctx)
		if err == nil {
			if jsonMode(cmd) {
				return printJSON(out, rec)
			}
			successColor.Fprintf(out, "✓ Запись %s сохранена\n\n", rec.ID)
			if next == client.RouteList {
				return showList(cmd, app)
			}
			return nil
		}

		errs := form.Errors()
		if len(errs) == 0 {
			return err
		}
		fmt.Fprintln(errOut, "Исправьте поля:")
		printFieldErrors(errOut, errs)
		if !interactive || attempt >= maxAttempts {
			return err
		}

		var retry []string
		for _, f := range record.Fields {
			if _, ok := errs[f]; ok {
				retry = append(retry, f)
			}
		}
		if err := p.fill(form, retry); err != nil {
			return err
		}
	}
}

func showList(cmd *cobra.Command, app *client.App) error {
	list := app.NewList()
	if err := list.Load(cmd.Context()); err != nil {
		return err
	}
	return list.Render(cmd.OutOrStdout())
}
