package client

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"employees/internal/app/client/config"
)

// App связывает конфигурацию, логгер и клиент API для команд CLI.
type App struct {
	config *config.Config
	log    *slog.Logger
	api    *API
}

func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
		api:    NewAPI(cfg, log),
	}
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) API() *API {
	return a.api
}

// CheckConnection проверяет, что сервер отвечает и здоров.
func (a *App) CheckConnection(ctx context.Context) (*Health, error) {
	h, err := a.api.Health(ctx)
	if err != nil {
		return nil, err
	}
	if h.Status != "OK" {
		return h, fmt.Errorf("server reports status %q", h.Status)
	}
	return h, nil
}

// NewList creates a list view backed by the app's API client.
func (a *App) NewList() *List {
	return NewList(a.api, a.log)
}

// NewForm creates a create-mode form, or an edit-mode one when id is set.
func (a *App) NewForm(id string, navigate Navigator) *Form {
	if id == "" {
		return NewForm(a.api, navigate, a.log)
	}
	return NewEditForm(a.api, id, navigate, a.log)
}
