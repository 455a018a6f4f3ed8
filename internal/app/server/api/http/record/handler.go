package record

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"employees/internal/app/server/api/http/apierror"
	"employees/internal/domain/record"
)

const deletedMessage = "Record deleted successfully"

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
	prod       bool
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares, prod bool) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
		prod:       prod,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.searchOp(), h.search)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	records, err := h.service.List(ctx)
	if err != nil {
		return nil, h.fail(err)
	}
	return &listOutput{Body: records}, nil
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*listOutput, error) {
	records, err := h.service.Search(ctx, input.Q)
	if err != nil {
		return nil, h.fail(err)
	}
	return &listOutput{Body: records}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*recordOutput, error) {
	rec, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, h.fail(err)
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	patch, hasKeys, err := decodePatch(input.RawBody)
	if err != nil {
		return nil, h.fail(err)
	}
	if !hasKeys {
		return nil, h.fail(record.ErrEmptyBody)
	}

	rec, err := h.service.Create(ctx, patch)
	if err != nil {
		return nil, h.fail(err)
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*recordOutput, error) {
	if _, err := record.ParseID(input.ID); err != nil {
		return nil, h.fail(err)
	}

	patch, _, err := decodePatch(input.RawBody)
	if err != nil {
		return nil, h.fail(err)
	}

	rec, err := h.service.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, h.fail(err)
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*deleteOutput, error) {
	rec, err := h.service.Delete(ctx, input.ID)
	if err != nil {
		return nil, h.fail(err)
	}
	return &deleteOutput{
		Body: deleteResponse{
			Message:       deletedMessage,
			DeletedRecord: rec,
		},
	}, nil
}

func (h *Handler) fail(err error) error {
	apiErr := apierror.FromDomain(err, h.prod)
	if apiErr.Status >= 500 {
		h.log.Error("request failed", "code", apiErr.Code, "error", err)
	}
	return apiErr
}
