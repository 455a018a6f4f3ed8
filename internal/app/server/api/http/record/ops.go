package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// maxBodyBytes повторяет лимит тела в 10 МБ.
const maxBodyBytes = 10 << 20

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-list",
		Method:      http.MethodGet,
		Path:        "/records",
		Summary:     "Список записей, новые первыми",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "records-search",
		Method:      http.MethodGet,
		Path:        "/records/search",
		Summary:     "Поиск записей",
		Description: "Регистронезависимый поиск подстроки в firstname, lastname, email и designation.",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "record-get",
		Method:      http.MethodGet,
		Path:        "/record/{id}",
		Summary:     "Получить запись",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "record-create",
		Method:        http.MethodPost,
		Path:          "/record",
		Summary:       "Создать запись",
		Description:   "Все шесть полей обязательны. Email должен быть уникальным.",
		Tags:          []string{"records"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  maxBodyBytes,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID:  "record-update",
		Method:       http.MethodPatch,
		Path:         "/record/{id}",
		Summary:      "Частично обновить запись",
		Description:  "Меняются только переданные поля, остальные сохраняют прежние значения.",
		Tags:         []string{"records"},
		MaxBodyBytes: maxBodyBytes,
		Middlewares:  h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "record-delete",
		Method:      http.MethodDelete,
		Path:        "/record/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"records"},
		Middlewares: h.middleware,
	}
}
