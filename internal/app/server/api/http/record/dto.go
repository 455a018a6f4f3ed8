package record

import "employees/internal/domain/record"

type idInput struct {
	ID string `path:"id" example:"3f9c1a52-8d7e-4b8e-9a36-0c2f4d1e7b10" doc:"ID записи"`
}

type createInput struct {
	RawBody []byte
}

type updateInput struct {
	ID      string `path:"id" example:"3f9c1a52-8d7e-4b8e-9a36-0c2f4d1e7b10" doc:"ID записи"`
	RawBody []byte
}

type searchInput struct {
	Q string `query:"q" doc:"Подстрока для поиска по имени, фамилии, email и должности"`
}

type recordOutput struct {
	Body *record.Record
}

type listOutput struct {
	Body []record.Record
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Message       string         `json:"message" example:"Record deleted successfully"`
	DeletedRecord *record.Record `json:"deletedRecord"`
}
