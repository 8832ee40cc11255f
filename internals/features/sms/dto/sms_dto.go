package dto

import "github.com/google/uuid"

type SendResultSmsRequest struct {
	TestId uuid.UUID `json:"test_id" validate:"required"`
}

type SendCustomSmsRequest struct {
	Class      string      `json:"class"`
	Section    string      `json:"section"`
	StudentIds []uuid.UUID `json:"student_ids"`
	Message    string      `json:"message" validate:"required,min=3,max=640"`
	PhoneField string      `json:"phone_field" validate:"omitempty,oneof=student guardian both"`
}

type FilterSmsLogRequest struct {
	StudentId string `query:"student_id"`
	TestId    string `query:"test_id"`
	Type      string `query:"type"`
	Status    string `query:"status"`
	Phone     string `query:"phone"`
}
