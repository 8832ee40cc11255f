package dto

import (
	"github.com/google/uuid"

	"coachingku_backend/internals/features/school/results/service"
)

type BulkSaveResultsRequest struct {
	TestId       uuid.UUID             `json:"test_id" validate:"required"`
	Entries      []service.ResultEntry `json:"entries" validate:"required,min=1,dive"`
	OverrideGate bool                  `json:"override_gate"`
}

type SyncResultsRequest struct {
	TestId  uuid.UUID                   `json:"test_id" validate:"required"`
	Changed []service.ChangedAttendance `json:"changed" validate:"required,min=1,dive"`
}

type FilterResultRequest struct {
	TestId    string `query:"test_id"`
	StudentId string `query:"student_id"`
	Grade     string `query:"grade"`
}
