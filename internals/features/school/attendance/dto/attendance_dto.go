package dto

import "github.com/google/uuid"

type MarkEntry struct {
	StudentId uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late"`
	Note      string    `json:"note"`
}

// BulkMarkRequest marks attendance for many students at once. Type decides
// which identifiers matter: class rows use date (+ optional class_session_id),
// test rows use test_id.
type BulkMarkRequest struct {
	Type           string      `json:"type" validate:"required,oneof=class test"`
	Date           string      `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ClassSessionId *uuid.UUID  `json:"class_session_id"`
	TestId         *uuid.UUID  `json:"test_id"`
	Entries        []MarkEntry `json:"entries" validate:"required,min=1,dive"`
}

type FilterAttendanceRequest struct {
	StudentId string `query:"student_id"`
	Type      string `query:"type"`
	TestId    string `query:"test_id"`
	DateFrom  string `query:"date_from"`
	DateTo    string `query:"date_to"`
	Status    string `query:"status"`
}

// ChangedStudent reports one row whose status actually changed in a bulk mark.
type ChangedStudent struct {
	StudentId uuid.UUID `json:"student_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
}

type BulkMarkResponse struct {
	Created         int              `json:"created"`
	Updated         int              `json:"updated"`
	ChangedStudents []ChangedStudent `json:"changed_students"`
}
