package dto

import (
	"time"

	"github.com/google/uuid"

	m "coachingku_backend/internals/features/school/tests/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type SubjectRequest struct {
	Name     string `json:"name" validate:"required,max=60"`
	MaxMarks int    `json:"max_marks" validate:"required,gt=0"`
}

type CreateTestRequest struct {
	TestName    string `json:"test_name" validate:"required,max=160"`
	TestCode    string `json:"test_code" validate:"required,max=40"`
	TestClass   string `json:"test_class" validate:"required,max=20"`
	TestSection string `json:"test_section" validate:"omitempty,max=20"`

	TestDate      time.Time        `json:"test_date" validate:"required"`
	TestStartTime string           `json:"test_start_time" validate:"required,len=5"`
	TestEndTime   string           `json:"test_end_time" validate:"required,len=5"`
	TestSubjects  []SubjectRequest `json:"test_subjects" validate:"required,min=1,dive"`
}

func (r CreateTestRequest) ToModel() *m.TestModel {
	subjects := make(m.SubjectList, 0, len(r.TestSubjects))
	for _, s := range r.TestSubjects {
		subjects = append(subjects, m.Subject{Name: s.Name, MaxMarks: s.MaxMarks})
	}
	return &m.TestModel{
		TestName:      r.TestName,
		TestCode:      r.TestCode,
		TestClass:     r.TestClass,
		TestSection:   r.TestSection,
		TestDate:      r.TestDate,
		TestStartTime: r.TestStartTime,
		TestEndTime:   r.TestEndTime,
		TestSubjects:  subjects,
		TestStatus:    m.StatusScheduled,
	}
}

type UpdateTestRequest struct {
	TestName     *string          `json:"test_name" validate:"omitempty,max=160"`
	TestSection  *string          `json:"test_section" validate:"omitempty,max=20"`
	TestSubjects []SubjectRequest `json:"test_subjects" validate:"omitempty,min=1,dive"`
}

type RescheduleTestRequest struct {
	TestDate      time.Time `json:"test_date" validate:"required"`
	TestStartTime string    `json:"test_start_time" validate:"required,len=5"`
	TestEndTime   string    `json:"test_end_time" validate:"required,len=5"`
}

type FilterTestRequest struct {
	Class     string `query:"class"`
	Section   string `query:"section"`
	Status    string `query:"status"`
	Published *bool  `query:"published"`
	Search    string `query:"search"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type TestResponse struct {
	TestId uuid.UUID `json:"test_id"`

	TestName    string `json:"test_name"`
	TestCode    string `json:"test_code"`
	TestClass   string `json:"test_class"`
	TestSection string `json:"test_section,omitempty"`

	TestDate      time.Time     `json:"test_date"`
	TestStartTime string        `json:"test_start_time"`
	TestEndTime   string        `json:"test_end_time"`
	TestSubjects  m.SubjectList `json:"test_subjects"`

	TestTotalMaxMarks int        `json:"test_total_max_marks"`
	TestStatus        string     `json:"test_status"`
	TestIsPublished   bool       `json:"test_is_published"`
	TestPublishedAt   *time.Time `json:"test_published_at,omitempty"`

	TestCreatedAt time.Time `json:"test_created_at"`
}

func FromModel(t m.TestModel) TestResponse {
	return TestResponse{
		TestId:            t.TestId,
		TestName:          t.TestName,
		TestCode:          t.TestCode,
		TestClass:         t.TestClass,
		TestSection:       t.TestSection,
		TestDate:          t.TestDate,
		TestStartTime:     t.TestStartTime,
		TestEndTime:       t.TestEndTime,
		TestSubjects:      t.TestSubjects,
		TestTotalMaxMarks: t.TestTotalMaxMarks,
		TestStatus:        t.TestStatus,
		TestIsPublished:   t.TestIsPublished,
		TestPublishedAt:   t.TestPublishedAt,
		TestCreatedAt:     t.TestCreatedAt,
	}
}

func FromModels(list []m.TestModel) []TestResponse {
	out := make([]TestResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromModel(t))
	}
	return out
}
