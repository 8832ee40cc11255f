package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MarksMap maps subject name → obtained marks, stored as JSONB.
type MarksMap map[string]float64

// ResultModel is one graded row per (student, test); the partial unique
// index in the migration enforces that. Totals, percentage and grade are
// derived by the service layer before every save — never in hooks.
type ResultModel struct {
	ResultId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:result_id" json:"result_id"`

	ResultStudentId uuid.UUID `gorm:"type:uuid;not null;index;column:result_student_id" json:"result_student_id"`
	ResultTestId    uuid.UUID `gorm:"type:uuid;not null;index;column:result_test_id" json:"result_test_id"`

	ResultMarks MarksMap `gorm:"serializer:json;type:jsonb;column:result_marks" json:"result_marks"`

	ResultTotalMarks float64 `gorm:"not null;default:0;column:result_total_marks" json:"result_total_marks"`
	ResultPercentage float64 `gorm:"not null;default:0;column:result_percentage" json:"result_percentage"`
	ResultGrade      string  `gorm:"column:result_grade" json:"result_grade"`

	// absent rows stay on record but are excluded from ranking and statistics
	ResultIsAbsent bool `gorm:"default:false;index;column:result_is_absent" json:"result_is_absent"`
	ResultRank     int  `gorm:"default:0;column:result_rank" json:"result_rank"`

	ResultEnteredBy *uuid.UUID `gorm:"type:uuid;column:result_entered_by" json:"result_entered_by,omitempty"`

	ResultCreatedAt time.Time      `gorm:"column:result_created_at;autoCreateTime" json:"result_created_at"`
	ResultUpdatedAt *time.Time     `gorm:"column:result_updated_at;autoUpdateTime" json:"result_updated_at,omitempty"`
	ResultDeletedAt gorm.DeletedAt `gorm:"column:result_deleted_at;index" json:"result_deleted_at,omitempty"`
}

func (ResultModel) TableName() string { return "results" }
