package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/school/attendance/model"
)

// Machine-readable gate refusal reasons. Clients key error UI off these.
const (
	ReasonAttendanceNotMarked    = "ATTENDANCE_NOT_MARKED"
	ReasonStudentNotInAttendance = "STUDENT_NOT_IN_ATTENDANCE"
	ReasonStudentAbsent          = "STUDENT_ABSENT"
)

type GateDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allowed() GateDecision            { return GateDecision{Allowed: true} }
func denied(reason string) GateDecision { return GateDecision{Allowed: false, Reason: reason} }

// DecideGate is the pure attendance-before-results rule: markedCount is the
// number of attendance rows recorded for the test, studentRow the requested
// student's row (nil when missing or when no student was requested).
func DecideGate(markedCount int64, studentRequested bool, studentRow *model.AttendanceModel) GateDecision {
	if markedCount == 0 {
		return denied(ReasonAttendanceNotMarked)
	}
	if !studentRequested {
		return allowed()
	}
	if studentRow == nil {
		return denied(ReasonStudentNotInAttendance)
	}
	if studentRow.AttendanceStatus == model.StatusAbsent {
		return denied(ReasonStudentAbsent)
	}
	return allowed()
}

// CanEnterResults enforces the attendance-before-results rule. With no
// student it only checks that the test has any attendance at all; with a
// student it additionally requires that student's row to exist and not be
// absent.
func CanEnterResults(db *gorm.DB, testID uuid.UUID, studentID *uuid.UUID) (GateDecision, error) {
	var count int64
	err := db.Model(&model.AttendanceModel{}).
		Where("attendance_type = ? AND attendance_test_id = ?", model.TypeTest, testID).
		Count(&count).Error
	if err != nil {
		return GateDecision{}, err
	}
	if count == 0 || studentID == nil {
		return DecideGate(count, false, nil), nil
	}

	var row model.AttendanceModel
	err = db.
		Where("attendance_type = ? AND attendance_test_id = ? AND attendance_student_id = ?",
			model.TypeTest, testID, *studentID).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return DecideGate(count, true, nil), nil
	}
	if err != nil {
		return GateDecision{}, err
	}
	return DecideGate(count, true, &row), nil
}

// InferAttendanceFromResult records a `present` test-attendance row for a
// student who has a result but no attendance yet: a saved result implies the
// student sat the test. Explicit and idempotent — an existing row wins.
// Returns whether a row was created.
func InferAttendanceFromResult(db *gorm.DB, studentID, testID uuid.UUID, testDate time.Time) (bool, error) {
	var count int64
	err := db.Model(&model.AttendanceModel{}).
		Where("attendance_type = ? AND attendance_test_id = ? AND attendance_student_id = ?",
			model.TypeTest, testID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	tid := testID
	row := model.AttendanceModel{
		AttendanceStudentId: studentID,
		AttendanceType:      model.TypeTest,
		AttendanceDate:      testDate,
		AttendanceTestId:    &tid,
		AttendanceStatus:    model.StatusPresent,
		AttendanceNote:      "inferred from result entry",
	}
	if err := db.Create(&row).Error; err != nil {
		return false, err
	}
	return true, nil
}
