package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coachingku_backend/internals/features/school/attendance/model"
)

func TestDecideGateNothingMarkedForTest(t *testing.T) {
	d := DecideGate(0, false, nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAttendanceNotMarked, d.Reason)

	// Count wins even when a specific student was asked about.
	d = DecideGate(0, true, &model.AttendanceModel{AttendanceStatus: model.StatusPresent})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAttendanceNotMarked, d.Reason)
}

func TestDecideGateTestLevelCheckOnly(t *testing.T) {
	d := DecideGate(30, false, nil)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Reason)
}

func TestDecideGateStudentMissingFromSheet(t *testing.T) {
	d := DecideGate(30, true, nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonStudentNotInAttendance, d.Reason)
}

func TestDecideGateAbsentStudent(t *testing.T) {
	d := DecideGate(30, true, &model.AttendanceModel{AttendanceStatus: model.StatusAbsent})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonStudentAbsent, d.Reason)
}

func TestDecideGatePresentAndLateStudentsPass(t *testing.T) {
	for _, status := range []string{model.StatusPresent, model.StatusLate} {
		d := DecideGate(30, true, &model.AttendanceModel{AttendanceStatus: status})
		assert.True(t, d.Allowed, "status=%s", status)
	}
}
