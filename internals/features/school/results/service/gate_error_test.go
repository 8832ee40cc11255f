package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceService "coachingku_backend/internals/features/school/attendance/service"
)

func TestGateErrorCarriesDecision(t *testing.T) {
	err := error(&GateError{Decision: attendanceService.GateDecision{
		Allowed: false,
		Reason:  attendanceService.ReasonAttendanceNotMarked,
	}})
	assert.Equal(t, "result entry blocked by attendance gate: ATTENDANCE_NOT_MARKED", err.Error())

	// The controller unwraps with errors.As to build the 409 body.
	wrapped := fmt.Errorf("bulk save: %w", err)
	var gateErr *GateError
	require.True(t, errors.As(wrapped, &gateErr))
	assert.Equal(t, attendanceService.ReasonAttendanceNotMarked, gateErr.Decision.Reason)
	assert.False(t, gateErr.Decision.Allowed)
}

func TestGateErrorAbsentReason(t *testing.T) {
	err := &GateError{Decision: attendanceService.GateDecision{Reason: attendanceService.ReasonStudentAbsent}}
	assert.Contains(t, err.Error(), "STUDENT_ABSENT")
}
