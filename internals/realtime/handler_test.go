package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomsForAuthStudent(t *testing.T) {
	rooms := RoomsForAuth("student", "", "abc-123", "9", "A")
	assert.Equal(t, []string{
		"student:abc-123",
		"class:9",
		"class:9:A",
	}, rooms)
}

func TestRoomsForAuthStudentWithoutSection(t *testing.T) {
	rooms := RoomsForAuth("student", "", "abc-123", "9", "")
	assert.Equal(t, []string{"student:abc-123", "class:9"}, rooms)
}

func TestRoomsForAuthAdmin(t *testing.T) {
	rooms := RoomsForAuth("admin", "admin-1", "", "", "")
	assert.Equal(t, []string{"user:admin-1"}, rooms)
}

func TestRoomsForAuthUnknownRoleGetsNoUserRoom(t *testing.T) {
	assert.Empty(t, RoomsForAuth("visitor", "u-1", "", "", ""))
}

func TestRoomHelpers(t *testing.T) {
	assert.Equal(t, "student:s1", StudentRoom("s1"))
	assert.Equal(t, "user:u1", UserRoom("u1"))
	assert.Equal(t, "class:10", ClassRoom("10", ""))
	assert.Equal(t, "class:10:B", ClassRoom("10", "B"))
}
