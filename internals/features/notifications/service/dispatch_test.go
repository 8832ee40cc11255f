package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coachingku_backend/internals/features/notifications/model"
	"coachingku_backend/internals/realtime"
)

func inMemoryService() *Service {
	return &Service{Hub: realtime.NewHub()}
}

func TestAppendChannelDedups(t *testing.T) {
	s := inMemoryService()
	n := &model.NotificationModel{}

	s.appendChannel(n, "db")
	s.appendChannel(n, "socket")
	s.appendChannel(n, "socket")

	assert.Equal(t, []string{"db", "socket"}, []string(n.NotificationDeliveredChannels))
}

func TestDispatchRecordsSocketSynchronously(t *testing.T) {
	s := inMemoryService()
	n := &model.NotificationModel{
		NotificationRecipientType: "all",
		NotificationTitle:         "t",
	}

	s.Dispatch(n, Options{SendSocket: true})
	assert.Equal(t, []string{"socket"}, []string(n.NotificationDeliveredChannels))
}

func TestDispatchNeverRecordsPushWithoutDelivery(t *testing.T) {
	// VAPID keys absent: the push leg cannot send, so "push" must not be
	// claimed on the row.
	t.Setenv("VAPID_PUBLIC_KEY", "")
	t.Setenv("VAPID_PRIVATE_KEY", "")

	s := inMemoryService()
	n := &model.NotificationModel{
		NotificationRecipientType: "all",
		NotificationTitle:         "t",
	}

	s.Dispatch(n, Options{SendSocket: true, SendPush: true})
	assert.Equal(t, []string{"socket"}, []string(n.NotificationDeliveredChannels))
}
