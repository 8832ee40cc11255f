package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coachingku_backend/internals/constants"
	"coachingku_backend/internals/features/notifications/model"
)

func sampleTestInfo() TestEventInfo {
	return TestEventInfo{
		TestID:    "t-1",
		Name:      "Weekly Test 5",
		Class:     "9",
		Section:   "A",
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func TestTestTemplateEvents(t *testing.T) {
	info := sampleTestInfo()

	typ, priority, title, msg := TestTemplate(EventCreated, info)
	assert.Equal(t, constants.NotifTestCreated, typ)
	assert.Equal(t, model.PriorityNormal, priority)
	assert.Equal(t, "New test scheduled", title)
	assert.Contains(t, msg, "Weekly Test 5")
	assert.Contains(t, msg, "02 Sep 2026")
	assert.Contains(t, msg, "10:00")

	typ, priority, _, _ = TestTemplate(EventCancelled, info)
	assert.Equal(t, constants.NotifTestCancelled, typ)
	assert.Equal(t, model.PriorityHigh, priority)

	typ, priority, _, _ = TestTemplate(EventRescheduled, info)
	assert.Equal(t, constants.NotifTestRescheduled, typ)
	assert.Equal(t, model.PriorityHigh, priority)

	typ, _, _, _ = TestTemplate(EventReminder, info)
	assert.Equal(t, constants.NotifTestReminder, typ)

	typ, priority, _, _ = TestTemplate(EventResultPublished, info)
	assert.Equal(t, constants.NotifResultPublished, typ)
	assert.Equal(t, model.PriorityHigh, priority)
}

func TestTestTemplateUnknownEventFallsBack(t *testing.T) {
	typ, priority, title, _ := TestTemplate("bogus", sampleTestInfo())
	assert.Equal(t, constants.NotifGeneral, typ)
	assert.Equal(t, model.PriorityNormal, priority)
	assert.Equal(t, "Weekly Test 5", title)
}

func TestClassSessionTemplateEvents(t *testing.T) {
	info := ClassSessionEventInfo{
		SessionID: "cs-1",
		Subject:   "Physics",
		Class:     "9",
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "16:00",
	}

	typ, _, title, msg := ClassSessionTemplate(EventCancelled, info)
	assert.Equal(t, constants.NotifClassCancelled, typ)
	assert.Equal(t, "Class cancelled", title)
	assert.Contains(t, msg, "Physics class")

	typ, _, _, msg = ClassSessionTemplate(EventReminder, info)
	assert.Equal(t, constants.NotifClassReminder, typ)
	assert.Contains(t, msg, "16:00")
}

func TestEmailAllowList(t *testing.T) {
	allowed := []string{
		constants.NotifTestCancelled,
		constants.NotifTestRescheduled,
		constants.NotifClassCancelled,
		constants.NotifClassRescheduled,
		constants.NotifResultPublished,
		constants.NotifPaymentReminder,
	}
	for _, typ := range allowed {
		assert.True(t, emailableTypes[typ], "%s should be emailable", typ)
	}

	assert.False(t, emailableTypes[constants.NotifTestCreated])
	assert.False(t, emailableTypes[constants.NotifTestReminder])
	assert.False(t, emailableTypes[constants.NotifGeneral])
}
