package service

import (
	"fmt"
	"time"

	"coachingku_backend/internals/constants"
	"coachingku_backend/internals/features/notifications/model"
	"coachingku_backend/internals/realtime"
)

// Lifecycle event names accepted by NotifyTest / NotifyClassSession.
const (
	EventCreated         = "created"
	EventCancelled       = "cancelled"
	EventRescheduled     = "rescheduled"
	EventReminder        = "reminder"
	EventMaterialsAdded  = "materials_added"
	EventResultPublished = "result_published"
)

// TestEventInfo carries the fields the templates need; controllers build it
// from the model so this package stays decoupled from the tests vertical.
type TestEventInfo struct {
	TestID    string
	Name      string
	Class     string
	Section   string
	Date      time.Time
	StartTime string
}

type ClassSessionEventInfo struct {
	SessionID string
	Subject   string
	Class     string
	Section   string
	Date      time.Time
	StartTime string
}

// TestTemplate maps a lifecycle event to (type, priority, title, message).
func TestTemplate(event string, info TestEventInfo) (string, string, string, string) {
	when := fmt.Sprintf("%s at %s", info.Date.Format("02 Jan 2006"), info.StartTime)
	switch event {
	case EventCreated:
		return constants.NotifTestCreated, model.PriorityNormal,
			"New test scheduled",
			fmt.Sprintf("%s has been scheduled for %s.", info.Name, when)
	case EventCancelled:
		return constants.NotifTestCancelled, model.PriorityHigh,
			"Test cancelled",
			fmt.Sprintf("%s (%s) has been cancelled.", info.Name, when)
	case EventRescheduled:
		return constants.NotifTestRescheduled, model.PriorityHigh,
			"Test rescheduled",
			fmt.Sprintf("%s has been rescheduled to %s.", info.Name, when)
	case EventReminder:
		return constants.NotifTestReminder, model.PriorityNormal,
			"Upcoming test",
			fmt.Sprintf("Reminder: %s is on %s.", info.Name, when)
	case EventMaterialsAdded:
		return constants.NotifMaterialsAdded, model.PriorityLow,
			"Study materials added",
			fmt.Sprintf("New materials are available for %s.", info.Name)
	case EventResultPublished:
		return constants.NotifResultPublished, model.PriorityHigh,
			"Results published",
			fmt.Sprintf("Results for %s are now available.", info.Name)
	default:
		return constants.NotifGeneral, model.PriorityNormal, info.Name, "Update for " + info.Name
	}
}

// ClassSessionTemplate is the class-session counterpart of TestTemplate.
func ClassSessionTemplate(event string, info ClassSessionEventInfo) (string, string, string, string) {
	when := fmt.Sprintf("%s at %s", info.Date.Format("02 Jan 2006"), info.StartTime)
	label := info.Subject + " class"
	switch event {
	case EventCreated:
		return constants.NotifClassCreated, model.PriorityNormal,
			"New class scheduled",
			fmt.Sprintf("%s has been scheduled for %s.", label, when)
	case EventCancelled:
		return constants.NotifClassCancelled, model.PriorityHigh,
			"Class cancelled",
			fmt.Sprintf("%s (%s) has been cancelled.", label, when)
	case EventRescheduled:
		return constants.NotifClassRescheduled, model.PriorityHigh,
			"Class rescheduled",
			fmt.Sprintf("%s has been rescheduled to %s.", label, when)
	case EventReminder:
		return constants.NotifClassReminder, model.PriorityNormal,
			"Upcoming class",
			fmt.Sprintf("Reminder: %s is on %s.", label, when)
	case EventMaterialsAdded:
		return constants.NotifMaterialsAdded, model.PriorityLow,
			"Study materials added",
			fmt.Sprintf("New materials are available for %s.", label)
	default:
		return constants.NotifGeneral, model.PriorityNormal, label, "Update for " + label
	}
}

// NotifyTest builds the class-addressed notification for a test lifecycle
// event, fans it out, and emits the parallel schedule-update events so
// schedule views refresh independently of the notification inbox.
func (s *Service) NotifyTest(event string, info TestEventInfo) (*model.NotificationModel, error) {
	typ, priority, title, message := TestTemplate(event, info)

	n := &model.NotificationModel{
		NotificationRecipientType: constants.RecipientClass,
		NotificationClass:         info.Class,
		NotificationSection:       info.Section,
		NotificationType:          typ,
		NotificationPriority:      priority,
		NotificationTitle:         title,
		NotificationMessage:       message,
		NotificationLink:          "/tests/" + info.TestID,
		NotificationData: map[string]interface{}{
			"test_id": info.TestID,
			"event":   event,
		},
	}
	created, err := s.Create(n, AllChannels())

	schedulePayload := map[string]interface{}{
		"type":    "test",
		"test_id": info.TestID,
		"event":   event,
		"class":   info.Class,
		"section": info.Section,
	}
	s.Hub.EmitToRoom(realtime.ClassRoom(info.Class, info.Section), "schedule-update", schedulePayload)
	s.Hub.Broadcast("schedule-updated", schedulePayload)

	return created, err
}

// NotifyClassSession is NotifyTest for class sessions.
func (s *Service) NotifyClassSession(event string, info ClassSessionEventInfo) (*model.NotificationModel, error) {
	typ, priority, title, message := ClassSessionTemplate(event, info)

	n := &model.NotificationModel{
		NotificationRecipientType: constants.RecipientClass,
		NotificationClass:         info.Class,
		NotificationSection:       info.Section,
		NotificationType:          typ,
		NotificationPriority:      priority,
		NotificationTitle:         title,
		NotificationMessage:       message,
		NotificationLink:          "/classes/" + info.SessionID,
		NotificationData: map[string]interface{}{
			"class_session_id": info.SessionID,
			"event":            event,
		},
	}
	created, err := s.Create(n, AllChannels())

	schedulePayload := map[string]interface{}{
		"type":             "class",
		"class_session_id": info.SessionID,
		"event":            event,
		"class":            info.Class,
		"section":          info.Section,
	}
	s.Hub.EmitToRoom(realtime.ClassRoom(info.Class, info.Section), "schedule-update", schedulePayload)
	s.Hub.Broadcast("schedule-updated", schedulePayload)

	return created, err
}
