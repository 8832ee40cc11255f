package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/constants"
	"coachingku_backend/internals/features/notifications/model"
	pushService "coachingku_backend/internals/features/push/service"
	studentModel "coachingku_backend/internals/features/students/model"
	userModel "coachingku_backend/internals/features/users/model"
	settingsService "coachingku_backend/internals/features/settings/service"
	"coachingku_backend/internals/logger"
	"coachingku_backend/internals/realtime"
	"coachingku_backend/internals/services/email"
)

// Options picks the delivery channels for one notification. The DB row is the
// durable source of truth; everything else is best-effort.
type Options struct {
	SaveToDb   bool
	SendSocket bool
	SendPush   bool
	SendEmail  bool
}

func AllChannels() Options {
	return Options{SaveToDb: true, SendSocket: true, SendPush: true, SendEmail: true}
}

// emailableTypes is the fixed allow-list for the email channel: only
// disruptive or money-related events reach an inbox.
var emailableTypes = map[string]bool{
	constants.NotifTestCancelled:    true,
	constants.NotifTestRescheduled:  true,
	constants.NotifClassCancelled:   true,
	constants.NotifClassRescheduled: true,
	constants.NotifResultPublished:  true,
	constants.NotifPaymentReminder:  true,
}

type Service struct {
	DB     *gorm.DB
	Hub    *realtime.Hub
	Mailer email.Service
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Hub: realtime.Default, Mailer: email.NewFromEnv()}
}

// Create persists the notification (unless disabled) and fans it out. Channel
// failures never propagate: socket is synchronous, push and email run in
// their own goroutines with failures logged or recorded on the row.
func (s *Service) Create(n *model.NotificationModel, opt Options) (*model.NotificationModel, error) {
	if n.NotificationPriority == "" {
		n.NotificationPriority = model.PriorityNormal
	}

	if opt.SaveToDb {
		if err := s.DB.Create(n).Error; err != nil {
			return nil, err
		}
		s.appendChannel(n, "db")
	}

	// a scheduled notification is stored only; the drain job dispatches it
	if n.NotificationIsScheduled && n.NotificationScheduledFor != nil &&
		n.NotificationScheduledFor.After(time.Now()) {
		return n, nil
	}

	s.Dispatch(n, opt)
	return n, nil
}

// Dispatch runs the non-DB channels. Also used by the scheduler when a
// deferred notification becomes due.
func (s *Service) Dispatch(n *model.NotificationModel, opt Options) {
	if opt.SendSocket {
		s.emitSocket(n)
		s.appendChannel(n, "socket")
	}
	if opt.SendPush && configs.PushEnabled() {
		payload := s.pushPayload(n)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Log.WithField("panic", r).Error("push dispatch panicked")
				}
			}()
			sent := pushService.SendToRecipient(
				s.DB,
				n.NotificationRecipientType,
				n.NotificationStudentId,
				n.NotificationUserId,
				n.NotificationClass,
				n.NotificationSection,
				payload,
			)
			// record the channel only after at least one push was accepted
			if sent > 0 {
				s.appendChannel(n, "push")
			}
		}()
	}
	if opt.SendEmail && configs.EmailEnabled() && emailableTypes[n.NotificationType] {
		go s.sendEmail(n)
	}
}

func (s *Service) appendChannel(n *model.NotificationModel, ch string) {
	for _, existing := range n.NotificationDeliveredChannels {
		if existing == ch {
			return
		}
	}
	n.NotificationDeliveredChannels = append(n.NotificationDeliveredChannels, ch)
	if n.NotificationId != uuid.Nil {
		_ = s.DB.Model(n).
			Update("notification_delivered_channels", n.NotificationDeliveredChannels).Error
	}
}

func (s *Service) emitSocket(n *model.NotificationModel) {
	payload := map[string]interface{}{
		"id":       n.NotificationId,
		"type":     n.NotificationType,
		"priority": n.NotificationPriority,
		"title":    n.NotificationTitle,
		"message":  n.NotificationMessage,
		"link":     n.NotificationLink,
	}

	switch n.NotificationRecipientType {
	case constants.RecipientStudent:
		if n.NotificationStudentId != nil {
			s.Hub.EmitToRoom(realtime.StudentRoom(n.NotificationStudentId.String()), "notification", payload)
		}
	case constants.RecipientUser:
		if n.NotificationUserId != nil {
			s.Hub.EmitToRoom(realtime.UserRoom(n.NotificationUserId.String()), "notification", payload)
		}
	case constants.RecipientClass:
		s.Hub.EmitToRoom(realtime.ClassRoom(n.NotificationClass, n.NotificationSection), "notification", payload)
		if n.NotificationSection != "" {
			// section-less room too, so class-wide dashboards refresh
			s.Hub.EmitToRoom(realtime.ClassRoom(n.NotificationClass, ""), "notification", payload)
		}
	case constants.RecipientAll:
		s.Hub.Broadcast("notification", payload)
	}
}

func (s *Service) pushPayload(n *model.NotificationModel) pushService.Payload {
	icon := ""
	if snap, ok := settingsService.Get(); ok {
		icon = snap.Icon192Url
	}
	return pushService.NewPayload(n.NotificationTitle, n.NotificationMessage, n.NotificationLink, icon)
}

// sendEmail resolves recipient addresses and records the outcome on the row.
func (s *Service) sendEmail(n *model.NotificationModel) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithField("panic", r).Error("email dispatch panicked")
		}
	}()

	addrs := s.resolveEmails(n)
	if len(addrs) == 0 {
		return
	}

	err := s.Mailer.SendMessage(&email.Message{
		To:       addrs,
		Subject:  n.NotificationTitle,
		TextBody: n.NotificationMessage,
	})

	updates := map[string]interface{}{}
	if err != nil {
		updates["notification_email_error"] = err.Error()
		logger.Log.WithError(err).Warn("notification email failed")
	} else {
		now := time.Now()
		updates["notification_email_sent"] = true
		updates["notification_email_sent_at"] = now
	}
	if n.NotificationId != uuid.Nil {
		if dbErr := s.DB.Model(n).Updates(updates).Error; dbErr != nil {
			logger.Log.WithError(dbErr).Warn("notification email bookkeeping failed")
		}
	}
}

func (s *Service) resolveEmails(n *model.NotificationModel) []string {
	var addrs []string
	switch n.NotificationRecipientType {
	case constants.RecipientStudent:
		if n.NotificationStudentId == nil {
			return nil
		}
		var st studentModel.StudentModel
		if err := s.DB.First(&st, "student_id = ?", *n.NotificationStudentId).Error; err == nil && st.StudentEmail != "" {
			addrs = append(addrs, st.StudentEmail)
		}
	case constants.RecipientUser:
		if n.NotificationUserId == nil {
			return nil
		}
		var u userModel.UserModel
		if err := s.DB.First(&u, "user_id = ?", *n.NotificationUserId).Error; err == nil && u.UserEmail != "" {
			addrs = append(addrs, u.UserEmail)
		}
	case constants.RecipientClass:
		q := s.DB.Model(&studentModel.StudentModel{}).
			Where("student_class = ? AND student_email <> ''", n.NotificationClass)
		if n.NotificationSection != "" {
			q = q.Where("student_section = ?", n.NotificationSection)
		}
		_ = q.Pluck("student_email", &addrs).Error
	case constants.RecipientAll:
		_ = s.DB.Model(&studentModel.StudentModel{}).
			Where("student_email <> ''").
			Pluck("student_email", &addrs).Error
	}
	return addrs
}
