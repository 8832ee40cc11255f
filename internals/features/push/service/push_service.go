package service

import (
	"encoding/json"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/features/push/model"
	studentModel "coachingku_backend/internals/features/students/model"
	"coachingku_backend/internals/logger"
)

// Payload is the fixed JSON shape the service worker expects.
type Payload struct {
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Icon    string   `json:"icon,omitempty"`
	Badge   string   `json:"badge,omitempty"`
	Tag     string   `json:"tag,omitempty"`
	Vibrate []int    `json:"vibrate,omitempty"`
	Data    PushData `json:"data"`
	Actions []Action `json:"actions,omitempty"`
}

type PushData struct {
	URL string `json:"url"`
}

type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

var defaultVibrate = []int{100, 50, 100}

// NewPayload fills the standard fields around a title/body/link.
func NewPayload(title, body, link, icon string) Payload {
	if link == "" {
		link = "/"
	}
	return Payload{
		Title:   title,
		Body:    body,
		Icon:    icon,
		Badge:   icon,
		Tag:     "coachingku",
		Vibrate: defaultVibrate,
		Data:    PushData{URL: link},
		Actions: []Action{{Action: "open", Title: "Open"}},
	}
}

// SendToRecipient resolves a notification recipient into device subscriptions
// and pushes to each. Best-effort: failures are logged, dead endpoints
// (404/410) are pruned. Returns how many pushes were accepted so callers can
// record the channel only when something actually went out.
func SendToRecipient(db *gorm.DB, recipientType string, studentID, userID *uuid.UUID, class, section string, payload Payload) int {
	if !configs.PushEnabled() {
		return 0
	}

	q := db.Model(&model.PushSubscriptionModel{})
	switch recipientType {
	case "student":
		if studentID == nil {
			return 0
		}
		q = q.Where("push_subscription_student_id = ?", *studentID)
	case "user":
		if userID == nil {
			return 0
		}
		q = q.Where("push_subscription_user_id = ?", *userID)
	case "class":
		sub := db.Model(&studentModel.StudentModel{}).
			Select("student_id").
			Where("student_class = ?", class)
		if section != "" {
			sub = sub.Where("student_section = ?", section)
		}
		q = q.Where("push_subscription_student_id IN (?)", sub)
	case "all":
		// no filter
	default:
		return 0
	}

	var subs []model.PushSubscriptionModel
	if err := q.Find(&subs).Error; err != nil {
		logger.Log.WithError(err).Warn("push subscription lookup failed")
		return 0
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).Warn("push payload marshal failed")
		return 0
	}

	sent := 0
	for _, sub := range subs {
		if sendOne(db, sub, body) {
			sent++
		}
	}
	return sent
}

func sendOne(db *gorm.DB, sub model.PushSubscriptionModel, body []byte) bool {
	resp, err := webpush.SendNotification(body, &webpush.Subscription{
		Endpoint: sub.PushSubscriptionEndpoint,
		Keys: webpush.Keys{
			P256dh: sub.PushSubscriptionP256dh,
			Auth:   sub.PushSubscriptionAuth,
		},
	}, &webpush.Options{
		Subscriber:      configs.GetEnv("VAPID_SUBJECT", "mailto:admin@example.com"),
		VAPIDPublicKey:  configs.GetEnv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: configs.GetEnv("VAPID_PRIVATE_KEY"),
		TTL:             int((12 * time.Hour).Seconds()),
	})
	if err != nil {
		logger.Log.WithError(err).Warn("push send failed")
		return false
	}
	defer resp.Body.Close()

	// the push service tells us the subscription is gone
	if resp.StatusCode == 404 || resp.StatusCode == 410 {
		if err := db.Delete(&model.PushSubscriptionModel{}, "push_subscription_id = ?", sub.PushSubscriptionId).Error; err != nil {
			logger.Log.WithError(err).Warn("dead push subscription prune failed")
		} else {
			logger.Log.WithField("endpoint", sub.PushSubscriptionEndpoint).Info("pruned dead push subscription")
		}
		return false
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
