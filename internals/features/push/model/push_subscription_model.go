package model

import (
	"time"

	"github.com/google/uuid"
)

type PushSubscriptionModel struct {
	PushSubscriptionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:push_subscription_id" json:"push_subscription_id"`

	// endpoint is the identity of a browser subscription; saving again replaces keys
	PushSubscriptionEndpoint string `gorm:"not null;uniqueIndex;column:push_subscription_endpoint" json:"push_subscription_endpoint"`
	PushSubscriptionP256dh   string `gorm:"not null;column:push_subscription_p256dh" json:"-"`
	PushSubscriptionAuth     string `gorm:"not null;column:push_subscription_auth" json:"-"`

	PushSubscriptionStudentId *uuid.UUID `gorm:"type:uuid;index;column:push_subscription_student_id" json:"push_subscription_student_id,omitempty"`
	PushSubscriptionUserId    *uuid.UUID `gorm:"type:uuid;index;column:push_subscription_user_id" json:"push_subscription_user_id,omitempty"`

	PushSubscriptionUserAgent string `gorm:"column:push_subscription_user_agent" json:"push_subscription_user_agent,omitempty"`

	PushSubscriptionCreatedAt time.Time  `gorm:"column:push_subscription_created_at;autoCreateTime" json:"push_subscription_created_at"`
	PushSubscriptionUpdatedAt *time.Time `gorm:"column:push_subscription_updated_at;autoUpdateTime" json:"push_subscription_updated_at,omitempty"`
}

func (PushSubscriptionModel) TableName() string { return "push_subscriptions" }
