package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MethodCash   = "cash"
	MethodOnline = "online"

	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// PaymentModel is one fee payment. Cash rows are created already paid;
// online rows start pending and settle through the gateway callback.
type PaymentModel struct {
	PaymentId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:payment_id" json:"payment_id"`

	PaymentStudentId uuid.UUID `gorm:"type:uuid;not null;index;column:payment_student_id" json:"payment_student_id"`

	PaymentAmount float64 `gorm:"not null;column:payment_amount" json:"payment_amount"`
	PaymentMethod string  `gorm:"not null;column:payment_method" json:"payment_method"` // cash|online
	PaymentStatus string  `gorm:"not null;default:'pending';index;column:payment_status" json:"payment_status"`

	PaymentNote string `gorm:"column:payment_note" json:"payment_note,omitempty"`

	// gateway fields, online payments only
	PaymentOrderId     string  `gorm:"uniqueIndex,where:payment_order_id <> '';column:payment_order_id" json:"payment_order_id,omitempty"`
	PaymentSnapToken   string  `gorm:"column:payment_snap_token" json:"payment_snap_token,omitempty"`
	PaymentRedirectUrl string  `gorm:"column:payment_redirect_url" json:"payment_redirect_url,omitempty"`
	PaymentGatewayRef  string  `gorm:"column:payment_gateway_ref" json:"payment_gateway_ref,omitempty"`

	PaymentRecordedBy *uuid.UUID `gorm:"type:uuid;column:payment_recorded_by" json:"payment_recorded_by,omitempty"`
	PaymentPaidAt     *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time     `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }
