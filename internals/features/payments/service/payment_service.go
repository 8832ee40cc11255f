package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coachingku_backend/internals/constants"
	notifModel "coachingku_backend/internals/features/notifications/model"
	notifService "coachingku_backend/internals/features/notifications/service"
	"coachingku_backend/internals/features/payments/model"
	studentModel "coachingku_backend/internals/features/students/model"
	"coachingku_backend/internals/logger"
)

// Settle marks a payment paid and credits the student's fee ledger in one
// transaction, then notifies the student. Idempotent: an already-paid row is
// left alone.
func Settle(db *gorm.DB, paymentID uuid.UUID, gatewayRef string) (*model.PaymentModel, error) {
	var payment model.PaymentModel

	err := db.Transaction(func(tx *gorm.DB) error {
		// row lock so two concurrent settlements cannot both credit the ledger
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "payment_id = ?", paymentID).Error; err != nil {
			return err
		}
		if payment.PaymentStatus == model.StatusPaid {
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{
			"payment_status":  model.StatusPaid,
			"payment_paid_at": now,
		}
		if gatewayRef != "" {
			updates["payment_gateway_ref"] = gatewayRef
		}
		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return err
		}
		payment.PaymentStatus = model.StatusPaid
		payment.PaymentPaidAt = &now

		return tx.Model(&studentModel.StudentModel{}).
			Where("student_id = ?", payment.PaymentStudentId).
			Update("student_paid_fee", gorm.Expr("student_paid_fee + ?", payment.PaymentAmount)).Error
	})
	if err != nil {
		return nil, err
	}

	notifyPaid(db, payment)
	return &payment, nil
}

func notifyPaid(db *gorm.DB, payment model.PaymentModel) {
	ns := notifService.New(db)
	sid := payment.PaymentStudentId
	n := &notifModel.NotificationModel{
		NotificationRecipientType: constants.RecipientStudent,
		NotificationStudentId:     &sid,
		NotificationType:          constants.NotifPaymentReceived,
		NotificationPriority:      notifModel.PriorityNormal,
		NotificationTitle:         "Payment received",
		NotificationMessage:       fmt.Sprintf("Your payment of %.2f has been received.", payment.PaymentAmount),
		NotificationLink:          "/payments",
		NotificationData: map[string]interface{}{
			"payment_id": payment.PaymentId.String(),
			"amount":     payment.PaymentAmount,
		},
	}
	if _, err := ns.Create(n, notifService.AllChannels()); err != nil {
		logger.Log.Errorf("payment notification failed: %v", err)
	}
}
