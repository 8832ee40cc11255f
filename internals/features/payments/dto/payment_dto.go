package dto

import "github.com/google/uuid"

type RecordPaymentRequest struct {
	StudentId uuid.UUID `json:"student_id" validate:"required"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
	Note      string    `json:"note"`
}

type InitiateOnlinePaymentRequest struct {
	StudentId uuid.UUID `json:"student_id" validate:"required"`
	Amount    float64   `json:"amount" validate:"required,gt=0"`
}

// GatewayNotification is the subset of the gateway callback we act on.
type GatewayNotification struct {
	OrderId           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	TransactionId     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
}

type FilterPaymentRequest struct {
	StudentId string `query:"student_id"`
	Status    string `query:"status"`
	Method    string `query:"method"`
}
