package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/features/payments/model"
)

var snapClient snap.Client
var snapReady bool

// InitMidtrans wires the Snap client at bootstrap. Online payments stay
// disabled when no server key is configured.
func InitMidtrans() {
	serverKey := configs.GetEnv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return
	}
	if configs.GetEnvBool("MIDTRANS_PRODUCTION", false) {
		snapClient.New(serverKey, midtrans.Production)
	} else {
		snapClient.New(serverKey, midtrans.Sandbox)
	}
	snapReady = true
}

// OnlineEnabled reports whether the gateway is configured.
func OnlineEnabled() bool { return snapReady }

// CustomerInput is the payer identity sent to the gateway.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// GenerateSnapToken creates a gateway transaction for a pending payment and
// returns (token, redirectURL).
func GenerateSnapToken(p model.PaymentModel, cust CustomerInput) (string, string, error) {
	if !snapReady {
		return "", "", errors.New("online payments are not configured")
	}
	if p.PaymentAmount <= 0 {
		return "", "", errors.New("invalid payment amount")
	}
	if p.PaymentOrderId == "" {
		return "", "", errors.New("payment order id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderId,
			GrossAmt: int64(p.PaymentAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.Name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.PaymentOrderId,
				Price:    int64(p.PaymentAmount),
				Qty:      1,
				Name:     "Tuition fee payment",
				Category: "fees",
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
