package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"coachingku_backend/internals/constants"
	auditService "coachingku_backend/internals/features/audit/service"
	"coachingku_backend/internals/features/payments/dto"
	"coachingku_backend/internals/features/payments/model"
	"coachingku_backend/internals/features/payments/service"
	studentModel "coachingku_backend/internals/features/students/model"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

var paymentSortColumns = map[string]string{
	"payment_created_at": "payment_created_at",
	"payment_amount":     "payment_amount",
	"payment_paid_at":    "payment_paid_at",
	"payment_status":     "payment_status",
}

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

/* ===================== RECORD CASH ===================== */
// POST /api/payments
func (ctrl *PaymentController) Record(c *fiber.Ctx) error {
	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", req.StudentId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	recordedBy, _ := helper.GetUserIDFromToken(c)
	payment := model.PaymentModel{
		PaymentStudentId:  req.StudentId,
		PaymentAmount:     req.Amount,
		PaymentMethod:     model.MethodCash,
		PaymentStatus:     model.StatusPending,
		PaymentNote:       req.Note,
		PaymentRecordedBy: &recordedBy,
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	settled, err := service.Settle(ctrl.DB, payment.PaymentId, "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Payment recorded but settlement failed")
	}

	auditService.Record(ctrl.DB, c, "payment.record", "payments", payment.PaymentId.String(), map[string]interface{}{
		"student_id": req.StudentId.String(),
		"amount":     req.Amount,
	})
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment recorded", settled)
}

/* ===================== INITIATE ONLINE ===================== */
// POST /api/payments/online
// Students pay their own dues; admins may initiate on a student's behalf.
func (ctrl *PaymentController) InitiateOnline(c *fiber.Ctx) error {
	var req dto.InitiateOnlinePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !service.OnlineEnabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Online payments are not configured")
	}

	if helper.GetRoleFromToken(c) == constants.RoleStudent {
		self, err := helper.GetUserIDFromToken(c)
		if err != nil || self != req.StudentId {
			return fiber.NewError(fiber.StatusForbidden, "You can only pay your own fees")
		}
	}

	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", req.StudentId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if req.Amount > student.DueFee() {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Amount exceeds due fee (%.2f)", student.DueFee()))
	}

	payment := model.PaymentModel{
		PaymentStudentId: req.StudentId,
		PaymentAmount:    req.Amount,
		PaymentMethod:    model.MethodOnline,
		PaymentStatus:    model.StatusPending,
		PaymentOrderId:   fmt.Sprintf("FEE-%d-%s", time.Now().Unix(), req.StudentId.String()[:8]),
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create payment")
	}

	token, redirectURL, err := service.GenerateSnapToken(payment, service.CustomerInput{
		Name:  student.StudentName,
		Email: student.StudentEmail,
		Phone: helper.NormalizePhone(student.StudentPhone),
	})
	if err != nil {
		ctrl.DB.Model(&payment).Update("payment_status", model.StatusFailed)
		return fiber.NewError(fiber.StatusBadGateway, "Failed to create gateway transaction")
	}

	ctrl.DB.Model(&payment).Updates(map[string]interface{}{
		"payment_snap_token":   token,
		"payment_redirect_url": redirectURL,
	})
	payment.PaymentSnapToken = token
	payment.PaymentRedirectUrl = redirectURL

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Online payment initiated", payment)
}

/* ===================== GATEWAY CALLBACK ===================== */
// POST /api/payments/notification
// Unauthenticated gateway webhook; trust hinges on the unguessable order id.
func (ctrl *PaymentController) GatewayNotification(c *fiber.Ctx) error {
	var req dto.GatewayNotification
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "payment_order_id = ?", req.OrderId).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Unknown order")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus != "" && req.FraudStatus != "accept" {
			break
		}
		if _, err := service.Settle(ctrl.DB, payment.PaymentId, req.TransactionId); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to settle payment")
		}
	case "deny", "expire", "failure":
		ctrl.DB.Model(&payment).Update("payment_status", model.StatusFailed)
	case "cancel":
		ctrl.DB.Model(&payment).Update("payment_status", model.StatusCancelled)
	}
	return helper.Success(c, "Notification processed", nil)
}

/* ===================== LIST ===================== */
// GET /api/payments
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	var f dto.FilterPaymentRequest
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParsePage(c, "payment_created_at", "desc")

	q := ctrl.DB.Model(&model.PaymentModel{})
	if f.StudentId != "" {
		q = q.Where("payment_student_id = ?", f.StudentId)
	}
	if f.Status != "" {
		q = q.Where("payment_status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count payments")
	}

	var payments []model.PaymentModel
	if err := q.Order(p.SafeOrderClause(paymentSortColumns, "payment_created_at")).Limit(p.PerPage).Offset(p.Offset()).Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return helper.Success(c, "Payments fetched", fiber.Map{
		"payments":   payments,
		"pagination": helper.BuildPageMeta(p, total),
	})
}

/* ===================== STUDENT LEDGER ===================== */
// GET /api/payments/student/:studentId
func (ctrl *PaymentController) StudentLedger(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	if helper.GetRoleFromToken(c) == constants.RoleStudent {
		self, err := helper.GetUserIDFromToken(c)
		if err != nil || self != studentID {
			return fiber.NewError(fiber.StatusForbidden, "You can only view your own payments")
		}
	}

	var student studentModel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var payments []model.PaymentModel
	if err := ctrl.DB.
		Where("payment_student_id = ? AND payment_status = ?", studentID, model.StatusPaid).
		Order("payment_paid_at DESC").
		Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	return helper.Success(c, "Payment ledger fetched", fiber.Map{
		"total_fee": student.StudentTotalFee,
		"paid_fee":  student.StudentPaidFee,
		"due_fee":   student.DueFee(),
		"payments":  payments,
	})
}
