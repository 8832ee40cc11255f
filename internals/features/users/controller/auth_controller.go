package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	studentModel "coachingku_backend/internals/features/students/model"
	"coachingku_backend/internals/features/users/model"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

const tokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type studentLoginRequest struct {
	Roll     string `json:"roll" validate:"required_without=Phone"`
	Class    string `json:"class" validate:"required_with=Roll"`
	Phone    string `json:"phone" validate:"required_without=Roll"`
	Password string `json:"password" validate:"required"`
}

/* ===================== ADMIN LOGIN ===================== */
// POST /api/auth/login
func (ctrl *AuthController) AdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	err := ctrl.DB.First(&user, "user_email = ? AND user_is_active = true", req.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := helper.GenerateToken(user.UserId, user.UserRole, "", "", tokenTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.Success(c, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

/* ===================== STUDENT LOGIN ===================== */
// POST /api/auth/student-login
func (ctrl *AuthController) StudentLogin(c *fiber.Ctx) error {
	var req studentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	q := ctrl.DB.Model(&studentModel.StudentModel{}).Where("student_is_active = true")
	if req.Roll != "" {
		q = q.Where("student_roll = ? AND student_class = ?", req.Roll, req.Class)
	} else {
		q = q.Where("student_phone = ? OR student_guardian_phone = ?", req.Phone, req.Phone)
	}

	var student studentModel.StudentModel
	err := q.First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if student.StudentPasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(student.StudentPasswordHash), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := helper.GenerateToken(student.StudentId, "student", student.StudentClass, student.StudentSection, tokenTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.Success(c, "Login successful", fiber.Map{
		"token":   token,
		"student": student,
	})
}
