package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	"coachingku_backend/internals/features/students/dto"
	"coachingku_backend/internals/features/students/model"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

var studentSortColumns = map[string]string{
	"student_roll":       "student_roll",
	"student_name":       "student_name",
	"student_class":      "student_class",
	"student_created_at": "student_created_at",
}

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ===================== CREATE ===================== */
// POST /api/students
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if req.StudentPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.StudentPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
		m.StudentPasswordHash = string(hash)
	}

	if err := ctrl.DB.Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return fiber.NewError(fiber.StatusConflict, "Roll already exists in this class")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	auditService.Record(ctrl.DB, c, "student.create", "students", m.StudentId.String(), map[string]interface{}{
		"roll":  m.StudentRoll,
		"class": m.StudentClass,
	})
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student created", dto.FromModel(*m))
}

/* ===================== LIST ===================== */
// GET /api/students
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	var f dto.FilterStudentRequest
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParsePage(c, "student_roll", "asc")

	q := ctrl.DB.Model(&model.StudentModel{})
	if f.Class != "" {
		q = q.Where("student_class = ?", f.Class)
	}
	if f.Section != "" {
		q = q.Where("student_section = ?", f.Section)
	}
	if f.Group != "" {
		q = q.Where("student_group = ?", f.Group)
	}
	if f.Active != nil {
		q = q.Where("student_is_active = ?", *f.Active)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("student_name ILIKE ? OR student_roll ILIKE ? OR student_phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentModel
	if err := q.Order(p.SafeOrderClause(studentSortColumns, "student_roll")).Limit(p.PerPage).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Students fetched", fiber.Map{
		"items":      dto.FromModels(rows),
		"pagination": helper.BuildPageMeta(p, total),
	})
}

/* ===================== DETAIL ===================== */
// GET /api/students/:id
func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var row model.StudentModel
	if err := ctrl.DB.First(&row, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Student fetched", dto.FromModel(row))
}

/* ===================== UPDATE ===================== */
// PUT /api/students/:id
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.StudentModel
	if err := ctrl.DB.First(&row, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	changes := map[string]interface{}{}
	if req.StudentName != nil {
		changes["student_name"] = *req.StudentName
	}
	if req.StudentRoll != nil {
		changes["student_roll"] = *req.StudentRoll
	}
	if req.StudentClass != nil {
		changes["student_class"] = *req.StudentClass
	}
	if req.StudentSection != nil {
		changes["student_section"] = *req.StudentSection
	}
	if req.StudentGroup != nil {
		changes["student_group"] = *req.StudentGroup
	}
	if req.StudentPhone != nil {
		changes["student_phone"] = *req.StudentPhone
	}
	if req.StudentGuardianPhone != nil {
		changes["student_guardian_phone"] = *req.StudentGuardianPhone
	}
	if req.StudentEmail != nil {
		changes["student_email"] = *req.StudentEmail
	}
	if req.StudentTotalFee != nil {
		changes["student_total_fee"] = *req.StudentTotalFee
	}
	if req.StudentIsActive != nil {
		changes["student_is_active"] = *req.StudentIsActive
	}
	if req.StudentPassword != nil && *req.StudentPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.StudentPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
		changes["student_password_hash"] = string(hash)
	}
	if len(changes) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&row).Updates(changes).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return fiber.NewError(fiber.StatusConflict, "Roll already exists in this class")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	auditService.Record(ctrl.DB, c, "student.update", "students", id.String(), map[string]interface{}{
		"fields": len(changes),
	})
	return helper.Success(c, "Student updated", dto.FromModel(row))
}

/* ===================== DELETE (soft) ===================== */
// DELETE /api/students/:id
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	res := ctrl.DB.Delete(&model.StudentModel{}, "student_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	auditService.Record(ctrl.DB, c, "student.delete", "students", id.String(), nil)
	return helper.Success(c, "Student deleted", nil)
}
