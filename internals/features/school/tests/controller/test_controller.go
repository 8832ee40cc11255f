package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	notifService "coachingku_backend/internals/features/notifications/service"
	"coachingku_backend/internals/features/school/tests/dto"
	"coachingku_backend/internals/features/school/tests/model"
	"coachingku_backend/internals/features/school/tests/service"
	helper "coachingku_backend/internals/helpers"
	"coachingku_backend/internals/logger"
)

var validate = validator.New()

var testSortColumns = map[string]string{
	"test_date":       "test_date",
	"test_name":       "test_name",
	"test_code":       "test_code",
	"test_status":     "test_status",
	"test_created_at": "test_created_at",
}

type TestController struct {
	DB    *gorm.DB
	Notif *notifService.Service
}

func NewTestController(db *gorm.DB) *TestController {
	return &TestController{DB: db, Notif: notifService.New(db)}
}

func (ctrl *TestController) eventInfo(t model.TestModel) notifService.TestEventInfo {
	return notifService.TestEventInfo{
		TestID:    t.TestId.String(),
		Name:      t.TestName,
		Class:     t.TestClass,
		Section:   t.TestSection,
		Date:      t.TestDate,
		StartTime: t.TestStartTime,
	}
}

/* ===================== CREATE ===================== */
// POST /api/tests
func (ctrl *TestController) Create(c *fiber.Ctx) error {
	var req dto.CreateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	m.TestTotalMaxMarks = service.TotalMaxMarks(m.TestSubjects)

	if err := ctrl.DB.Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return fiber.NewError(fiber.StatusConflict, "Test code already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create test")
	}

	if _, err := ctrl.Notif.NotifyTest(notifService.EventCreated, ctrl.eventInfo(*m)); err != nil {
		logger.Log.WithError(err).Warn("test created notification failed")
	}

	auditService.Record(ctrl.DB, c, "test.create", "tests", m.TestId.String(), map[string]interface{}{
		"code":  m.TestCode,
		"class": m.TestClass,
	})
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Test created", dto.FromModel(*m))
}

/* ===================== LIST / DETAIL ===================== */
// GET /api/tests
func (ctrl *TestController) List(c *fiber.Ctx) error {
	var f dto.FilterTestRequest
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParsePage(c, "test_date", "desc")

	q := ctrl.DB.Model(&model.TestModel{})
	if f.Class != "" {
		q = q.Where("test_class = ?", f.Class)
	}
	if f.Section != "" {
		q = q.Where("test_section = ? OR test_section = ''", f.Section)
	}
	if f.Status != "" {
		q = q.Where("test_status = ?", f.Status)
	}
	if f.Published != nil {
		q = q.Where("test_is_published = ?", *f.Published)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("test_name ILIKE ? OR test_code ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.TestModel
	if err := q.Order(p.SafeOrderClause(testSortColumns, "test_date")).Limit(p.PerPage).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Tests fetched", fiber.Map{
		"items":      dto.FromModels(rows),
		"pagination": helper.BuildPageMeta(p, total),
	})
}

// GET /api/tests/:id
func (ctrl *TestController) GetByID(c *fiber.Ctx) error {
	t, err := ctrl.load(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "Test fetched", dto.FromModel(*t))
}

/* ===================== UPDATE ===================== */
// PUT /api/tests/:id
func (ctrl *TestController) Update(c *fiber.Ctx) error {
	t, err := ctrl.load(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	changes := map[string]interface{}{}
	if req.TestName != nil {
		changes["test_name"] = *req.TestName
	}
	if req.TestSection != nil {
		changes["test_section"] = *req.TestSection
	}
	if len(req.TestSubjects) > 0 {
		subjects := make(model.SubjectList, 0, len(req.TestSubjects))
		for _, s := range req.TestSubjects {
			subjects = append(subjects, model.Subject{Name: s.Name, MaxMarks: s.MaxMarks})
		}
		t.TestSubjects = subjects
		t.TestTotalMaxMarks = service.TotalMaxMarks(subjects)
		if err := ctrl.DB.Model(t).
			Select("test_subjects", "test_total_max_marks").
			Updates(t).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update subjects")
		}
	}
	if len(changes) > 0 {
		if err := ctrl.DB.Model(t).Updates(changes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update test")
		}
	}

	auditService.Record(ctrl.DB, c, "test.update", "tests", t.TestId.String(), nil)
	return helper.Success(c, "Test updated", dto.FromModel(*t))
}

/* ===================== CANCEL / RESCHEDULE ===================== */
// POST /api/tests/:id/cancel
func (ctrl *TestController) Cancel(c *fiber.Ctx) error {
	t, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if t.TestStatus == model.StatusCancelled {
		return fiber.NewError(fiber.StatusConflict, "Test is already cancelled")
	}
	if t.TestStatus == model.StatusCompleted {
		return fiber.NewError(fiber.StatusConflict, "Completed test cannot be cancelled")
	}

	if err := ctrl.DB.Model(t).Update("test_status", model.StatusCancelled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to cancel test")
	}
	t.TestStatus = model.StatusCancelled

	if _, err := ctrl.Notif.NotifyTest(notifService.EventCancelled, ctrl.eventInfo(*t)); err != nil {
		logger.Log.WithError(err).Warn("test cancelled notification failed")
	}

	auditService.Record(ctrl.DB, c, "test.cancel", "tests", t.TestId.String(), nil)
	return helper.Success(c, "Test cancelled", dto.FromModel(*t))
}

// POST /api/tests/:id/reschedule
func (ctrl *TestController) Reschedule(c *fiber.Ctx) error {
	t, err := ctrl.load(c)
	if err != nil {
		return err
	}
	if t.TestStatus == model.StatusCompleted {
		return fiber.NewError(fiber.StatusConflict, "Completed test cannot be rescheduled")
	}

	var req dto.RescheduleTestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// reminder flags reset so the new slot gets fresh reminders
	if err := ctrl.DB.Model(t).Updates(map[string]interface{}{
		"test_date":              req.TestDate,
		"test_start_time":        req.TestStartTime,
		"test_end_time":          req.TestEndTime,
		"test_status":            model.StatusScheduled,
		"test_reminder_24h_sent": false,
		"test_reminder_1h_sent":  false,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reschedule test")
	}
	t.TestDate = req.TestDate
	t.TestStartTime = req.TestStartTime
	t.TestEndTime = req.TestEndTime
	t.TestStatus = model.StatusScheduled

	if _, err := ctrl.Notif.NotifyTest(notifService.EventRescheduled, ctrl.eventInfo(*t)); err != nil {
		logger.Log.WithError(err).Warn("test rescheduled notification failed")
	}

	auditService.Record(ctrl.DB, c, "test.reschedule", "tests", t.TestId.String(), map[string]interface{}{
		"date": req.TestDate.Format("2006-01-02"),
	})
	return helper.Success(c, "Test rescheduled", dto.FromModel(*t))
}

/* ===================== DELETE (soft) ===================== */
// DELETE /api/tests/:id
func (ctrl *TestController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}

	res := ctrl.DB.Delete(&model.TestModel{}, "test_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete test")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Test not found")
	}

	auditService.Record(ctrl.DB, c, "test.delete", "tests", id.String(), nil)
	return helper.Success(c, "Test deleted", nil)
}

func (ctrl *TestController) load(c *fiber.Ctx) (*model.TestModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}
	var t model.TestModel
	if err := ctrl.DB.First(&t, "test_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Test not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &t, nil
}
