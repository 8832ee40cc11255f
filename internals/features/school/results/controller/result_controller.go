package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	attendanceService "coachingku_backend/internals/features/school/attendance/service"
	"coachingku_backend/internals/features/school/results/dto"
	"coachingku_backend/internals/features/school/results/model"
	"coachingku_backend/internals/features/school/results/service"
	testModel "coachingku_backend/internals/features/school/tests/model"
	"coachingku_backend/internals/constants"
	helper "coachingku_backend/internals/helpers"
)

var validate = validator.New()

type ResultController struct {
	DB *gorm.DB
}

func NewResultController(db *gorm.DB) *ResultController {
	return &ResultController{DB: db}
}

func actorID(c *fiber.Ctx) *uuid.UUID {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	return &id
}

/* ===================== BULK SAVE ===================== */
// POST /api/results/bulk
func (ctrl *ResultController) BulkSave(c *fiber.Ctx) error {
	var req dto.BulkSaveResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := service.BulkSave(ctrl.DB, req.TestId, req.Entries, actorID(c), req.OverrideGate)
	if err != nil {
		var gateErr *service.GateError
		if errors.As(err, &gateErr) {
			return helper.WorkflowRejected(c, gateErr.Decision.Reason, gateMessage(gateErr.Decision.Reason))
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Test not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save results")
	}

	auditService.Record(ctrl.DB, c, "result.bulk_save", "results", req.TestId.String(), map[string]interface{}{
		"created":             report.Created,
		"updated":             report.Updated,
		"attendance_inferred": report.AttendanceInferred,
		"override_gate":       req.OverrideGate,
	})
	return helper.Success(c, "Results saved", report)
}

func gateMessage(reason string) string {
	switch reason {
	case attendanceService.ReasonAttendanceNotMarked:
		return "Mark attendance for this test before entering results"
	case attendanceService.ReasonStudentNotInAttendance:
		return "This student has no attendance row for the test"
	case attendanceService.ReasonStudentAbsent:
		return "This student is marked absent for the test"
	default:
		return "Result entry is not allowed"
	}
}

/* ===================== GATE CHECK ===================== */
// GET /api/results/can-enter/:testId?student_id=
func (ctrl *ResultController) CanEnter(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("testId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}

	var studentID *uuid.UUID
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
		}
		studentID = &id
	}

	decision, err := attendanceService.CanEnterResults(ctrl.DB, testID, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to evaluate gate")
	}
	return helper.Success(c, "Gate evaluated", decision)
}

/* ===================== MERIT LIST ===================== */
// GET /api/results/merit-list/:testId
func (ctrl *ResultController) MeritList(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("testId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}

	var test testModel.TestModel
	if err := ctrl.DB.First(&test, "test_id = ?", testID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Test not found")
	}

	// students only see published lists
	if helper.GetRoleFromToken(c) == constants.RoleStudent && !test.TestIsPublished {
		return fiber.NewError(fiber.StatusForbidden, "Results are not published yet")
	}

	entries, err := service.MeritList(ctrl.DB, testID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build merit list")
	}
	return helper.Success(c, "Merit list fetched", fiber.Map{
		"test":    test,
		"entries": entries,
	})
}

/* ===================== STATISTICS ===================== */
// GET /api/results/statistics/:testId
func (ctrl *ResultController) Statistics(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("testId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}
	stats, err := service.Statistics(ctrl.DB, testID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute statistics")
	}
	return helper.Success(c, "Statistics computed", stats)
}

/* ===================== PUBLISH ===================== */
// POST /api/results/publish/:testId
func (ctrl *ResultController) Publish(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("testId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}

	test, err := service.Publish(ctrl.DB, testID, actorID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Test not found")
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	auditService.Record(ctrl.DB, c, "result.publish", "tests", testID.String(), nil)
	return helper.Success(c, "Results published", test)
}

/* ===================== SYNC WITH ATTENDANCE ===================== */
// POST /api/results/sync
// Manual trigger; attendance edits on test-type rows invoke the same service
// directly.
func (ctrl *ResultController) Sync(c *fiber.Ctx) error {
	var req dto.SyncResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := service.SyncResultsWithAttendance(ctrl.DB, req.TestId, req.Changed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Test not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sync results")
	}

	auditService.Record(ctrl.DB, c, "result.sync", "results", req.TestId.String(), map[string]interface{}{
		"marked_absent":   report.MarkedAbsent,
		"restored":        report.Restored,
		"no_result_found": report.NoResultFound,
	})
	return helper.Success(c, "Results synced with attendance", report)
}

/* ===================== STUDENT HISTORY ===================== */
// GET /api/results/student/:studentId
func (ctrl *ResultController) StudentHistory(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	// students see only their own, and only published tests
	role := helper.GetRoleFromToken(c)
	if role == constants.RoleStudent {
		self, err := helper.GetUserIDFromToken(c)
		if err != nil || self != studentID {
			return fiber.NewError(fiber.StatusForbidden, "You can only view your own results")
		}
	}

	q := ctrl.DB.Model(&model.ResultModel{}).
		Joins("JOIN tests ON tests.test_id = results.result_test_id").
		Where("results.result_student_id = ?", studentID)
	if role == constants.RoleStudent {
		q = q.Where("tests.test_is_published = TRUE")
	}

	type historyRow struct {
		model.ResultModel
		TestName          string `json:"test_name"`
		TestTotalMaxMarks int    `json:"test_total_max_marks"`
	}
	var rows []historyRow
	if err := q.
		Select("results.*, tests.test_name, tests.test_total_max_marks").
		Order("tests.test_date DESC").
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch results")
	}
	return helper.Success(c, "Results fetched", rows)
}

/* ===================== DELETE ===================== */
// DELETE /api/results/:id
func (ctrl *ResultController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid result id")
	}

	var row model.ResultModel
	if err := ctrl.DB.First(&row, "result_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Result not found")
	}
	if err := ctrl.DB.Delete(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete result")
	}
	if err := service.Rerank(ctrl.DB, row.ResultTestId); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Result deleted but rerank failed")
	}

	auditService.Record(ctrl.DB, c, "result.delete", "results", id.String(), nil)
	return helper.Success(c, "Result deleted", nil)
}
