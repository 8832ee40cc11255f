package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "coachingku_backend/internals/features/audit/service"
	"coachingku_backend/internals/features/school/attendance/dto"
	"coachingku_backend/internals/features/school/attendance/model"
	resultService "coachingku_backend/internals/features/school/results/service"
	testModel "coachingku_backend/internals/features/school/tests/model"
	helper "coachingku_backend/internals/helpers"
	"coachingku_backend/internals/logger"
	"coachingku_backend/internals/realtime"
)

var validate = validator.New()

var attendanceSortColumns = map[string]string{
	"attendance_date":       "attendance_date",
	"attendance_status":     "attendance_status",
	"attendance_created_at": "attendance_created_at",
}

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

/* ===================== BULK MARK ===================== */
// POST /api/attendance/bulk
// Upserts one row per entry. A row counts as changed only when its status
// actually differs; changed test rows trigger the result sync.
func (ctrl *AttendanceController) BulkMark(c *fiber.Ctx) error {
	var req dto.BulkMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var (
		date   time.Time
		testID *uuid.UUID
		class  string
	)
	switch req.Type {
	case model.TypeTest:
		if req.TestId == nil {
			return fiber.NewError(fiber.StatusBadRequest, "test_id is required for test attendance")
		}
		var test testModel.TestModel
		if err := ctrl.DB.First(&test, "test_id = ?", *req.TestId).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Test not found")
		}
		date = test.TestDate
		testID = req.TestId
		class = test.TestClass
	default:
		if req.Date == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date is required for class attendance")
		}
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date")
		}
		date = parsed
	}

	markedBy, _ := helper.GetUserIDFromToken(c)
	resp := dto.BulkMarkResponse{ChangedStudents: []dto.ChangedStudent{}}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range req.Entries {
			q := tx.Where("attendance_type = ? AND attendance_student_id = ?", req.Type, entry.StudentId)
			if req.Type == model.TypeTest {
				q = q.Where("attendance_test_id = ?", *testID)
			} else {
				classID := uuid.Nil
				if req.ClassSessionId != nil {
					classID = *req.ClassSessionId
				}
				q = q.Where("attendance_date = ? AND attendance_class_id = ?", date, classID)
			}

			var existing model.AttendanceModel
			err := q.First(&existing).Error
			switch {
			case err == gorm.ErrRecordNotFound:
				row := model.AttendanceModel{
					AttendanceStudentId: entry.StudentId,
					AttendanceType:      req.Type,
					AttendanceDate:      date,
					AttendanceTestId:    testID,
					AttendanceStatus:    entry.Status,
					AttendanceNote:      entry.Note,
					AttendanceMarkedBy:  &markedBy,
				}
				if req.ClassSessionId != nil {
					row.AttendanceClassId = *req.ClassSessionId
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				resp.Created++
				resp.ChangedStudents = append(resp.ChangedStudents, dto.ChangedStudent{
					StudentId: entry.StudentId,
					OldStatus: "",
					NewStatus: entry.Status,
				})
			case err != nil:
				return err
			default:
				if existing.AttendanceStatus == entry.Status && existing.AttendanceNote == entry.Note {
					continue
				}
				old := existing.AttendanceStatus
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"attendance_status":    entry.Status,
					"attendance_note":      entry.Note,
					"attendance_marked_by": markedBy,
				}).Error; err != nil {
					return err
				}
				resp.Updated++
				if old != entry.Status {
					resp.ChangedStudents = append(resp.ChangedStudents, dto.ChangedStudent{
						StudentId: entry.StudentId,
						OldStatus: old,
						NewStatus: entry.Status,
					})
				}
			}
		}
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save attendance")
	}

	// test-type flips reconcile the result rows
	if req.Type == model.TypeTest && len(resp.ChangedStudents) > 0 {
		changed := make([]resultService.ChangedAttendance, 0, len(resp.ChangedStudents))
		for _, ch := range resp.ChangedStudents {
			if ch.OldStatus == "" {
				continue
			}
			changed = append(changed, resultService.ChangedAttendance{
				StudentId: ch.StudentId,
				OldStatus: ch.OldStatus,
				NewStatus: ch.NewStatus,
			})
		}
		if len(changed) > 0 {
			if _, err := resultService.SyncResultsWithAttendance(ctrl.DB, *testID, changed); err != nil {
				logger.Log.Errorf("result sync after attendance edit failed: %v", err)
			}
		}
	}

	payload := map[string]interface{}{
		"type": req.Type,
		"date": date.Format("2006-01-02"),
	}
	if testID != nil {
		payload["test_id"] = testID.String()
	}
	if class != "" {
		realtime.Default.EmitToRoom(realtime.ClassRoom(class, ""), "attendance-updated", payload)
	}
	realtime.Default.Broadcast("attendance-updated", payload)

	entityID := ""
	if testID != nil {
		entityID = testID.String()
	}
	auditService.Record(ctrl.DB, c, "attendance.bulk_mark", "attendances", entityID, map[string]interface{}{
		"type":    req.Type,
		"created": resp.Created,
		"updated": resp.Updated,
		"changed": len(resp.ChangedStudents),
	})
	return helper.Success(c, "Attendance saved", resp)
}

/* ===================== LIST ===================== */
// GET /api/attendance
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	var f dto.FilterAttendanceRequest
	if err := c.QueryParser(&f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	p := helper.ParsePage(c, "attendance_date", "desc")

	q := ctrl.DB.Model(&model.AttendanceModel{})
	if f.StudentId != "" {
		q = q.Where("attendance_student_id = ?", f.StudentId)
	}
	if f.Type != "" {
		q = q.Where("attendance_type = ?", f.Type)
	}
	if f.TestId != "" {
		q = q.Where("attendance_test_id = ?", f.TestId)
	}
	if f.Status != "" {
		q = q.Where("attendance_status = ?", f.Status)
	}
	if f.DateFrom != "" {
		q = q.Where("attendance_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("attendance_date <= ?", f.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count attendance")
	}

	var rows []model.AttendanceModel
	if err := q.Order(p.SafeOrderClause(attendanceSortColumns, "attendance_date")).Limit(p.PerPage).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.Success(c, "Attendance fetched", fiber.Map{
		"attendance": rows,
		"pagination": helper.BuildPageMeta(p, total),
	})
}

/* ===================== STUDENT HISTORY ===================== */
// GET /api/attendance/student/:studentId
func (ctrl *AttendanceController) StudentHistory(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var rows []model.AttendanceModel
	if err := ctrl.DB.
		Where("attendance_student_id = ?", studentID).
		Order("attendance_date DESC").
		Limit(200).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	var present, absent, late int
	for _, r := range rows {
		switch r.AttendanceStatus {
		case model.StatusPresent:
			present++
		case model.StatusAbsent:
			absent++
		case model.StatusLate:
			late++
		}
	}
	return helper.Success(c, "Attendance history fetched", fiber.Map{
		"attendance": rows,
		"summary": fiber.Map{
			"present": present,
			"absent":  absent,
			"late":    late,
			"total":   len(rows),
		},
	})
}

/* ===================== TEST SHEET ===================== */
// GET /api/attendance/test/:testId
// The marking sheet: every student of the test's class joined with whatever
// attendance already exists.
func (ctrl *AttendanceController) TestSheet(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("testId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid test id")
	}

	var test testModel.TestModel
	if err := ctrl.DB.First(&test, "test_id = ?", testID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Test not found")
	}

	type sheetRow struct {
		StudentId   uuid.UUID `json:"student_id"`
		StudentName string    `json:"student_name"`
		StudentRoll string    `json:"student_roll"`
		Status      string    `json:"status"`
		Note        string    `json:"note"`
	}
	var rows []sheetRow
	q := ctrl.DB.Table("students").
		Select(`students.student_id, students.student_name, students.student_roll,
			COALESCE(attendances.attendance_status, '') AS status,
			COALESCE(attendances.attendance_note, '') AS note`).
		Joins(`LEFT JOIN attendances ON attendances.attendance_student_id = students.student_id
			AND attendances.attendance_type = 'test'
			AND attendances.attendance_test_id = ?
			AND attendances.attendance_deleted_at IS NULL`, testID).
		Where("students.student_class = ? AND students.student_is_active = TRUE AND students.student_deleted_at IS NULL", test.TestClass)
	if test.TestSection != "" {
		q = q.Where("students.student_section = ?", test.TestSection)
	}
	if err := q.Order("students.student_roll ASC").Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build attendance sheet")
	}

	return helper.Success(c, "Attendance sheet fetched", fiber.Map{
		"test":  test,
		"sheet": rows,
	})
}

/* ===================== DELETE ===================== */
// DELETE /api/attendance/:id
func (ctrl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	var row model.AttendanceModel
	if err := ctrl.DB.First(&row, "attendance_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Attendance not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance")
	}
	if err := ctrl.DB.Delete(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attendance")
	}

	auditService.Record(ctrl.DB, c, "attendance.delete", "attendances", id.String(), nil)
	return helper.Success(c, "Attendance deleted", nil)
}
