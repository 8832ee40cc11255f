package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coachingku_backend/internals/logger"
	"coachingku_backend/internals/realtime"

	attendanceModel "coachingku_backend/internals/features/school/attendance/model"
	attendanceService "coachingku_backend/internals/features/school/attendance/service"
	resultModel "coachingku_backend/internals/features/school/results/model"
	testModel "coachingku_backend/internals/features/school/tests/model"
	smsService "coachingku_backend/internals/features/sms/service"
	notifService "coachingku_backend/internals/features/notifications/service"
)

// ResultEntry is one student's marks in a bulk save.
type ResultEntry struct {
	StudentId uuid.UUID            `json:"student_id" validate:"required"`
	Marks     resultModel.MarksMap `json:"marks"`
	IsAbsent  bool                 `json:"is_absent"`
}

// BulkSaveReport summarizes a bulk result save.
type BulkSaveReport struct {
	Created            int `json:"created"`
	Updated            int `json:"updated"`
	AttendanceInferred int `json:"attendance_inferred"`
}

// GateError carries the gate refusal out of BulkSave so the controller can
// answer with the machine-readable reason.
type GateError struct {
	Decision attendanceService.GateDecision
}

func (e *GateError) Error() string {
	return "result entry blocked by attendance gate: " + e.Decision.Reason
}

// BulkSave upserts one result row per entry for a test. Unless overridden,
// the attendance gate must pass for the test as a whole; per-student gate
// refusals mark the entry absent only when the student's attendance row says
// absent. Rows for students who sat the test but have no attendance row get
// one inferred. Finishes with a rerank.
func BulkSave(db *gorm.DB, testID uuid.UUID, entries []ResultEntry, enteredBy *uuid.UUID, overrideGate bool) (BulkSaveReport, error) {
	report := BulkSaveReport{}

	var test testModel.TestModel
	if err := db.First(&test, "test_id = ?", testID).Error; err != nil {
		return report, err
	}

	if !overrideGate {
		decision, err := attendanceService.CanEnterResults(db, testID, nil)
		if err != nil {
			return report, err
		}
		if !decision.Allowed {
			return report, &GateError{Decision: decision}
		}
	}

	for _, entry := range entries {
		if !overrideGate && !entry.IsAbsent {
			decision, err := attendanceService.CanEnterResults(db, testID, &entry.StudentId)
			if err != nil {
				return report, err
			}
			if !decision.Allowed && decision.Reason == attendanceService.ReasonStudentAbsent {
				return report, &GateError{Decision: decision}
			}
		}

		total, maxTotal := ComputeTotals(entry.Marks, test.TestSubjects)
		percentage := ComputePercentage(total, maxTotal)
		grade := ComputeGrade(percentage)
		if entry.IsAbsent {
			total, percentage, grade = 0, 0, ""
			entry.Marks = resultModel.MarksMap{}
		}

		var existing resultModel.ResultModel
		err := db.
			Where("result_test_id = ? AND result_student_id = ?", testID, entry.StudentId).
			First(&existing).Error

		switch {
		case err == gorm.ErrRecordNotFound:
			row := resultModel.ResultModel{
				ResultStudentId:  entry.StudentId,
				ResultTestId:     testID,
				ResultMarks:      entry.Marks,
				ResultTotalMarks: total,
				ResultPercentage: percentage,
				ResultGrade:      grade,
				ResultIsAbsent:   entry.IsAbsent,
				ResultEnteredBy:  enteredBy,
			}
			if err := db.Create(&row).Error; err != nil {
				return report, err
			}
			report.Created++
		case err != nil:
			return report, err
		default:
			updates := map[string]interface{}{
				"result_marks":       entry.Marks,
				"result_total_marks": total,
				"result_percentage":  percentage,
				"result_grade":       grade,
				"result_is_absent":   entry.IsAbsent,
				"result_entered_by":  enteredBy,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				return report, err
			}
			report.Updated++
		}

		if !entry.IsAbsent {
			created, err := attendanceService.InferAttendanceFromResult(db, entry.StudentId, testID, test.TestDate)
			if err != nil {
				logger.Log.Warnf("could not infer attendance for student %s: %v", entry.StudentId, err)
			} else if created {
				report.AttendanceInferred++
			}
		}
	}

	if err := Rerank(db, testID); err != nil {
		return report, err
	}
	return report, nil
}

// Rerank recomputes competition ranks for a test. Absent rows keep rank 0.
func Rerank(db *gorm.DB, testID uuid.UUID) error {
	var results []resultModel.ResultModel
	if err := db.
		Where("result_test_id = ?", testID).
		Find(&results).Error; err != nil {
		return err
	}

	entries := make([]RankEntry, 0, len(results))
	for _, r := range results {
		if r.ResultIsAbsent {
			continue
		}
		entries = append(entries, RankEntry{ResultID: r.ResultId, TotalMarks: r.ResultTotalMarks})
	}
	ranks := CompetitionRanks(entries)

	for _, r := range results {
		want := ranks[r.ResultId] // absent → 0
		if r.ResultRank == want {
			continue
		}
		if err := db.Model(&resultModel.ResultModel{}).
			Where("result_id = ?", r.ResultId).
			Update("result_rank", want).Error; err != nil {
			return err
		}
	}
	return nil
}

// Publish marks the test's results published, reranks, notifies the class
// over every channel, and queues the bulk result SMS in the background.
func Publish(db *gorm.DB, testID uuid.UUID, publishedBy *uuid.UUID) (*testModel.TestModel, error) {
	var test testModel.TestModel
	if err := db.First(&test, "test_id = ?", testID).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&resultModel.ResultModel{}).
		Where("result_test_id = ?", testID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no results to publish for this test")
	}

	if err := Rerank(db, testID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := db.Model(&test).Updates(map[string]interface{}{
		"test_is_published": true,
		"test_published_at": now,
	}).Error; err != nil {
		return nil, err
	}
	test.TestIsPublished = true
	test.TestPublishedAt = &now

	ns := notifService.New(db)
	if _, err := ns.NotifyTest(notifService.EventResultPublished, notifService.TestEventInfo{
		TestID:    test.TestId.String(),
		Name:      test.TestName,
		Class:     test.TestClass,
		Section:   test.TestSection,
		Date:      test.TestDate,
		StartTime: test.TestStartTime,
	}); err != nil {
		logger.Log.Errorf("result-published notification failed: %v", err)
	}

	smsService.EnqueueBulkResultSms(db, testID, publishedBy)
	return &test, nil
}

// SyncReport is the outcome of reconciling results after attendance edits.
type SyncReport struct {
	MarkedAbsent  int `json:"marked_absent"`
	Restored      int `json:"restored"`
	NoResultFound int `json:"no_result_found"`
}

// ChangedAttendance is one student whose attendance status flipped.
type ChangedAttendance struct {
	StudentId uuid.UUID `json:"student_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
}

// SyncResultsWithAttendance reconciles results with edited test attendance:
// a student now absent has their result zeroed out; a student no longer
// absent has their result restored from the stored marks. Restored students
// on a published test get a (deduped) result SMS re-send. Ends with a rerank
// and realtime events so result views refresh.
func SyncResultsWithAttendance(db *gorm.DB, testID uuid.UUID, changed []ChangedAttendance) (SyncReport, error) {
	report := SyncReport{}
	if len(changed) == 0 {
		return report, nil
	}

	var test testModel.TestModel
	if err := db.First(&test, "test_id = ?", testID).Error; err != nil {
		return report, err
	}

	restoredAny := false
	for _, ch := range changed {
		var result resultModel.ResultModel
		err := db.
			Where("result_test_id = ? AND result_student_id = ?", testID, ch.StudentId).
			First(&result).Error
		if err == gorm.ErrRecordNotFound {
			report.NoResultFound++
			continue
		}
		if err != nil {
			return report, err
		}

		nowAbsent := ch.NewStatus == attendanceModel.StatusAbsent
		switch {
		case nowAbsent && !result.ResultIsAbsent:
			// marks stay stored so a later restore can recompute from them
			if err := db.Model(&result).Updates(map[string]interface{}{
				"result_is_absent":   true,
				"result_total_marks": 0,
				"result_percentage":  0,
				"result_grade":       "",
				"result_rank":        0,
			}).Error; err != nil {
				return report, err
			}
			report.MarkedAbsent++
		case !nowAbsent && result.ResultIsAbsent:
			total, maxTotal := ComputeTotals(result.ResultMarks, test.TestSubjects)
			percentage := ComputePercentage(total, maxTotal)
			if err := db.Model(&result).Updates(map[string]interface{}{
				"result_is_absent":   false,
				"result_total_marks": total,
				"result_percentage":  percentage,
				"result_grade":       ComputeGrade(percentage),
			}).Error; err != nil {
				return report, err
			}
			report.Restored++
			restoredAny = true
		}
	}

	if report.MarkedAbsent > 0 || report.Restored > 0 {
		if err := Rerank(db, testID); err != nil {
			return report, err
		}

		payload := map[string]interface{}{
			"test_id": testID.String(),
			"class":   test.TestClass,
			"section": test.TestSection,
		}
		for _, ch := range changed {
			realtime.Default.EmitToRoom(realtime.StudentRoom(ch.StudentId.String()), "results-updated", payload)
		}
		realtime.Default.EmitToRoom(realtime.ClassRoom(test.TestClass, test.TestSection), "results-updated", payload)
	}

	// dedup in the SMS layer keeps already-messaged guardians out
	if restoredAny && test.TestIsPublished {
		smsService.EnqueueBulkResultSms(db, testID, nil)
	}
	return report, nil
}

// MeritEntry is one row of a test's merit list.
type MeritEntry struct {
	ResultId    uuid.UUID            `json:"result_id"`
	StudentId   uuid.UUID            `json:"student_id"`
	StudentName string               `json:"student_name"`
	StudentRoll string               `json:"student_roll"`
	Marks       resultModel.MarksMap `json:"marks"`
	TotalMarks  float64              `json:"total_marks"`
	Percentage  float64              `json:"percentage"`
	Grade       string               `json:"grade"`
	Rank        int                  `json:"rank"`
	IsAbsent    bool                 `json:"is_absent"`
}

// MeritList returns ranked results joined with student identity, ranked rows
// first, absentees at the bottom.
func MeritList(db *gorm.DB, testID uuid.UUID) ([]MeritEntry, error) {
	var entries []MeritEntry
	err := db.Table("results").
		Select(`results.result_id, results.result_student_id AS student_id,
			students.student_name, students.student_roll,
			results.result_marks AS marks, results.result_total_marks AS total_marks,
			results.result_percentage AS percentage, results.result_grade AS grade,
			results.result_rank AS rank, results.result_is_absent AS is_absent`).
		Joins("JOIN students ON students.student_id = results.result_student_id").
		Where("results.result_test_id = ? AND results.result_deleted_at IS NULL", testID).
		Order("results.result_is_absent ASC, results.result_rank ASC, students.student_roll ASC").
		Scan(&entries).Error
	return entries, err
}

// TestStatistics are aggregates over a test's non-absent results.
type TestStatistics struct {
	Appeared    int64            `json:"appeared"`
	Absent      int64            `json:"absent"`
	Highest     float64          `json:"highest"`
	Lowest      float64          `json:"lowest"`
	Average     float64          `json:"average"`
	PassCount   int64            `json:"pass_count"`
	FailCount   int64            `json:"fail_count"`
	GradeCounts map[string]int64 `json:"grade_counts"`
}

// Statistics computes a test's aggregate numbers.
func Statistics(db *gorm.DB, testID uuid.UUID) (TestStatistics, error) {
	stats := TestStatistics{GradeCounts: map[string]int64{}}

	var results []resultModel.ResultModel
	if err := db.
		Where("result_test_id = ?", testID).
		Find(&results).Error; err != nil {
		return stats, err
	}

	var sum float64
	first := true
	for _, r := range results {
		if r.ResultIsAbsent {
			stats.Absent++
			continue
		}
		stats.Appeared++
		sum += r.ResultTotalMarks
		if first || r.ResultTotalMarks > stats.Highest {
			stats.Highest = r.ResultTotalMarks
		}
		if first || r.ResultTotalMarks < stats.Lowest {
			stats.Lowest = r.ResultTotalMarks
		}
		first = false

		if r.ResultGrade == "F" {
			stats.FailCount++
		} else {
			stats.PassCount++
		}
		if r.ResultGrade != "" {
			stats.GradeCounts[r.ResultGrade]++
		}
	}
	if stats.Appeared > 0 {
		stats.Average = math.Round(sum/float64(stats.Appeared)*100) / 100
	}
	return stats, nil
}
