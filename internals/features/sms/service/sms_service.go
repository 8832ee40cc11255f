package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "coachingku_backend/internals/helpers"
	"coachingku_backend/internals/logger"

	resultModel "coachingku_backend/internals/features/school/results/model"
	testModel "coachingku_backend/internals/features/school/tests/model"
	smsModel "coachingku_backend/internals/features/sms/model"
	studentModel "coachingku_backend/internals/features/students/model"
)

const chunkSize = 5

var (
	retryDelays     = []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}
	interChunkDelay = 1 * time.Second
)

// BulkSendReport summarizes one bulk run.
type BulkSendReport struct {
	Total   int `json:"total"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

type sendJob struct {
	studentID *uuid.UUID
	testID    *uuid.UUID
	name      string
	phone     string
	message   string
	smsType   string
}

// preferredPhone picks the guardian number when present, falling back to the
// student's own.
func preferredPhone(s studentModel.StudentModel) string {
	if s.StudentGuardianPhone != "" {
		return s.StudentGuardianPhone
	}
	return s.StudentPhone
}

func fmtMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EnqueueBulkResultSms schedules a bulk result-SMS run on the background
// queue. Used by result publishing so the HTTP request returns immediately.
func EnqueueBulkResultSms(db *gorm.DB, testID uuid.UUID, sentBy *uuid.UUID) {
	DefaultQueue.Enqueue(Task{
		Name: "bulk-result-sms:" + testID.String(),
		Run: func(ctx context.Context) error {
			report, err := SendBulkResultSms(ctx, db, testID, sentBy)
			if err != nil {
				return err
			}
			logger.Log.Infof("📨 result SMS for test %s: sent=%d failed=%d skipped=%d",
				testID, report.Sent, report.Failed, report.Skipped)
			return nil
		},
	})
}

// SendBulkResultSms sends one result SMS per non-absent result of the test,
// skipping students whose guardian was already messaged for this test.
func SendBulkResultSms(ctx context.Context, db *gorm.DB, testID uuid.UUID, sentBy *uuid.UUID) (BulkSendReport, error) {
	report := BulkSendReport{}

	cfg := ResolveConfig()
	if !cfg.Ready() {
		return report, fmt.Errorf("SMS sending is disabled or not configured")
	}

	var test testModel.TestModel
	if err := db.First(&test, "test_id = ?", testID).Error; err != nil {
		return report, err
	}

	var results []resultModel.ResultModel
	if err := db.
		Where("result_test_id = ? AND result_is_absent = FALSE", testID).
		Find(&results).Error; err != nil {
		return report, err
	}
	if len(results) == 0 {
		return report, nil
	}

	highest := 0.0
	byStudent := make(map[uuid.UUID]resultModel.ResultModel, len(results))
	candidates := make([]uuid.UUID, 0, len(results))
	for _, r := range results {
		byStudent[r.ResultStudentId] = r
		candidates = append(candidates, r.ResultStudentId)
		if r.ResultTotalMarks > highest {
			highest = r.ResultTotalMarks
		}
	}

	// dedup: one sent result SMS per (student, test), ever
	var sentRows []smsModel.SmsLogModel
	if err := db.
		Select("sms_log_student_id").
		Where("sms_log_test_id = ? AND sms_log_type = ? AND sms_log_status = ?",
			testID, smsModel.TypeResultSms, smsModel.StatusSent).
		Find(&sentRows).Error; err != nil {
		return report, err
	}
	alreadySent := make(map[uuid.UUID]bool, len(sentRows))
	for _, row := range sentRows {
		if row.SmsLogStudentId != nil {
			alreadySent[*row.SmsLogStudentId] = true
		}
	}
	fresh := FilterAlreadySent(candidates, alreadySent)
	report.Skipped = len(candidates) - len(fresh)
	if len(fresh) == 0 {
		return report, nil
	}

	var students []studentModel.StudentModel
	if err := db.Where("student_id IN ?", fresh).Find(&students).Error; err != nil {
		return report, err
	}

	jobs := make([]sendJob, 0, len(students))
	for _, s := range students {
		r, ok := byStudent[s.StudentId]
		if !ok {
			continue
		}
		phone := helper.NormalizePhone(preferredPhone(s))
		if !helper.ValidBDPhone(phone) {
			report.Skipped++
			logger.Log.Warnf("skipping result SMS for %s: invalid phone", s.StudentName)
			continue
		}
		msg := RenderTemplate(cfg.Template, TemplateVars{
			StudentName: s.StudentName,
			TestName:    test.TestName,
			Score:       fmtMarks(r.ResultTotalMarks),
			Total:       strconv.Itoa(test.TestTotalMaxMarks),
			Highest:     fmtMarks(highest),
			Website:     cfg.Website,
			Percentage:  fmtMarks(r.ResultPercentage),
			Grade:       r.ResultGrade,
			Rank:        strconv.Itoa(r.ResultRank),
		})
		sid := s.StudentId
		tid := testID
		jobs = append(jobs, sendJob{
			studentID: &sid,
			testID:    &tid,
			name:      s.StudentName,
			phone:     phone,
			message:   msg,
			smsType:   smsModel.TypeResultSms,
		})
	}

	report.Total = len(jobs)
	sent, failed := runJobs(ctx, db, cfg, jobs, sentBy)
	report.Sent = sent
	report.Failed = failed
	return report, nil
}

// CustomSmsInput selects recipients for a free-form message.
type CustomSmsInput struct {
	Class      string
	Section    string
	StudentIds []uuid.UUID
	Message    string
	PhoneField string // "student" | "guardian" | "both"(default guardian-preferred)
}

// SendCustomSms sends a custom message to students matched by filters.
func SendCustomSms(ctx context.Context, db *gorm.DB, in CustomSmsInput, sentBy *uuid.UUID) (BulkSendReport, error) {
	report := BulkSendReport{}

	cfg := ResolveConfig()
	if !cfg.Ready() {
		return report, fmt.Errorf("SMS sending is disabled or not configured")
	}

	q := db.Model(&studentModel.StudentModel{}).Where("student_is_active = TRUE")
	if len(in.StudentIds) > 0 {
		q = q.Where("student_id IN ?", in.StudentIds)
	}
	if in.Class != "" {
		q = q.Where("student_class = ?", in.Class)
	}
	if in.Section != "" {
		q = q.Where("student_section = ?", in.Section)
	}

	var students []studentModel.StudentModel
	if err := q.Find(&students).Error; err != nil {
		return report, err
	}

	jobs := make([]sendJob, 0, len(students))
	for _, s := range students {
		var raw string
		switch in.PhoneField {
		case "student":
			raw = s.StudentPhone
		case "guardian":
			raw = s.StudentGuardianPhone
		default:
			raw = preferredPhone(s)
		}
		phone := helper.NormalizePhone(raw)
		if !helper.ValidBDPhone(phone) {
			report.Skipped++
			continue
		}
		sid := s.StudentId
		jobs = append(jobs, sendJob{
			studentID: &sid,
			name:      s.StudentName,
			phone:     phone,
			message:   in.Message,
			smsType:   smsModel.TypeCustomSms,
		})
	}

	report.Total = len(jobs)
	sent, failed := runJobs(ctx, db, cfg, jobs, sentBy)
	report.Sent = sent
	report.Failed = failed
	return report, nil
}

// runJobs sends jobs in chunks of 5, each with up to 3 retries, pausing
// between chunks so the provider is not flooded.
func runJobs(ctx context.Context, db *gorm.DB, cfg Config, jobs []sendJob, sentBy *uuid.UUID) (sent, failed int) {
	var mu sync.Mutex

	for start := 0; start < len(jobs); start += chunkSize {
		end := start + chunkSize
		if end > len(jobs) {
			end = len(jobs)
		}

		var wg sync.WaitGroup
		for _, job := range jobs[start:end] {
			wg.Add(1)
			go func(job sendJob) {
				defer wg.Done()
				ok := sendOne(ctx, db, cfg, job, sentBy)
				mu.Lock()
				if ok {
					sent++
				} else {
					failed++
				}
				mu.Unlock()
			}(job)
		}
		wg.Wait()

		if end < len(jobs) {
			select {
			case <-ctx.Done():
				mu.Lock()
				failed += len(jobs) - end
				mu.Unlock()
				return sent, failed
			case <-time.After(interChunkDelay):
			}
		}
	}
	return sent, failed
}

// sendOne writes the queued log row first, then retries the provider call
// with backoff, finalizing the row as sent or failed.
func sendOne(ctx context.Context, db *gorm.DB, cfg Config, job sendJob, sentBy *uuid.UUID) bool {
	log := smsModel.SmsLogModel{
		SmsLogStudentId:     job.studentID,
		SmsLogTestId:        job.testID,
		SmsLogRecipientName: job.name,
		SmsLogPhone:         job.phone,
		SmsLogMessage:       job.message,
		SmsLogType:          job.smsType,
		SmsLogStatus:        smsModel.StatusQueued,
		SmsLogSentBy:        sentBy,
	}
	if err := db.Create(&log).Error; err != nil {
		logger.Log.Errorf("failed to write SMS log row: %v", err)
		return false
	}

	var lastErr error
	for attempt := 0; attempt < len(retryDelays); attempt++ {
		resp, err := sendViaProvider(ctx, cfg, job.phone, job.message)
		if err == nil {
			db.Model(&log).Updates(map[string]interface{}{
				"sms_log_status":            smsModel.StatusSent,
				"sms_log_retry_count":       attempt,
				"sms_log_provider_response": datatypes.JSONMap(resp),
				"sms_log_error":             "",
			})
			return true
		}
		lastErr = err
		updates := map[string]interface{}{"sms_log_retry_count": attempt + 1}
		if resp != nil {
			updates["sms_log_provider_response"] = datatypes.JSONMap(resp)
		}
		db.Model(&log).Updates(updates)

		if attempt < len(retryDelays)-1 {
			select {
			case <-ctx.Done():
				attempt = len(retryDelays)
			case <-time.After(retryDelays[attempt]):
			}
		}
	}

	db.Model(&log).Updates(map[string]interface{}{
		"sms_log_status": smsModel.StatusFailed,
		"sms_log_error":  lastErr.Error(),
	})
	return false
}
