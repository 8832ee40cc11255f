package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/logger"

	notifService "coachingku_backend/internals/features/notifications/service"
	classModel "coachingku_backend/internals/features/school/class_sessions/model"
	testModel "coachingku_backend/internals/features/school/tests/model"
	testService "coachingku_backend/internals/features/school/tests/service"
)

const notificationRetention = 30 * 24 * time.Hour

// Engine owns the cron runner and all recurring jobs.
type Engine struct {
	cron *cron.Cron
	db   *gorm.DB
}

func New(db *gorm.DB) *Engine {
	return &Engine{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		db:   db,
	}
}

// Start registers the jobs and launches the runner.
func (e *Engine) Start() {
	e.mustAdd("*/15 * * * *", e.sweep24hReminders)
	e.mustAdd("*/5 * * * *", e.sweep1hReminders)
	e.mustAdd("0 * * * *", e.promoteStatuses)
	e.mustAdd("*/10 * * * *", e.drainScheduledNotifications)
	e.mustAdd("0 0 * * *", e.purgeOldNotifications)

	if configs.GetEnv("RENDER_EXTERNAL_URL") != "" {
		e.mustAdd("*/10 * * * *", e.keepAlive)
	}

	e.cron.Start()
	logger.Log.Info("⏰ scheduler started")
}

// Stop blocks until running jobs finish.
func (e *Engine) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
}

func (e *Engine) mustAdd(spec string, job func()) {
	if _, err := e.cron.AddFunc(spec, job); err != nil {
		logger.Log.Fatalf("cron registration failed for %q: %v", spec, err)
	}
}

/* ===================== REMINDERS ===================== */

func (e *Engine) sweep24hReminders() {
	if !configs.Reminder24hEnabled() {
		return
	}
	now := time.Now()
	e.sweepTests(now, true)
	e.sweepClassSessions(now, true)
}

func (e *Engine) sweep1hReminders() {
	if !configs.Reminder1hEnabled() {
		return
	}
	now := time.Now()
	e.sweepTests(now, false)
	e.sweepClassSessions(now, false)
}

// sweepTests fires reminder notifications for tests whose start time falls
// in the given window. The sent flag is set first so an overlapping sweep
// cannot double-fire.
func (e *Engine) sweepTests(now time.Time, dayBefore bool) {
	flagColumn := "test_reminder_1h_sent"
	if dayBefore {
		flagColumn = "test_reminder_24h_sent"
	}

	var tests []testModel.TestModel
	err := e.db.
		Where("test_status = ? AND "+flagColumn+" = FALSE", testModel.StatusScheduled).
		Where("test_date BETWEEN ? AND ?", now.Format("2006-01-02"), now.Add(25*time.Hour).Format("2006-01-02")).
		Find(&tests).Error
	if err != nil {
		logger.Log.Errorf("test reminder sweep query failed: %v", err)
		return
	}

	ns := notifService.New(e.db)
	for _, t := range tests {
		start, _ := testService.SessionWindow(t.TestDate, t.TestStartTime, t.TestEndTime, now.Location())
		if dayBefore && !InReminder24hWindow(start, now) {
			continue
		}
		if !dayBefore && !InReminder1hWindow(start, now) {
			continue
		}

		if err := e.db.Model(&t).Update(flagColumn, true).Error; err != nil {
			logger.Log.Errorf("could not flag reminder for test %s: %v", t.TestId, err)
			continue
		}
		if _, err := ns.NotifyTest(notifService.EventReminder, notifService.TestEventInfo{
			TestID:    t.TestId.String(),
			Name:      t.TestName,
			Class:     t.TestClass,
			Section:   t.TestSection,
			Date:      t.TestDate,
			StartTime: t.TestStartTime,
		}); err != nil {
			logger.Log.Errorf("test reminder notification failed: %v", err)
		}
	}
}

func (e *Engine) sweepClassSessions(now time.Time, dayBefore bool) {
	flagColumn := "class_session_reminder_1h_sent"
	if dayBefore {
		flagColumn = "class_session_reminder_24h_sent"
	}

	var sessions []classModel.ClassSessionModel
	err := e.db.
		Where("class_session_status = ? AND "+flagColumn+" = FALSE", classModel.StatusScheduled).
		Where("class_session_date BETWEEN ? AND ?", now.Format("2006-01-02"), now.Add(25*time.Hour).Format("2006-01-02")).
		Find(&sessions).Error
	if err != nil {
		logger.Log.Errorf("class reminder sweep query failed: %v", err)
		return
	}

	ns := notifService.New(e.db)
	for _, s := range sessions {
		start, _ := testService.SessionWindow(s.ClassSessionDate, s.ClassSessionStartTime, s.ClassSessionEndTime, now.Location())
		if dayBefore && !InReminder24hWindow(start, now) {
			continue
		}
		if !dayBefore && !InReminder1hWindow(start, now) {
			continue
		}

		if err := e.db.Model(&s).Update(flagColumn, true).Error; err != nil {
			logger.Log.Errorf("could not flag reminder for class session %s: %v", s.ClassSessionId, err)
			continue
		}
		if _, err := ns.NotifyClassSession(notifService.EventReminder, notifService.ClassSessionEventInfo{
			SessionID: s.ClassSessionId.String(),
			Subject:   s.ClassSessionSubject,
			Class:     s.ClassSessionClass,
			Section:   s.ClassSessionSection,
			Date:      s.ClassSessionDate,
			StartTime: s.ClassSessionStartTime,
		}); err != nil {
			logger.Log.Errorf("class reminder notification failed: %v", err)
		}
	}
}

/* ===================== STATUS PROMOTION ===================== */

// promoteStatuses walks non-final sessions and applies the derived lifecycle
// status. Cancelled rows are never touched.
func (e *Engine) promoteStatuses() {
	now := time.Now()

	var tests []testModel.TestModel
	if err := e.db.
		Where("test_status IN ?", []string{testModel.StatusScheduled, testModel.StatusOngoing}).
		Where("test_date <= ?", now.Format("2006-01-02")).
		Find(&tests).Error; err != nil {
		logger.Log.Errorf("test status sweep query failed: %v", err)
		return
	}
	for _, t := range tests {
		want := testService.DeriveStatus(t.TestDate, t.TestStartTime, t.TestEndTime, now)
		if want == t.TestStatus {
			continue
		}
		if err := e.db.Model(&t).Update("test_status", want).Error; err != nil {
			logger.Log.Errorf("test status promotion failed for %s: %v", t.TestId, err)
		}
	}

	var sessions []classModel.ClassSessionModel
	if err := e.db.
		Where("class_session_status IN ?", []string{classModel.StatusScheduled, classModel.StatusOngoing}).
		Where("class_session_date <= ?", now.Format("2006-01-02")).
		Find(&sessions).Error; err != nil {
		logger.Log.Errorf("class session status sweep query failed: %v", err)
		return
	}
	for _, s := range sessions {
		want := testService.DeriveStatus(s.ClassSessionDate, s.ClassSessionStartTime, s.ClassSessionEndTime, now)
		if want == s.ClassSessionStatus {
			continue
		}
		if err := e.db.Model(&s).Update("class_session_status", want).Error; err != nil {
			logger.Log.Errorf("class session status promotion failed for %s: %v", s.ClassSessionId, err)
		}
	}
}

/* ===================== NOTIFICATION MAINTENANCE ===================== */

func (e *Engine) drainScheduledNotifications() {
	ns := notifService.New(e.db)
	if n, err := ns.DrainScheduled(); err != nil {
		logger.Log.Errorf("scheduled notification drain failed: %v", err)
	} else if n > 0 {
		logger.Log.Infof("dispatched %d scheduled notifications", n)
	}
}

func (e *Engine) purgeOldNotifications() {
	ns := notifService.New(e.db)
	if n, err := ns.PurgeOld(notificationRetention); err != nil {
		logger.Log.Errorf("notification purge failed: %v", err)
	} else if n > 0 {
		logger.Log.Infof("purged %d old notifications", n)
	}
}
