package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditRoute "coachingku_backend/internals/features/audit/route"
	notificationRoute "coachingku_backend/internals/features/notifications/route"
	paymentRoute "coachingku_backend/internals/features/payments/route"
	pushRoute "coachingku_backend/internals/features/push/route"
	attendanceRoute "coachingku_backend/internals/features/school/attendance/route"
	classSessionRoute "coachingku_backend/internals/features/school/class_sessions/route"
	resultRoute "coachingku_backend/internals/features/school/results/route"
	testRoute "coachingku_backend/internals/features/school/tests/route"
	settingsRoute "coachingku_backend/internals/features/settings/route"
	smsRoute "coachingku_backend/internals/features/sms/route"
	studentRoute "coachingku_backend/internals/features/students/route"
	userRoute "coachingku_backend/internals/features/users/route"
	"coachingku_backend/internals/realtime"
)

// SetupRoutes mounts every feature under /api plus the root-level endpoints
// (health, manifest, websocket).
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	app.Use("/ws", realtime.Upgrade)
	app.Get("/ws", realtime.Default.Handler())

	api := app.Group("/api")

	userRoute.AuthRoutes(api, db)
	studentRoute.StudentRoutes(api, db)
	testRoute.TestRoutes(api, db)
	classSessionRoute.ClassSessionRoutes(api, db)
	attendanceRoute.AttendanceRoutes(api, db)
	resultRoute.ResultRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
	pushRoute.PushRoutes(api, db)
	smsRoute.SmsRoutes(api, db)
	paymentRoute.PaymentRoutes(api, db)
	settingsRoute.SettingsRoutes(app, api, db)
	auditRoute.AuditRoutes(api, db)
}
