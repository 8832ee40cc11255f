package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coachingku_backend/internals/configs"
	auditModel "coachingku_backend/internals/features/audit/model"
	notifModel "coachingku_backend/internals/features/notifications/model"
	paymentModel "coachingku_backend/internals/features/payments/model"
	pushModel "coachingku_backend/internals/features/push/model"
	attendanceModel "coachingku_backend/internals/features/school/attendance/model"
	classSessionModel "coachingku_backend/internals/features/school/class_sessions/model"
	resultModel "coachingku_backend/internals/features/school/results/model"
	testModel "coachingku_backend/internals/features/school/tests/model"
	settingModel "coachingku_backend/internals/features/settings/model"
	smsModel "coachingku_backend/internals/features/sms/model"
	studentModel "coachingku_backend/internals/features/students/model"
	userModel "coachingku_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=coachingku&options=-c statement_timeout=5000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer-friendly (transaction pooling)
	}), &gorm.Config{
		TranslateError: true, // map 23505 etc. onto gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&studentModel.StudentModel{},
		&testModel.TestModel{},
		&classSessionModel.ClassSessionModel{},
		&attendanceModel.AttendanceModel{},
		&resultModel.ResultModel{},
		&notifModel.NotificationModel{},
		&smsModel.SmsLogModel{},
		&pushModel.PushSubscriptionModel{},
		&paymentModel.PaymentModel{},
		&settingModel.SiteSettingModel{},
		&auditModel.AuditLogModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Partial unique indexes AutoMigrate cannot express. Class rows are unique
	// per (student, date, class) so a student may sit several classes a day;
	// test rows are unique per (student, test).
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_class
			ON attendances (attendance_student_id, attendance_date, attendance_class_id)
			WHERE attendance_type = 'class' AND attendance_deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_test
			ON attendances (attendance_student_id, attendance_test_id)
			WHERE attendance_type = 'test' AND attendance_deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_result_student_test
			ON results (result_student_id, result_test_id)
			WHERE result_deleted_at IS NULL`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Printf("⚠️ index create: %v", err)
		}
	}
	log.Println("✅ Migrations applied.")
}
