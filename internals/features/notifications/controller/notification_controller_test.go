package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/notifications/model"
)

// dryRunDB builds SQL without touching a server: sql.Open is lazy and the
// automatic ping is off.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=t dbname=t",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func testCtx(t *testing.T) (*fiber.App, *fiber.Ctx) {
	t.Helper()
	app := fiber.New()
	return app, app.AcquireCtx(&fasthttp.RequestCtx{})
}

func TestRecipientScopeStudentLookupIsOwnershipBound(t *testing.T) {
	db := dryRunDB(t)
	app, c := testCtx(t)
	defer app.ReleaseCtx(c)
	c.Locals("class", "9")
	c.Locals("section", "A")

	subjectID := uuid.New()
	targetID := uuid.New()

	var row model.NotificationModel
	tx := recipientScope(db.Where("notification_id = ?", targetID), c, "student", subjectID).First(&row)
	sql := tx.Statement.SQL.String()

	assert.Contains(t, sql, "notification_id = ")
	assert.Contains(t, sql, "notification_student_id = ")
	assert.Contains(t, sql, "notification_recipient_type = 'all'")
	assert.Contains(t, sql, "notification_class = ")
	assert.Contains(t, tx.Statement.Vars, subjectID, "caller id must bind into the lookup")
}

func TestRecipientScopeAdminLookup(t *testing.T) {
	db := dryRunDB(t)
	app, c := testCtx(t)
	defer app.ReleaseCtx(c)

	subjectID := uuid.New()

	var row model.NotificationModel
	tx := recipientScope(db.Where("notification_id = ?", uuid.New()), c, "admin", subjectID).First(&row)
	sql := tx.Statement.SQL.String()

	assert.Contains(t, sql, "notification_user_id = ")
	assert.Contains(t, sql, "notification_recipient_type = 'all'")
	assert.NotContains(t, sql, "notification_student_id")
}
