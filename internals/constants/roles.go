package constants

const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// Notification types. The email channel only fires for the allow-listed
// subset (see services/email).
const (
	NotifTestCreated      = "test_created"
	NotifTestCancelled    = "test_cancelled"
	NotifTestRescheduled  = "test_rescheduled"
	NotifTestReminder     = "test_reminder"
	NotifClassCreated     = "class_created"
	NotifClassCancelled   = "class_cancelled"
	NotifClassRescheduled = "class_rescheduled"
	NotifClassReminder    = "class_reminder"
	NotifMaterialsAdded   = "materials_added"
	NotifResultPublished  = "result_published"
	NotifAttendanceMarked = "attendance_marked"
	NotifPaymentReceived  = "payment_received"
	NotifPaymentReminder  = "payment_reminder"
	NotifGeneral          = "general"
)

const (
	RecipientStudent = "student"
	RecipientUser    = "user"
	RecipientClass   = "class"
	RecipientAll     = "all"
)
