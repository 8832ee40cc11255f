package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var studentSort = map[string]string{
	"student_roll":       "student_roll",
	"student_name":       "student_name",
	"student_created_at": "student_created_at",
}

func TestSafeOrderClauseKnownColumn(t *testing.T) {
	p := PageParams{SortBy: "student_name", SortOrder: "desc"}
	assert.Equal(t, "student_name desc", p.SafeOrderClause(studentSort, "student_roll"))
}

func TestSafeOrderClauseUnknownColumnFallsBack(t *testing.T) {
	p := PageParams{SortBy: "not_a_column", SortOrder: "asc"}
	assert.Equal(t, "student_roll asc", p.SafeOrderClause(studentSort, "student_roll"))
}

func TestSafeOrderClauseRejectsSQLExpressions(t *testing.T) {
	// sort_by comes straight off the query string; anything not in the
	// whitelist must collapse to the default column.
	hostile := []string{
		"(CASE WHEN (SELECT student_password_hash FROM students LIMIT 1) > 'm' THEN student_roll ELSE student_name END)",
		"student_roll; DROP TABLE students",
		"student_roll--",
		"1",
	}
	for _, s := range hostile {
		p := PageParams{SortBy: s, SortOrder: "asc"}
		assert.Equal(t, "student_roll asc", p.SafeOrderClause(studentSort, "student_roll"), "sort_by=%q", s)
	}
}

func TestSafeOrderClauseEmptyMapStillSafe(t *testing.T) {
	p := PageParams{SortBy: "anything", SortOrder: "desc"}
	assert.Equal(t, "student_roll desc", p.SafeOrderClause(map[string]string{}, "student_roll"))
}

func TestBuildPageMeta(t *testing.T) {
	meta := BuildPageMeta(PageParams{Page: 2, PerPage: 25}, 51)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(51), meta.Total)

	meta = BuildPageMeta(PageParams{Page: 1, PerPage: 25}, 0)
	assert.Equal(t, 1, meta.TotalPages)
}
