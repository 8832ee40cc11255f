package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	tmpl := "Dear guardian, {studentName} scored {score}/{total} ({percentage}%, grade {grade}, rank {rank}) in {testName}. Highest: {highest}. {website}"
	got := RenderTemplate(tmpl, TemplateVars{
		StudentName: "Rahim",
		TestName:    "Weekly Test 5",
		Score:       "225",
		Total:       "300",
		Highest:     "280",
		Website:     "example.com",
		Percentage:  "75",
		Grade:       "A",
		Rank:        "4",
	})
	assert.Equal(t,
		"Dear guardian, Rahim scored 225/300 (75%, grade A, rank 4) in Weekly Test 5. Highest: 280. example.com",
		got)
}

func TestRenderTemplateLeavesUnknownTokens(t *testing.T) {
	got := RenderTemplate("Hello {studentName} {unknown}", TemplateVars{StudentName: "Karim"})
	assert.Equal(t, "Hello Karim {unknown}", got)
}

func TestRenderTemplateTrimsWhitespace(t *testing.T) {
	got := RenderTemplate("  {studentName} passed  ", TemplateVars{StudentName: "Karim"})
	assert.Equal(t, "Karim passed", got)
}

func TestFilterAlreadySent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	fresh := FilterAlreadySent([]uuid.UUID{a, b, c}, map[uuid.UUID]bool{b: true})
	assert.Equal(t, []uuid.UUID{a, c}, fresh)
}

func TestFilterAlreadySentAllSent(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	fresh := FilterAlreadySent([]uuid.UUID{a, b}, map[uuid.UUID]bool{a: true, b: true})
	assert.Empty(t, fresh)
}

func TestFilterAlreadySentNilMap(t *testing.T) {
	a := uuid.New()
	assert.Equal(t, []uuid.UUID{a}, FilterAlreadySent([]uuid.UUID{a}, nil))
}
