package service

import (
	"strings"

	"github.com/google/uuid"
)

// TemplateVars are the placeholders a result-SMS template may use.
type TemplateVars struct {
	StudentName string
	TestName    string
	Score       string
	Total       string
	Highest     string
	Website     string
	Percentage  string
	Grade       string
	Rank        string
}

// RenderTemplate substitutes {placeholder} tokens. Unknown tokens are left
// in place so a typo in the stored template is visible rather than silent.
func RenderTemplate(tmpl string, vars TemplateVars) string {
	r := strings.NewReplacer(
		"{studentName}", vars.StudentName,
		"{testName}", vars.TestName,
		"{score}", vars.Score,
		"{total}", vars.Total,
		"{highest}", vars.Highest,
		"{website}", vars.Website,
		"{percentage}", vars.Percentage,
		"{grade}", vars.Grade,
		"{rank}", vars.Rank,
	)
	return strings.TrimSpace(r.Replace(tmpl))
}

// FilterAlreadySent drops candidates who already have a sent result SMS for
// the test, so repeated triggers never double-message a guardian.
func FilterAlreadySent(candidates []uuid.UUID, alreadySent map[uuid.UUID]bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(candidates))
	for _, id := range candidates {
		if !alreadySent[id] {
			out = append(out, id)
		}
	}
	return out
}
