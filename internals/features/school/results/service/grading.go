package service

import (
	"math"

	resultModel "coachingku_backend/internals/features/school/results/model"
	testModel "coachingku_backend/internals/features/school/tests/model"
)

// ComputeTotals sums the obtained marks against the test's subject list.
// Marks for subjects not on the test are ignored; obtained marks are clamped
// to the subject maximum.
func ComputeTotals(marks resultModel.MarksMap, subjects testModel.SubjectList) (total float64, maxTotal int) {
	for _, sub := range subjects {
		maxTotal += sub.MaxMarks
		obtained, ok := marks[sub.Name]
		if !ok {
			continue
		}
		if obtained < 0 {
			obtained = 0
		}
		if obtained > float64(sub.MaxMarks) {
			obtained = float64(sub.MaxMarks)
		}
		total += obtained
	}
	return total, maxTotal
}

// ComputePercentage rounds to two decimals.
func ComputePercentage(total float64, maxTotal int) float64 {
	if maxTotal <= 0 {
		return 0
	}
	return math.Round(total/float64(maxTotal)*10000) / 100
}

// ComputeGrade maps a percentage onto the grading scale.
func ComputeGrade(percentage float64) string {
	switch {
	case percentage >= 80:
		return "A+"
	case percentage >= 70:
		return "A"
	case percentage >= 60:
		return "A-"
	case percentage >= 50:
		return "B"
	case percentage >= 40:
		return "C"
	case percentage >= 33:
		return "D"
	default:
		return "F"
	}
}
