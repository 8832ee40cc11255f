package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	resultModel "coachingku_backend/internals/features/school/results/model"
	testModel "coachingku_backend/internals/features/school/tests/model"
)

func threeSubjects() testModel.SubjectList {
	return testModel.SubjectList{
		{Name: "Physics", MaxMarks: 100},
		{Name: "Chemistry", MaxMarks: 100},
		{Name: "Math", MaxMarks: 100},
	}
}

func TestComputeTotals(t *testing.T) {
	subjects := threeSubjects()

	total, maxTotal := ComputeTotals(resultModel.MarksMap{
		"Physics":   80,
		"Chemistry": 70,
		"Math":      75,
	}, subjects)
	assert.Equal(t, 225.0, total)
	assert.Equal(t, 300, maxTotal)
}

func TestComputeTotalsClampsAndIgnoresUnknown(t *testing.T) {
	subjects := threeSubjects()

	total, maxTotal := ComputeTotals(resultModel.MarksMap{
		"Physics": 120, // above max, clamped to 100
		"Math":    -5,  // below zero, clamped to 0
		"Biology": 90,  // not on the test, ignored
	}, subjects)
	assert.Equal(t, 100.0, total)
	assert.Equal(t, 300, maxTotal)
}

func TestComputeTotalsMissingSubjectCountsZero(t *testing.T) {
	total, maxTotal := ComputeTotals(resultModel.MarksMap{"Physics": 50}, threeSubjects())
	assert.Equal(t, 50.0, total)
	assert.Equal(t, 300, maxTotal)
}

func TestComputePercentage(t *testing.T) {
	assert.Equal(t, 75.0, ComputePercentage(225, 300))
	assert.Equal(t, 40.0, ComputePercentage(120, 300))
	assert.Equal(t, 33.33, ComputePercentage(100, 300))
	assert.Equal(t, 0.0, ComputePercentage(50, 0))
}

func TestComputeGradeBands(t *testing.T) {
	cases := []struct {
		percentage float64
		grade      string
	}{
		{100, "A+"},
		{80, "A+"},
		{79.99, "A"},
		{70, "A"},
		{69.5, "A-"},
		{60, "A-"},
		{59, "B"},
		{50, "B"},
		{49.99, "C"},
		{40, "C"},
		{39, "D"},
		{33, "D"},
		{32.99, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, ComputeGrade(tc.percentage), "percentage %.2f", tc.percentage)
	}
}

func TestGradePipeline(t *testing.T) {
	subjects := threeSubjects()

	total, maxTotal := ComputeTotals(resultModel.MarksMap{
		"Physics":   80,
		"Chemistry": 70,
		"Math":      75,
	}, subjects)
	pct := ComputePercentage(total, maxTotal)
	assert.Equal(t, 75.0, pct)
	assert.Equal(t, "A", ComputeGrade(pct))

	total, maxTotal = ComputeTotals(resultModel.MarksMap{
		"Physics":   40,
		"Chemistry": 40,
		"Math":      40,
	}, subjects)
	pct = ComputePercentage(total, maxTotal)
	assert.Equal(t, 40.0, pct)
	assert.Equal(t, "C", ComputeGrade(pct))
}
