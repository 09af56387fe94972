package student

import "strings"

// grades lists the accepted letter grades from best to worst.
var grades = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "F"}

var gradeRank = func() map[string]int {
	m := make(map[string]int, len(grades))
	for i, g := range grades {
		m[g] = i
	}
	return m
}()

// Grades returns the accepted letter grades, best first.
func Grades() []string {
	out := make([]string, len(grades))
	copy(out, grades)
	return out
}

// NormalizeGrade upper-cases a grade as entered by a user.
func NormalizeGrade(grade string) string {
	return strings.ToUpper(grade)
}

// ValidGrade reports whether grade, once normalized, is one of the accepted letter grades.
func ValidGrade(grade string) bool {
	_, ok := gradeRank[NormalizeGrade(grade)]
	return ok
}

// GradeRank returns the position of grade in the best-first ordering, or -1.
func GradeRank(grade string) int {
	if r, ok := gradeRank[NormalizeGrade(grade)]; ok {
		return r
	}
	return -1
}
