// Package report summarizes the grade distribution of the stored students.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/studentdb/internal/student"
	"github.com/jeanpaul/studentdb/internal/tui"
)

// CourseSummary counts the students of one course.
type CourseSummary struct {
	Course   string
	Students int
	Best     string
	Worst    string
}

type Report struct {
	Total   int
	ByGrade map[string]int
	Courses []CourseSummary
}

// Build computes the report for records.
func Build(records []student.Record) Report {
	r := Report{Total: len(records), ByGrade: make(map[string]int)}
	courses := make(map[string]*CourseSummary)
	for _, rec := range records {
		r.ByGrade[rec.Grade]++

		cs, ok := courses[rec.Course]
		if !ok {
			cs = &CourseSummary{Course: rec.Course, Best: rec.Grade, Worst: rec.Grade}
			courses[rec.Course] = cs
		}
		cs.Students++
		if better(rec.Grade, cs.Best) {
			cs.Best = rec.Grade
		}
		if better(cs.Worst, rec.Grade) {
			cs.Worst = rec.Grade
		}
	}
	for _, cs := range courses {
		r.Courses = append(r.Courses, *cs)
	}
	sort.Slice(r.Courses, func(i, j int) bool { return r.Courses[i].Course < r.Courses[j].Course })
	return r
}

// better reports whether grade a ranks above b. Unknown grades rank last.
func better(a, b string) bool {
	ra, rb := student.GradeRank(a), student.GradeRank(b)
	if ra < 0 {
		return false
	}
	return rb < 0 || ra < rb
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Grade Report\n\n")
	if r.Total == 0 {
		b.WriteString("No students on record.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "**Students:** %d\n\n", r.Total)

	b.WriteString("## Distribution\n\n")
	b.WriteString("| Grade | Students | Share |\n| --- | ---: | --- |\n")
	for _, g := range student.Grades() {
		n := r.ByGrade[g]
		if n == 0 {
			continue
		}
		share := float64(n) / float64(r.Total)
		fmt.Fprintf(&b, "| %s | %d | `%s` %.0f%% |\n", g, n, tui.MakeBar(share, 20), share*100)
	}
	if other := r.Total - r.known(); other > 0 {
		fmt.Fprintf(&b, "| (unrecognized) | %d | |\n", other)
	}

	b.WriteString("\n## Courses\n\n")
	b.WriteString("| Course | Students | Best | Worst |\n| --- | ---: | --- | --- |\n")
	for _, c := range r.Courses {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", escapeCell(c.Course), c.Students, c.Best, c.Worst)
	}
	return b.String()
}

func (r Report) known() int {
	n := 0
	for _, g := range student.Grades() {
		n += r.ByGrade[g]
	}
	return n
}

// Escape pipes in content to prevent breaking table
func escapeCell(s string) string {
	if s == "" {
		return "(none)"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

// Render formats markdown for the terminal. With styled false the plain
// "notty" style is used, suitable for pipes and files.
func Render(markdown string, width int, styled bool) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
