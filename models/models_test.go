package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Weather API":           "weather-api",
		"  Café  Crème ":        "cafe-creme",
		"snake_case_title":      "snake-case-title",
		"C++ & Rust!":           "c-rust",
		"already-a-slug":        "already-a-slug",
		"Multiple   Spaces---x": "multiple-spaces-x",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestFormattedGrade(t *testing.T) {
	value, scale := 3.8, 4.0
	e := Education{GradeType: GradeGPA, GradeValue: &value, GradeScale: &scale}
	require.NotNil(t, e.FormattedGrade())
	assert.Equal(t, "3.80/4.00 GPA", *e.FormattedGrade())

	pct := 92.5
	e = Education{GradeType: GradePercentage, GradeValue: &pct}
	assert.Equal(t, "92.50 %", *e.FormattedGrade())

	e = Education{GradeType: GradeNone, GradeValue: &pct}
	assert.Equal(t, "92.50", *e.FormattedGrade())

	e.GradeDisplay = "First Class Honours"
	assert.Equal(t, "First Class Honours", *e.FormattedGrade())

	assert.Nil(t, Education{GradeType: GradeGPA}.FormattedGrade())
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 1, CountLines(""))
	assert.Equal(t, 1, CountLines("fmt.Println()"))
	assert.Equal(t, 3, CountLines("a\nb\nc"))

	snippet := CodeSnippet{Code: "one\ntwo"}
	require.NoError(t, snippet.BeforeSave(nil))
	assert.Equal(t, 2, snippet.LineCount)
}

func TestRotatingTextValidate(t *testing.T) {
	valid := RotatingText{Text: "Go developer", DelaySeconds: DefaultDelaySeconds, TypingSpeed: DefaultTypingSpeed}
	assert.NoError(t, valid.Validate())

	blank := valid
	blank.Text = " \t "
	assert.Error(t, blank.Validate())

	fast := valid
	fast.DelaySeconds = 0.2
	assert.Error(t, fast.Validate())

	slow := valid
	slow.TypingSpeed = 10
	assert.Error(t, slow.Validate())
}

func TestExperienceBeforeSave(t *testing.T) {
	end := day(2020, 1, 1)
	current := Experience{StartDate: day(2021, 1, 1), EndDate: &end, IsCurrent: true}
	require.NoError(t, current.BeforeSave(nil))
	assert.Nil(t, current.EndDate)

	inverted := Experience{StartDate: day(2021, 1, 1), EndDate: &end}
	assert.Error(t, inverted.BeforeSave(nil))
}

func TestAdminUserBeforeSave(t *testing.T) {
	u := AdminUser{Username: "root", IsSuperAdmin: true}
	require.NoError(t, u.BeforeSave(nil))
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsSuperuser)
	assert.False(t, u.DateJoined.IsZero())

	u.PhoneNumber = "555-1234"
	assert.Error(t, u.BeforeSave(nil))
}

func TestResumeBeforeSave(t *testing.T) {
	r := Resume{File: "resumes/CV.PDF", FileType: FilePDF}
	assert.NoError(t, r.BeforeSave(nil))
	assert.Equal(t, "CV.PDF", r.FileName())

	r.FileType = FileDOCX
	assert.Error(t, r.BeforeSave(nil))

	assert.Error(t, (&Resume{FileType: FilePDF}).BeforeSave(nil))
}

func TestDemoStatDuration(t *testing.T) {
	start := day(2024, 1, 1)
	end := start.Add(90e9)
	stat := DemoStat{StartTime: start, EndTime: &end}
	require.NoError(t, stat.BeforeSave(nil))
	require.NotNil(t, stat.Duration)
	assert.Equal(t, 90, *stat.Duration)
}
