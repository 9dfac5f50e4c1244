package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHumanDuration(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"years and months", day(2020, 1, 1), day(2021, 6, 1), "1 yr 5 mo"},
		{"whole years", day(2019, 3, 15), day(2022, 3, 15), "3 yr"},
		{"months only", day(2023, 1, 10), day(2023, 4, 10), "3 mo"},
		{"borrows a month", day(2023, 1, 31), day(2023, 3, 1), "1 mo"},
		{"under a month", day(2023, 1, 10), day(2023, 1, 30), "Less than a month"},
		{"month end clamps", day(2021, 1, 31), day(2021, 2, 28), "1 mo"},
		{"month end over a year", day(2020, 1, 31), day(2021, 4, 30), "1 yr 3 mo"},
		{"leap day", day(2020, 2, 29), day(2021, 2, 28), "1 yr"},
		{"one day short", day(2021, 3, 31), day(2021, 4, 29), "Less than a month"},
		{"reversed", day(2023, 5, 1), day(2023, 1, 1), "Less than a month"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HumanDuration(tc.start, tc.end))
		})
	}
}

func TestExperienceDuration(t *testing.T) {
	now := day(2024, 7, 1)
	end := day(2021, 6, 1)

	current := Experience{StartDate: day(2022, 1, 1), IsCurrent: true}
	assert.Equal(t, "2 yr 6 mo", current.Duration(now))
	assert.Equal(t, 30, current.DurationMonths(now))

	past := Experience{StartDate: day(2020, 1, 1), EndDate: &end}
	assert.Equal(t, "1 yr 5 mo", past.Duration(now))
	assert.Equal(t, 17, past.DurationMonths(now))

	open := Experience{StartDate: day(2020, 1, 1)}
	assert.Equal(t, "Present", open.Duration(now))
	assert.Zero(t, open.DurationMonths(now))
}

func TestEducationDurationYears(t *testing.T) {
	now := day(2024, 7, 1)
	end := day(2014, 5, 31)

	years, ok := Education{StartDate: day(2010, 9, 1), EndDate: &end}.DurationYears(now)
	assert.True(t, ok)
	assert.Equal(t, 3, years)

	years, ok = Education{StartDate: day(2022, 9, 1), IsCurrent: true}.DurationYears(now)
	assert.True(t, ok)
	assert.Equal(t, 1, years)

	_, ok = Education{StartDate: day(2022, 9, 1)}.DurationYears(now)
	assert.False(t, ok)
}

func TestHumanFileSize(t *testing.T) {
	assert.Equal(t, "Unknown", HumanFileSize(0))
	assert.Equal(t, "512.0 bytes", HumanFileSize(512))
	assert.Equal(t, "1.5 KB", HumanFileSize(1536))
	assert.Equal(t, "2.0 MB", HumanFileSize(2*1024*1024))
	assert.Equal(t, "Unknown", Resume{}.FileSizeHuman())
}

func TestProjectDurationDays(t *testing.T) {
	start, end := day(2024, 1, 1), day(2024, 3, 1)
	days := Project{StartDate: &start, CompletionDate: &end}.DurationDays()
	if assert.NotNil(t, days) {
		assert.Equal(t, 60, *days)
	}
	assert.Nil(t, Project{StartDate: &start}.DurationDays())
}
