package schedule

import (
	"testing"
	"time"

	"github.com/example/attendance_bot/internal/models"
)

func TestWeekParity(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		// ISO week 2 of 2025
		{name: "even week", date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), want: models.WeekParityEven},
		// ISO week 3 of 2025
		{name: "odd week", date: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), want: models.WeekParityOdd},
		// Jan 1 2025 falls in ISO week 1
		{name: "year boundary", date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), want: models.WeekParityOdd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekParity(tt.date); got != tt.want {
				t.Errorf("WeekParity(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestOccurrences(t *testing.T) {
	slots := []models.ScheduleSlot{
		{ID: 1, GroupID: 1, SubjectID: 10, DayOfWeek: "Monday", WeekParity: models.WeekParityAll, StartTime: "10:00", EndTime: "11:30", ClassKind: models.ClassKindLecture},
		{ID: 2, GroupID: 1, SubjectID: 11, DayOfWeek: "Monday", WeekParity: models.WeekParityEven, StartTime: "12:00", EndTime: "13:30", ClassKind: models.ClassKindPractice},
		{ID: 3, GroupID: 1, SubjectID: 12, DayOfWeek: "Monday", WeekParity: models.WeekParityOdd, StartTime: "08:00", EndTime: "09:30", ClassKind: models.ClassKindLab},
		{ID: 4, GroupID: 2, SubjectID: 10, DayOfWeek: "Tuesday", WeekParity: models.WeekParityAll, StartTime: "10:00", EndTime: "11:30", ClassKind: models.ClassKindLecture},
		{ID: 5, GroupID: 2, SubjectID: 13, DayOfWeek: "Monday", WeekParity: models.WeekParityAll, StartTime: "bogus", EndTime: "11:30", ClassKind: models.ClassKindLecture},
	}

	evenMonday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)  // ISO week 2
	oddMonday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)  // ISO week 3

	tests := []struct {
		name         string
		date         time.Time
		wantSubjects []uint
	}{
		{name: "even week monday", date: evenMonday, wantSubjects: []uint{10, 11}},
		{name: "odd week monday", date: oddMonday, wantSubjects: []uint{12, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Occurrences(slots, tt.date, time.UTC)
			if len(got) != len(tt.wantSubjects) {
				t.Fatalf("got %d occurrences, want %d", len(got), len(tt.wantSubjects))
			}
			for i, oc := range got {
				if oc.SubjectID != tt.wantSubjects[i] {
					t.Errorf("occurrence %d subject = %d, want %d", i, oc.SubjectID, tt.wantSubjects[i])
				}
				if !oc.Start.After(tt.date) {
					t.Errorf("occurrence %d start %s not on %s", i, oc.Start, tt.date.Format("2006-01-02"))
				}
			}
		})
	}
}

func TestOccurrencesResolvesClock(t *testing.T) {
	slots := []models.ScheduleSlot{
		{GroupID: 1, SubjectID: 10, DayOfWeek: "Monday", WeekParity: models.WeekParityAll, StartTime: "09:45", EndTime: "11:15", ClassKind: models.ClassKindLecture},
	}
	date := time.Date(2025, 1, 6, 15, 30, 0, 0, time.UTC) // time of day must not matter

	got := Occurrences(slots, date, time.UTC)
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(got))
	}
	want := time.Date(2025, 1, 6, 9, 45, 0, 0, time.UTC)
	if !got[0].Start.Equal(want) {
		t.Errorf("start = %s, want %s", got[0].Start, want)
	}
	wantEnd := time.Date(2025, 1, 6, 11, 15, 0, 0, time.UTC)
	if !got[0].End.Equal(wantEnd) {
		t.Errorf("end = %s, want %s", got[0].End, wantEnd)
	}
}
