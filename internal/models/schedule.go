package models

import "time"

const (
	WeekParityAll  = "all"
	WeekParityEven = "even"
	WeekParityOdd  = "odd"
)

const (
	ClassKindLecture  = "lecture"
	ClassKindPractice = "practice"
	ClassKindLab      = "lab"
)

// ScheduleSlot is one recurring weekly class for a group. StartTime and
// EndTime are wall-clock values in "15:04" form, resolved against a concrete
// date by the occurrence resolver.
type ScheduleSlot struct {
	ID         uint   `gorm:"primaryKey"`
	GroupID    uint   `gorm:"index"`
	SubjectID  uint   `gorm:"index"`
	DayOfWeek  string `gorm:"size:16"` // time.Weekday name, e.g. "Monday"
	WeekParity string `gorm:"size:8;default:all"`
	StartTime  string `gorm:"size:8"`
	EndTime    string `gorm:"size:8"`
	ClassKind  string `gorm:"size:16"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ClassKindLabel(kind string) string {
	switch kind {
	case ClassKindLecture:
		return "Lecture"
	case ClassKindPractice:
		return "Practice"
	case ClassKindLab:
		return "Lab"
	}
	return kind
}
