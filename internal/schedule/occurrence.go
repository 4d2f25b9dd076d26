package schedule

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/example/attendance_bot/internal/models"
)

// Occurrence is one concrete date/time instance of a weekly slot.
type Occurrence struct {
	GroupID   uint
	SubjectID uint
	Start     time.Time
	End       time.Time
	Kind      string
}

// WeekParity classifies a date by its ISO week number.
func WeekParity(date time.Time) string {
	_, week := date.ISOWeek()
	if week%2 == 0 {
		return models.WeekParityEven
	}
	return models.WeekParityOdd
}

// ParseClock parses a wall-clock "15:04" value.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("bad clock value %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Occurrences filters weekly slots down to the ones that occur on date and
// resolves their absolute start/end times in loc. Slots with malformed times
// are skipped. The result is ordered by start time, then group, then subject.
func Occurrences(slots []models.ScheduleSlot, date time.Time, loc *time.Location) []Occurrence {
	day := date.In(loc)
	weekday := day.Weekday().String()
	parity := WeekParity(day)

	var out []Occurrence
	for _, slot := range slots {
		if slot.DayOfWeek != weekday {
			continue
		}
		if slot.WeekParity != models.WeekParityAll && slot.WeekParity != parity {
			continue
		}
		sh, sm, err := ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, loc)
		end := start
		if eh, em, err := ParseClock(slot.EndTime); err == nil {
			end = time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, loc)
		}
		out = append(out, Occurrence{
			GroupID:   slot.GroupID,
			SubjectID: slot.SubjectID,
			Start:     start,
			End:       end,
			Kind:      slot.ClassKind,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// Resolver computes occurrences from the stored weekly schedule.
type Resolver struct {
	DB  *gorm.DB
	Loc *time.Location
}

func (r *Resolver) ResolveDate(date time.Time) ([]Occurrence, error) {
	day := date.In(r.Loc)
	var slots []models.ScheduleSlot
	err := r.DB.
		Where("day_of_week = ? AND week_parity IN ?", day.Weekday().String(), []string{models.WeekParityAll, WeekParity(day)}).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return Occurrences(slots, day, r.Loc), nil
}

// GroupSlots returns a group's occurrences for one date, for schedule views.
func (r *Resolver) GroupSlots(groupID uint, date time.Time) ([]Occurrence, error) {
	day := date.In(r.Loc)
	var slots []models.ScheduleSlot
	err := r.DB.
		Where("group_id = ? AND day_of_week = ? AND week_parity IN ?",
			groupID, day.Weekday().String(), []string{models.WeekParityAll, WeekParity(day)}).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return Occurrences(slots, day, r.Loc), nil
}
