package ws

import (
	"time"

	"github.com/example/attendance_bot/internal/attendance"
)

// Feed adapts the hub to the attendance router's StatusFeed.
type Feed struct {
	Hub *RosterHub
}

func (f *Feed) StatusChanged(groupID uint, entry attendance.RosterEntry, subjectID uint, classTime time.Time) {
	f.Hub.Broadcast(RosterUpdate{
		GroupID:   groupID,
		StudentID: entry.StudentID,
		FullName:  entry.FirstName + " " + entry.LastName,
		SubjectID: subjectID,
		ClassTime: classTime,
		Status:    entry.Status,
		UpdatedAt: time.Now(),
	})
}
