package models

import "time"

const (
	StatusUnset   = "unset"
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

func StatusLabel(status string) string {
	switch status {
	case StatusPresent:
		return "Will attend"
	case StatusAbsent:
		return "Absent"
	case StatusUnset:
		return "No response"
	}
	return status
}

// ProvisionalAttendance is one member's in-flight status for one class
// occurrence. Created unset at notify time, mutated by self-reports and
// reviewer edits, consumed by the journal commit.
type ProvisionalAttendance struct {
	ID        uint      `gorm:"primaryKey"`
	StudentID uint      `gorm:"uniqueIndex:uq_provisional"`
	SubjectID uint      `gorm:"uniqueIndex:uq_provisional"`
	ClassTime time.Time `gorm:"uniqueIndex:uq_provisional"`
	Status    string    `gorm:"size:16;default:unset"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JournalEntry is the permanent attendance record. One row per
// (student, subject, date); a later commit overwrites the status.
type JournalEntry struct {
	ID        uint      `gorm:"primaryKey"`
	StudentID uint      `gorm:"uniqueIndex:uq_journal"`
	SubjectID uint      `gorm:"uniqueIndex:uq_journal"`
	Date      time.Time `gorm:"uniqueIndex:uq_journal;type:date"`
	Status    string    `gorm:"size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Explanation struct {
	ID        uint      `gorm:"primaryKey"`
	StudentID uint      `gorm:"index"`
	SubjectID uint      `gorm:"index"`
	Date      time.Time `gorm:"type:date"`
	Text      string
	CreatedAt time.Time
}

// Attestation holds a per-subject grade set by a reviewer.
type Attestation struct {
	ID        uint `gorm:"primaryKey"`
	StudentID uint `gorm:"uniqueIndex:uq_attestation"`
	SubjectID uint `gorm:"uniqueIndex:uq_attestation"`
	Grade     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
