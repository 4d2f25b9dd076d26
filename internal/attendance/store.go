package attendance

import (
	"errors"
	"time"
)

var ErrNoProvisional = errors.New("no provisional record for key")

// Member identifies one enrolled group member.
type Member struct {
	StudentID uint
	FirstName string
	LastName  string
	ChatID    int64
}

// RosterEntry is one member's provisional state within an occurrence roster.
type RosterEntry struct {
	Member
	Status string
}

// Store holds provisional records, the permanent journal and absence
// explanations. Every mutation is a single atomic statement on the backing
// store; callers never read-modify-write across a suspension point.
type Store interface {
	// EnsureProvisional creates an unset record for the key. An existing
	// record for the same key is left untouched and no error is returned.
	EnsureProvisional(studentID, subjectID uint, classTime time.Time) error

	// SetLatestStatus updates the member's most recent provisional record
	// for the subject and returns that record's class time. Returns
	// ErrNoProvisional if none exists.
	SetLatestStatus(studentID, subjectID uint, status string) (time.Time, error)

	// SetStatus updates the record for the exact key. Last write wins.
	// Returns ErrNoProvisional if the key is absent.
	SetStatus(studentID, subjectID uint, classTime time.Time, status string) error

	// Roster lists the occurrence's provisional records restricted to the
	// group's members, ordered by last name then first name.
	Roster(groupID, subjectID uint, classTime time.Time) ([]RosterEntry, error)

	// CommitJournal upserts every resolved (non-unset) record of the
	// occurrence into the journal keyed by (student, subject, date) and
	// discards the occurrence's provisional rows, all in one transaction.
	CommitJournal(subjectID uint, classTime time.Time) error

	// PurgeStale deletes provisional rows for occurrences older than cutoff
	// and reports how many were removed.
	PurgeStale(cutoff time.Time) (int64, error)

	// SaveExplanation records a member's stated reason for an absence.
	SaveExplanation(studentID, subjectID uint, date time.Time, text string) error
}

// Directory resolves group membership and delegated reviewer roles.
type Directory interface {
	ListMembers(groupID uint) ([]Member, error)
	// StudentGroup resolves the group a member belongs to.
	StudentGroup(studentID uint) (uint, error)
	// Reviewers returns the chat ids of the group's primary and deputy
	// representatives, primary first. Either or both may be missing.
	Reviewers(groupID uint) ([]int64, error)
	// ReviewerGroup reports the group a chat reviews, if any.
	ReviewerGroup(chatID int64) (uint, bool, error)
	SubjectName(subjectID uint) (string, error)
}
