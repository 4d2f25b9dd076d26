package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/attendance_bot/internal/models"
	"github.com/example/attendance_bot/internal/transport"
)

type provKey struct {
	StudentID uint
	SubjectID uint
	ClassTime int64
}

type journalKey struct {
	StudentID uint
	SubjectID uint
	Date      string
}

type savedExplanation struct {
	StudentID uint
	SubjectID uint
	Date      time.Time
	Text      string
}

// memStore is an in-memory Store and Directory mirroring the single-statement
// semantics of the database implementation.
type memStore struct {
	prov           map[provKey]string
	journal        map[journalKey]string
	explanations   []savedExplanation
	members        map[uint][]Member
	reviewers      map[uint][]int64
	reviewerGroups map[int64]uint
	subjects       map[uint]string
}

func newMemStore() *memStore {
	return &memStore{
		prov:           make(map[provKey]string),
		journal:        make(map[journalKey]string),
		members:        make(map[uint][]Member),
		reviewers:      make(map[uint][]int64),
		reviewerGroups: make(map[int64]uint),
		subjects:       make(map[uint]string),
	}
}

func (s *memStore) EnsureProvisional(studentID, subjectID uint, classTime time.Time) error {
	k := provKey{studentID, subjectID, classTime.Unix()}
	if _, ok := s.prov[k]; !ok {
		s.prov[k] = models.StatusUnset
	}
	return nil
}

func (s *memStore) SetLatestStatus(studentID, subjectID uint, status string) (time.Time, error) {
	var latest provKey
	found := false
	for k := range s.prov {
		if k.StudentID != studentID || k.SubjectID != subjectID {
			continue
		}
		if !found || k.ClassTime > latest.ClassTime {
			latest = k
			found = true
		}
	}
	if !found {
		return time.Time{}, ErrNoProvisional
	}
	s.prov[latest] = status
	return time.Unix(latest.ClassTime, 0).UTC(), nil
}

func (s *memStore) SetStatus(studentID, subjectID uint, classTime time.Time, status string) error {
	k := provKey{studentID, subjectID, classTime.Unix()}
	if _, ok := s.prov[k]; !ok {
		return ErrNoProvisional
	}
	s.prov[k] = status
	return nil
}

func (s *memStore) Roster(groupID, subjectID uint, classTime time.Time) ([]RosterEntry, error) {
	var entries []RosterEntry
	for _, m := range s.members[groupID] {
		k := provKey{m.StudentID, subjectID, classTime.Unix()}
		if status, ok := s.prov[k]; ok {
			entries = append(entries, RosterEntry{Member: m, Status: status})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LastName != entries[j].LastName {
			return entries[i].LastName < entries[j].LastName
		}
		return entries[i].FirstName < entries[j].FirstName
	})
	return entries, nil
}

func (s *memStore) CommitJournal(subjectID uint, classTime time.Time) error {
	date := classTime.UTC().Format("2006-01-02")
	for k, status := range s.prov {
		if k.SubjectID != subjectID || k.ClassTime != classTime.Unix() {
			continue
		}
		if status != models.StatusUnset {
			s.journal[journalKey{k.StudentID, subjectID, date}] = status
		}
		delete(s.prov, k)
	}
	return nil
}

func (s *memStore) PurgeStale(cutoff time.Time) (int64, error) {
	var n int64
	for k := range s.prov {
		if k.ClassTime < cutoff.Unix() {
			delete(s.prov, k)
			n++
		}
	}
	return n, nil
}

func (s *memStore) SaveExplanation(studentID, subjectID uint, date time.Time, text string) error {
	s.explanations = append(s.explanations, savedExplanation{studentID, subjectID, date, text})
	return nil
}

func (s *memStore) ListMembers(groupID uint) ([]Member, error) {
	return s.members[groupID], nil
}

func (s *memStore) StudentGroup(studentID uint) (uint, error) {
	for groupID, members := range s.members {
		for _, m := range members {
			if m.StudentID == studentID {
				return groupID, nil
			}
		}
	}
	return 0, fmt.Errorf("student %d not found", studentID)
}

func (s *memStore) Reviewers(groupID uint) ([]int64, error) {
	return s.reviewers[groupID], nil
}

func (s *memStore) ReviewerGroup(chatID int64) (uint, bool, error) {
	groupID, ok := s.reviewerGroups[chatID]
	return groupID, ok, nil
}

func (s *memStore) SubjectName(subjectID uint) (string, error) {
	name, ok := s.subjects[subjectID]
	if !ok {
		return "", fmt.Errorf("subject %d not found", subjectID)
	}
	return name, nil
}

type sentPrompt struct {
	ChatID      int64
	Text        string
	Affordances []transport.Affordance
}

type sentText struct {
	ChatID int64
	Text   string
}

// fakeTransport records outgoing messages and can fail selected chats.
type fakeTransport struct {
	prompts   []sentPrompt
	texts     []sentText
	failChats map[int64]bool
}

func (t *fakeTransport) SendPrompt(chatID int64, text string, affordances []transport.Affordance) (string, error) {
	if t.failChats[chatID] {
		return "", fmt.Errorf("chat %d unreachable", chatID)
	}
	t.prompts = append(t.prompts, sentPrompt{chatID, text, affordances})
	return fmt.Sprintf("msg-%d", len(t.prompts)), nil
}

func (t *fakeTransport) SendText(chatID int64, text string) error {
	if t.failChats[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	t.texts = append(t.texts, sentText{chatID, text})
	return nil
}

func (t *fakeTransport) textsTo(chatID int64) []string {
	var out []string
	for _, m := range t.texts {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (t *fakeTransport) promptsTo(chatID int64) []sentPrompt {
	var out []sentPrompt
	for _, p := range t.prompts {
		if p.ChatID == chatID {
			out = append(out, p)
		}
	}
	return out
}

type recordedChange struct {
	GroupID   uint
	Entry     RosterEntry
	SubjectID uint
	ClassTime time.Time
}

type fakeFeed struct {
	changes []recordedChange
}

func (f *fakeFeed) StatusChanged(groupID uint, entry RosterEntry, subjectID uint, classTime time.Time) {
	f.changes = append(f.changes, recordedChange{groupID, entry, subjectID, classTime})
}
