package attendance

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/attendance_bot/internal/callback"
	"github.com/example/attendance_bot/internal/models"
	"github.com/example/attendance_bot/internal/transport"
)

// StatusFeed receives provisional status changes, e.g. a live dashboard hub.
type StatusFeed interface {
	StatusChanged(groupID uint, entry RosterEntry, subjectID uint, classTime time.Time)
}

// Router processes member self-reports, reviewer edits and the final confirm.
// It is stateless apart from the transient per-chat wait for an absence
// explanation; everything else lives in the affordance payload or the store.
type Router struct {
	Store     Store
	Dir       Directory
	Transport transport.Transport
	Feed      StatusFeed // optional
	Now       func() time.Time

	mu      sync.Mutex
	pending map[int64]pendingExplanation
}

type pendingExplanation struct {
	StudentID uint
	SubjectID uint
}

func NewRouter(store Store, dir Directory, tr transport.Transport, feed StatusFeed) *Router {
	return &Router{
		Store:     store,
		Dir:       dir,
		Transport: tr,
		Feed:      feed,
		Now:       time.Now,
		pending:   make(map[int64]pendingExplanation),
	}
}

// HandleCallback routes one activated affordance. Unknown tags are ignored;
// malformed ones are logged and ignored. Errors that concern the sender are
// reported back on their chat, never escalated.
func (r *Router) HandleCallback(chatID int64, data string) error {
	action, err := callback.Parse(data)
	if err != nil {
		if errors.Is(err, callback.ErrUnknownAction) {
			return nil
		}
		log.Printf("router: dropping callback from chat %d: %v", chatID, err)
		return nil
	}

	switch action.Kind {
	case callback.KindSelfReport:
		return r.selfReport(chatID, action)
	case callback.KindEditRequest:
		return r.editRequest(chatID, action)
	case callback.KindSetStatus:
		return r.setStatus(chatID, action)
	case callback.KindConfirmAll:
		return r.confirmAll(chatID, action)
	}
	return nil
}

// HandleText consumes a free-text message. It is meaningful only while the
// chat owes an absence explanation; anything else is ignored.
func (r *Router) HandleText(chatID int64, text string) error {
	r.mu.Lock()
	p, ok := r.pending[chatID]
	if ok {
		delete(r.pending, chatID)
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}

	if err := r.Store.SaveExplanation(p.StudentID, p.SubjectID, r.Now(), text); err != nil {
		log.Printf("router: explanation for student %d subject %d failed: %v", p.StudentID, p.SubjectID, err)
		r.reply(chatID, "Could not record your explanation, please try again.")
		return err
	}
	r.reply(chatID, "Thank you, your explanation was forwarded to the representative.")
	return nil
}

func (r *Router) selfReport(chatID int64, action callback.Action) error {
	classTime, err := r.Store.SetLatestStatus(action.StudentID, action.SubjectID, action.Status)
	if err != nil {
		if errors.Is(err, ErrNoProvisional) {
			log.Printf("router: self-report without provisional record, student %d subject %d", action.StudentID, action.SubjectID)
			r.reply(chatID, "There is no open attendance poll for this class.")
			return nil
		}
		log.Printf("router: self-report for student %d failed: %v", action.StudentID, err)
		r.reply(chatID, "Something went wrong, your status was not recorded.")
		return err
	}

	r.reply(chatID, "Your status has been recorded.")
	if r.Feed != nil {
		if groupID, err := r.Dir.StudentGroup(action.StudentID); err != nil {
			log.Printf("router: group lookup for student %d failed: %v", action.StudentID, err)
		} else {
			r.notifyFeed(groupID, action.StudentID, action.SubjectID, classTime)
		}
	}
	if action.Status == models.StatusAbsent {
		r.mu.Lock()
		r.pending[chatID] = pendingExplanation{StudentID: action.StudentID, SubjectID: action.SubjectID}
		r.mu.Unlock()
		r.reply(chatID, "Please reply with the reason for your absence.")
	}
	return nil
}

func (r *Router) editRequest(chatID int64, action callback.Action) error {
	groupID, ok := r.requireReviewer(chatID)
	if !ok {
		return nil
	}

	roster, err := r.Store.Roster(groupID, action.SubjectID, action.ClassTime)
	if err != nil {
		log.Printf("router: roster for group %d failed: %v", groupID, err)
		r.reply(chatID, "Something went wrong, please request the roster again.")
		return err
	}
	if action.Position > len(roster) {
		r.reply(chatID, fmt.Sprintf("Entry %d is out of range, the roster has %d entries.", action.Position, len(roster)))
		return nil
	}
	entry := roster[action.Position-1]

	// Follow-up affordances are tagged with the member directly so a later
	// roster reordering cannot redirect the edit.
	text := fmt.Sprintf("%s %s: %s\nSet a new status:", entry.LastName, entry.FirstName, models.StatusLabel(entry.Status))
	affordances := []transport.Affordance{
		{
			Label: "✅ Present",
			Action: callback.Action{
				Kind:      callback.KindSetStatus,
				Status:    models.StatusPresent,
				StudentID: entry.StudentID,
				SubjectID: action.SubjectID,
				ClassTime: action.ClassTime,
			}.Encode(),
		},
		{
			Label: "❌ Absent",
			Action: callback.Action{
				Kind:      callback.KindSetStatus,
				Status:    models.StatusAbsent,
				StudentID: entry.StudentID,
				SubjectID: action.SubjectID,
				ClassTime: action.ClassTime,
			}.Encode(),
		},
	}
	if _, err := r.Transport.SendPrompt(chatID, text, affordances); err != nil {
		log.Printf("router: edit prompt to chat %d failed: %v", chatID, err)
	}
	return nil
}

func (r *Router) setStatus(chatID int64, action callback.Action) error {
	groupID, ok := r.requireReviewer(chatID)
	if !ok {
		return nil
	}

	err := r.Store.SetStatus(action.StudentID, action.SubjectID, action.ClassTime, action.Status)
	if err != nil {
		if errors.Is(err, ErrNoProvisional) {
			r.reply(chatID, "That record no longer exists, it may already be committed.")
			return nil
		}
		log.Printf("router: status change for student %d failed: %v", action.StudentID, err)
		r.reply(chatID, "Something went wrong, the status was not changed.")
		return err
	}

	r.reply(chatID, "Status updated.")
	r.notifyFeed(groupID, action.StudentID, action.SubjectID, action.ClassTime)
	return nil
}

func (r *Router) confirmAll(chatID int64, action callback.Action) error {
	_, ok := r.requireReviewer(chatID)
	if !ok {
		return nil
	}

	if err := r.Store.CommitJournal(action.SubjectID, action.ClassTime); err != nil {
		log.Printf("router: journal commit for subject %d failed: %v", action.SubjectID, err)
		r.reply(chatID, "Something went wrong, attendance was not committed.")
		return err
	}
	r.reply(chatID, "Attendance has been committed to the journal.")
	return nil
}

// requireReviewer checks that the chat holds a delegated reviewer role and
// resolves the group it reviews.
func (r *Router) requireReviewer(chatID int64) (uint, bool) {
	groupID, ok, err := r.Dir.ReviewerGroup(chatID)
	if err != nil {
		log.Printf("router: reviewer lookup for chat %d failed: %v", chatID, err)
		r.reply(chatID, "Something went wrong, please try again.")
		return 0, false
	}
	if !ok {
		r.reply(chatID, "You are not allowed to perform this action.")
		return 0, false
	}
	return groupID, true
}

func (r *Router) notifyFeed(groupID, studentID, subjectID uint, classTime time.Time) {
	if r.Feed == nil {
		return
	}
	roster, err := r.Store.Roster(groupID, subjectID, classTime)
	if err != nil {
		return
	}
	for _, entry := range roster {
		if entry.StudentID == studentID {
			r.Feed.StatusChanged(groupID, entry, subjectID, classTime)
			return
		}
	}
}

func (r *Router) reply(chatID int64, text string) {
	if err := r.Transport.SendText(chatID, text); err != nil {
		log.Printf("router: reply to chat %d failed: %v", chatID, err)
	}
}
