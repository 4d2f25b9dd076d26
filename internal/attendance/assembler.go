package attendance

import (
	"fmt"
	"log"
	"strings"

	"github.com/example/attendance_bot/internal/callback"
	"github.com/example/attendance_bot/internal/models"
	"github.com/example/attendance_bot/internal/schedule"
	"github.com/example/attendance_bot/internal/transport"
)

// Assembler fires the post-session collect trigger: it renders the numbered
// roster of provisional records for each reviewer, with one edit affordance
// per entry and one confirm affordance for the batch. Read-only.
type Assembler struct {
	Store     Store
	Dir       Directory
	Transport transport.Transport
}

func (a *Assembler) Collect(oc schedule.Occurrence) {
	subjectName, err := a.Dir.SubjectName(oc.SubjectID)
	if err != nil {
		log.Printf("assembler: subject %d lookup failed: %v", oc.SubjectID, err)
		return
	}
	reviewers, err := a.Dir.Reviewers(oc.GroupID)
	if err != nil {
		log.Printf("assembler: reviewer list for group %d failed: %v", oc.GroupID, err)
		return
	}
	if len(reviewers) == 0 {
		log.Printf("assembler: group %d has no reviewers, roster for subject %d not sent", oc.GroupID, oc.SubjectID)
		return
	}
	roster, err := a.Store.Roster(oc.GroupID, oc.SubjectID, oc.Start)
	if err != nil {
		log.Printf("assembler: roster for group %d subject %d failed: %v", oc.GroupID, oc.SubjectID, err)
		return
	}

	text := RenderRoster(subjectName, roster)
	affordances := make([]transport.Affordance, 0, len(roster)+1)
	for i, entry := range roster {
		affordances = append(affordances, transport.Affordance{
			Label: fmt.Sprintf("✏️ %d. %s %s", i+1, entry.LastName, entry.FirstName),
			Action: callback.Action{
				Kind:      callback.KindEditRequest,
				Position:  i + 1,
				SubjectID: oc.SubjectID,
				ClassTime: oc.Start,
			}.Encode(),
		})
	}
	affordances = append(affordances, transport.Affordance{
		Label: "✅ Confirm and submit",
		Action: callback.Action{
			Kind:      callback.KindConfirmAll,
			SubjectID: oc.SubjectID,
			ClassTime: oc.Start,
		}.Encode(),
	})

	for _, chatID := range reviewers {
		if _, err := a.Transport.SendPrompt(chatID, text, affordances); err != nil {
			log.Printf("assembler: roster to reviewer chat %d failed: %v", chatID, err)
		}
	}
}

// RenderRoster formats the numbered attendance list shown to reviewers.
func RenderRoster(subjectName string, roster []RosterEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Attendance for %q:\n", subjectName)
	if len(roster) == 0 {
		b.WriteString("No records collected.")
		return b.String()
	}
	for i, entry := range roster {
		fmt.Fprintf(&b, "%d. %s %s: %s\n", i+1, entry.LastName, entry.FirstName, models.StatusLabel(entry.Status))
	}
	return strings.TrimRight(b.String(), "\n")
}
