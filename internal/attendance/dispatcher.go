package attendance

import (
	"fmt"
	"log"

	"github.com/example/attendance_bot/internal/callback"
	"github.com/example/attendance_bot/internal/models"
	"github.com/example/attendance_bot/internal/schedule"
	"github.com/example/attendance_bot/internal/transport"
)

// Dispatcher fires the pre-session notify trigger: one interactive prompt per
// enrolled member, one unset provisional record per member, one passive
// heads-up per reviewer. Safe to re-run for the same occurrence.
type Dispatcher struct {
	Store     Store
	Dir       Directory
	Transport transport.Transport
}

func (d *Dispatcher) Notify(oc schedule.Occurrence) {
	subjectName, err := d.Dir.SubjectName(oc.SubjectID)
	if err != nil {
		log.Printf("dispatcher: subject %d lookup failed: %v", oc.SubjectID, err)
		return
	}
	members, err := d.Dir.ListMembers(oc.GroupID)
	if err != nil {
		log.Printf("dispatcher: member list for group %d failed: %v", oc.GroupID, err)
		return
	}

	text := fmt.Sprintf("Reminder: %q (%s) starts at %s.\nPlease mark your attendance.",
		subjectName, models.ClassKindLabel(oc.Kind), oc.Start.Format("15:04"))

	for _, m := range members {
		affordances := []transport.Affordance{
			{
				Label: "✅ Will attend",
				Action: callback.Action{
					Kind:      callback.KindSelfReport,
					Status:    models.StatusPresent,
					SubjectID: oc.SubjectID,
					StudentID: m.StudentID,
				}.Encode(),
			},
			{
				Label: "❌ Absent",
				Action: callback.Action{
					Kind:      callback.KindSelfReport,
					Status:    models.StatusAbsent,
					SubjectID: oc.SubjectID,
					StudentID: m.StudentID,
				}.Encode(),
			},
		}
		if _, err := d.Transport.SendPrompt(m.ChatID, text, affordances); err != nil {
			log.Printf("dispatcher: prompt to chat %d failed: %v", m.ChatID, err)
		}
		if err := d.Store.EnsureProvisional(m.StudentID, oc.SubjectID, oc.Start); err != nil {
			log.Printf("dispatcher: provisional for student %d subject %d failed: %v",
				m.StudentID, oc.SubjectID, err)
		}
	}

	reviewers, err := d.Dir.Reviewers(oc.GroupID)
	if err != nil {
		log.Printf("dispatcher: reviewer list for group %d failed: %v", oc.GroupID, err)
		return
	}
	headsUp := fmt.Sprintf("Reminder: %q (%s) starts at %s.",
		subjectName, models.ClassKindLabel(oc.Kind), oc.Start.Format("15:04"))
	for _, chatID := range reviewers {
		if err := d.Transport.SendText(chatID, headsUp); err != nil {
			log.Printf("dispatcher: heads-up to reviewer chat %d failed: %v", chatID, err)
		}
	}
}
