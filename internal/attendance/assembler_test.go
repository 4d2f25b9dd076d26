package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/attendance_bot/internal/models"
)

func TestCollectSendsNumberedRoster(t *testing.T) {
	store := seededStore()
	tr := &fakeTransport{}
	oc := testOccurrence()
	for _, m := range store.members[1] {
		assert.NoError(t, store.EnsureProvisional(m.StudentID, oc.SubjectID, oc.Start))
	}
	assert.NoError(t, store.SetStatus(3, 7, oc.Start, models.StatusPresent))

	a := &Assembler{Store: store, Dir: store, Transport: tr}
	a.Collect(oc)

	assert.Len(t, tr.promptsTo(900), 1)
	assert.Len(t, tr.promptsTo(901), 1)

	p := tr.promptsTo(900)[0]
	assert.Equal(t, "Attendance for \"Linear Algebra\":\n1. Ivanova Anna: Will attend\n2. Petrov Boris: No response", p.Text)
	// One edit affordance per entry plus the confirm.
	assert.Len(t, p.Affordances, 3)
	assert.Equal(t, "edit:1:7:1736157600", p.Affordances[0].Action)
	assert.Equal(t, "edit:2:7:1736157600", p.Affordances[1].Action)
	assert.Equal(t, "confirm:7:1736157600", p.Affordances[2].Action)
}

func TestCollectWithoutReviewersSendsNothing(t *testing.T) {
	store := seededStore()
	store.reviewers[1] = nil
	tr := &fakeTransport{}

	a := &Assembler{Store: store, Dir: store, Transport: tr}
	a.Collect(testOccurrence())

	assert.Empty(t, tr.prompts)
	assert.Empty(t, tr.texts)
}

func TestRenderRosterEmpty(t *testing.T) {
	got := RenderRoster("Physics", nil)
	assert.Equal(t, "Attendance for \"Physics\":\nNo records collected.", got)
}
