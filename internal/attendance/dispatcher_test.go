package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/attendance_bot/internal/models"
	"github.com/example/attendance_bot/internal/schedule"
)

func seededStore() *memStore {
	store := newMemStore()
	store.subjects[7] = "Linear Algebra"
	store.members[1] = []Member{
		{StudentID: 3, FirstName: "Anna", LastName: "Ivanova", ChatID: 100},
		{StudentID: 4, FirstName: "Boris", LastName: "Petrov", ChatID: 200},
	}
	store.reviewers[1] = []int64{900, 901}
	store.reviewerGroups[900] = 1
	store.reviewerGroups[901] = 1
	return store
}

func testOccurrence() schedule.Occurrence {
	return schedule.Occurrence{
		GroupID:   1,
		SubjectID: 7,
		Start:     time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 1, 6, 11, 30, 0, 0, time.UTC),
		Kind:      models.ClassKindLecture,
	}
}

func TestNotifyCreatesOneRecordPerMember(t *testing.T) {
	store := seededStore()
	tr := &fakeTransport{}
	d := &Dispatcher{Store: store, Dir: store, Transport: tr}
	oc := testOccurrence()

	d.Notify(oc)

	assert.Len(t, store.prov, 2)
	for _, status := range store.prov {
		assert.Equal(t, models.StatusUnset, status)
	}
	assert.Len(t, tr.promptsTo(100), 1)
	assert.Len(t, tr.promptsTo(200), 1)
	assert.Len(t, tr.textsTo(900), 1)
	assert.Len(t, tr.textsTo(901), 1)
	assert.Contains(t, tr.prompts[0].Text, "Linear Algebra")
	assert.Len(t, tr.prompts[0].Affordances, 2)
}

func TestNotifyIsIdempotent(t *testing.T) {
	store := seededStore()
	tr := &fakeTransport{}
	d := &Dispatcher{Store: store, Dir: store, Transport: tr}
	oc := testOccurrence()

	d.Notify(oc)
	// An accepted self-report must survive a duplicate notify run.
	_, err := store.SetLatestStatus(3, 7, models.StatusPresent)
	assert.NoError(t, err)
	d.Notify(oc)

	assert.Len(t, store.prov, 2)
	assert.Equal(t, models.StatusPresent, store.prov[provKey{3, 7, oc.Start.Unix()}])
	assert.Equal(t, models.StatusUnset, store.prov[provKey{4, 7, oc.Start.Unix()}])
}

func TestNotifyContinuesPastUnreachableChat(t *testing.T) {
	store := seededStore()
	tr := &fakeTransport{failChats: map[int64]bool{100: true}}
	d := &Dispatcher{Store: store, Dir: store, Transport: tr}

	d.Notify(testOccurrence())

	// The failed prompt still gets a provisional record and the remaining
	// member is still reached.
	assert.Len(t, store.prov, 2)
	assert.Len(t, tr.promptsTo(200), 1)
}
