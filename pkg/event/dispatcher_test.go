package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToCollectionSubscribers(t *testing.T) {
	d := NewDispatcher()

	var patientChanges []Change
	d.Subscribe("patients", func(c Change) {
		patientChanges = append(patientChanges, c)
	})

	var doctorChanges []Change
	d.Subscribe("doctors", func(c Change) {
		doctorChanges = append(doctorChanges, c)
	})

	d.Publish(Change{Collection: "patients", Operation: OpCreate, RecordID: "1"})
	d.Publish(Change{Collection: "patients", Operation: OpDelete, RecordID: "1"})
	d.Publish(Change{Collection: "doctors", Operation: OpUpdate, RecordID: "4"})

	assert.Len(t, patientChanges, 2)
	assert.Len(t, doctorChanges, 1)
	assert.Equal(t, OpCreate, patientChanges[0].Operation)
	assert.Equal(t, "4", doctorChanges[0].RecordID)
}

func TestDispatcherStampsOccurredAt(t *testing.T) {
	d := NewDispatcher()

	var got Change
	d.Subscribe("patients", func(c Change) { got = c })

	d.Publish(Change{Collection: "patients", Operation: OpClear})
	assert.False(t, got.OccurredAt.IsZero())
}

func TestDispatcherNoSubscribersIsNoop(t *testing.T) {
	d := NewDispatcher()
	assert.NotPanics(t, func() {
		d.Publish(Change{Collection: "exams", Operation: OpCreate, RecordID: "9"})
	})
}
