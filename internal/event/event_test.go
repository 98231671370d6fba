package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) OnEvent(e Event) {
	*r.log = append(*r.log, r.name+":"+string(e.Type))
}

func TestDispatchOrderAndDuplicates(t *testing.T) {
	var log []string
	d := NewDispatcher()
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	d.Subscribe(FOVChanged, a)
	d.Subscribe(FOVChanged, b)
	d.Subscribe(FOVChanged, a)

	d.Dispatch(Event{Type: FOVChanged})
	assert.Equal(t, []string{"a:FOVChanged", "b:FOVChanged", "a:FOVChanged"}, log)
	assert.Equal(t, 3, d.Count(FOVChanged))
}

func TestDispatchOnlyMatchingType(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Subscribe(DetectionStarted, ListenerFunc(func(Event) { calls++ }))

	d.Dispatch(Event{Type: FOVChanged})
	assert.Equal(t, 0, calls)
	d.Dispatch(Event{Type: DetectionStarted})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.Count(FOVChanged))
}
