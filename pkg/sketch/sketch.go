// Package sketch implements the Sketch Queue: a frontier of program
// templates (sequences of statement kinds with no operands assigned
// yet) that the synthesizer expands breadth-first until a candidate
// program matches the target table or the dequeue limit is reached.
package sketch

import (
	"errors"

	"github.com/cyphersynth/synth/pkg/idl"
)

// ErrMalformed is returned when a sketch does not begin with Match and
// end with Return, the shape every program must have.
var ErrMalformed = errors.New("malformed sketch")

// Sketch is a program template: the statement kinds of a program
// without operands. The initial sketch is always [Match, Return].
type Sketch []idl.Kind

// Initial returns the seed sketch every synthesis run starts from.
func Initial() Sketch {
	return Sketch{idl.KindMatch, idl.KindReturn}
}

// Validate checks the sketch discipline: begins with Match, ends with
// Return, and every statement in between is Match or Require.
func (s Sketch) Validate() error {
	if len(s) < 2 || s[0] != idl.KindMatch || s[len(s)-1] != idl.KindReturn {
		return ErrMalformed
	}
	for _, k := range s[1 : len(s)-1] {
		if k != idl.KindMatch && k != idl.KindRequire {
			return ErrMalformed
		}
	}
	return nil
}

// Expand returns the two sketches derived from s once it has been
// fully explored without producing a winner: one with a Require
// statement inserted just before the trailing Return, and one with a
// new leading Match.
func (s Sketch) Expand() (addRequire, addLeadingMatch Sketch) {
	addRequire = make(Sketch, 0, len(s)+1)
	addRequire = append(addRequire, s[:len(s)-1]...)
	addRequire = append(addRequire, idl.KindRequire, idl.KindReturn)

	addLeadingMatch = make(Sketch, 0, len(s)+1)
	addLeadingMatch = append(addLeadingMatch, idl.KindMatch)
	addLeadingMatch = append(addLeadingMatch, s...)

	return addRequire, addLeadingMatch
}

// Queue is a FIFO frontier of sketches, seeded with Initial().
type Queue struct {
	items []Sketch
}

// NewQueue returns a queue seeded with the minimal sketch.
func NewQueue() *Queue {
	return &Queue{items: []Sketch{Initial()}}
}

// Push enqueues a sketch at the tail of the frontier.
func (q *Queue) Push(s Sketch) {
	q.items = append(q.items, s)
}

// Pop dequeues the sketch at the head of the frontier. ok is false if
// the queue is empty.
func (q *Queue) Pop() (s Sketch, ok bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	s, q.items = q.items[0], q.items[1:]
	return s, true
}

// Len reports how many sketches are currently queued.
func (q *Queue) Len() int {
	return len(q.items)
}
