package schedulers

import (
	"github.com/go-flo/flo"
)

// Sequence is a flo.SchedulerIterator over a fixed slice of schedulers, one
// per trained node. Nil entries are legal and mean "train that node with an
// inline scheduler".
type Sequence struct {
	schedulers []flo.Scheduler
	next       int
}

// CreateSequence returns a Sequence over the given schedulers
func CreateSequence(schedulers ...flo.Scheduler) *Sequence {
	return &Sequence{schedulers: schedulers}
}

// HasNextScheduler returns true iff schedulers remain in this Sequence
func (s *Sequence) HasNextScheduler() bool {
	return s.next < len(s.schedulers)
}

// NextScheduler returns the next scheduler in this Sequence, or nil if it
// is exhausted
func (s *Sequence) NextScheduler() flo.Scheduler {
	if s.next >= len(s.schedulers) {
		return nil
	}
	scheduler := s.schedulers[s.next]
	s.next++
	return scheduler
}
