package stats

import (
	"time"
)

// PhaseStatistics describes one completed training phase
type PhaseStatistics struct {
	NodeIndex int           // index of the node which owned the phase
	Phase     int           // zero-based phase number within the node
	Parallel  bool          // true iff the phase produced tasks for a scheduler
	Tasks     int           // number of tasks produced (parallel) or chunks trained inline (local)
	Results   int           // number of partial results joined
	Runtime   time.Duration // wall time from phase start to phase close
}

// RunStatistics contains statistics about a training or execution run
type RunStatistics struct {
	started         bool
	startTime       time.Time
	totalRuntime    time.Duration
	phaseStartTime  time.Time
	currentPhase    *PhaseStatistics
	completedPhases []PhaseStatistics
	execTasks       int
}

// Start marks the beginning of a run
func (rs *RunStatistics) Start() {
	if rs.started {
		return
	}
	rs.started = true
	rs.startTime = time.Now()
}

// Finish marks the end of a run
func (rs *RunStatistics) Finish() {
	if !rs.started {
		return
	}
	rs.totalRuntime = time.Since(rs.startTime)
	rs.started = false
}

// StartPhase marks the beginning of a training phase for a node
func (rs *RunStatistics) StartPhase(nodeIndex int, phase int, parallel bool) {
	rs.currentPhase = &PhaseStatistics{NodeIndex: nodeIndex, Phase: phase, Parallel: parallel}
	rs.phaseStartTime = time.Now()
}

// TaskProduced counts one task (or one locally trained chunk) for the current phase
func (rs *RunStatistics) TaskProduced() {
	if rs.currentPhase != nil {
		rs.currentPhase.Tasks++
	}
}

// ResultJoined counts one partial result merged into the live node
func (rs *RunStatistics) ResultJoined() {
	if rs.currentPhase != nil {
		rs.currentPhase.Results++
	}
}

// EndPhase marks the close of the current training phase
func (rs *RunStatistics) EndPhase() {
	if rs.currentPhase == nil {
		return
	}
	rs.currentPhase.Runtime = time.Since(rs.phaseStartTime)
	rs.completedPhases = append(rs.completedPhases, *rs.currentPhase)
	rs.currentPhase = nil
}

// ExecTaskProduced counts one execution task
func (rs *RunStatistics) ExecTaskProduced() {
	rs.execTasks++
}

// Phases returns statistics for all completed training phases, in order
func (rs *RunStatistics) Phases() []PhaseStatistics {
	return rs.completedPhases
}

// ExecTasks returns the number of execution tasks produced so far
func (rs *RunStatistics) ExecTasks() int {
	return rs.execTasks
}

// TotalRuntime returns the wall time of the last finished run
func (rs *RunStatistics) TotalRuntime() time.Duration {
	return rs.totalRuntime
}
