package flo

// A Task is one schedulable unit of work: a chunk of data paired with the
// TaskCallable which should process it. Only the first Task of a training
// or execution phase carries a Callable - every subsequent Task of the same
// phase carries nil, meaning "fork the callable dispatched with the first
// Task". This halves the bytes moved when chunks are large and the callable
// is reusable across a phase.
type Task struct {
	Chunk    interface{}
	Callable TaskCallable
}

// A TaskCallable is a self-contained unit of work which a Scheduler can
// execute, possibly concurrently or on a remote worker. It captures the
// feature flags active at construction time, and SetupEnvironment
// re-establishes exactly those flags before invocation, so that concurrent
// or remote execution contexts never leak configuration across tasks.
type TaskCallable interface {
	SetupEnvironment() error                       // SetupEnvironment restores the feature flags captured at construction
	Call(chunk interface{}) (interface{}, error)   // Call processes one chunk and returns a partial result
	Fork() (TaskCallable, error)                   // Fork returns an independent copy of this callable for a new task
}
