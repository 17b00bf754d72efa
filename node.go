package flo

// A Node is one stage of a Flow. Nodes are stateful: trainable Nodes learn
// from data over one or more sequential training phases before they can be
// executed, while non-trainable Nodes only transform data. A training phase
// is closed by StopTraining, which may leave further phases pending.
type Node interface {
	Train(chunk interface{}) error                 // Train advances the current training phase by one chunk of data
	Execute(chunk interface{}) (interface{}, error) // Execute transforms one chunk of data
	IsTraining() bool                              // IsTraining returns true iff this Node has an open or pending training phase
	CurrentTrainPhase() int                        // CurrentTrainPhase returns the zero-based index of the current training phase
	RemainingTrainPhases() int                     // RemainingTrainPhases returns the number of phases left, including the current one
	StopTraining() error                           // StopTraining closes the current training phase
}

// A ParallelNode is a Node whose training can be distributed. Fork produces
// an independently mutable clone of the Node's learned state, and Join merges
// a trained clone back into this Node. Join must be commutative and
// associative, since partial results arrive in no particular order.
// A ParallelNode may decline forking for its current phase by returning
// errors.NonParallelizableError from Fork, in which case the phase is
// trained locally instead.
type ParallelNode interface {
	Node
	Fork() (ParallelNode, error)
	Join(other ParallelNode) error
}
