package flow

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/feature"
)

// A TrainCallableFactory builds the TaskCallable dispatched with the first
// task of a training phase. Custom factories can preprocess chunks before
// they reach the pipeline (e.g. decode 8-bit images to float64 rows).
type TrainCallableFactory func(flowNode *FlowNode) flo.TaskCallable

// An ExecuteCallableFactory builds the TaskCallable dispatched with the first
// task of an execution run
type ExecuteCallableFactory func(f *Flow, upToNode int) flo.TaskCallable

// flowTrainCallable advances a forked pipeline clone by one chunk per Call.
// Each instance is one-shot: schedulers fork it once per task.
type flowTrainCallable struct {
	flowNode *FlowNode
	features feature.Snapshot
}

// CreateTrainCallable is the default TrainCallableFactory. The callable
// captures the feature flags active at construction time.
func CreateTrainCallable(flowNode *FlowNode) flo.TaskCallable {
	return &flowTrainCallable{flowNode: flowNode, features: feature.Capture()}
}

// SetupEnvironment restores the feature flags captured at construction
func (c *flowTrainCallable) SetupEnvironment() error {
	feature.Restore(c.features)
	return nil
}

// Call trains the wrapped clone by one chunk and returns the node which is
// still mid-phase, or nil if the whole clone finished its phase. Local
// fallback training relies on the wrapped FlowNode being preserved, so
// derived callables should preserve it as well.
func (c *flowTrainCallable) Call(chunk interface{}) (interface{}, error) {
	if err := c.flowNode.Train(chunk); err != nil {
		return nil, err
	}
	return c.flowNode.TrainingNode(), nil
}

// Fork returns a callable wrapping a freshly forked clone
func (c *flowTrainCallable) Fork() (flo.TaskCallable, error) {
	forked, err := c.flowNode.Fork()
	if err != nil {
		return nil, err
	}
	return &flowTrainCallable{flowNode: forked.(*FlowNode), features: c.features}, nil
}

// flowExecuteCallable runs chunks through a shared pipeline reference.
// Execution does not mutate node state, so forks share the same Flow.
type flowExecuteCallable struct {
	flow     *Flow
	upToNode int
	features feature.Snapshot
}

// CreateExecuteCallable is the default ExecuteCallableFactory
func CreateExecuteCallable(f *Flow, upToNode int) flo.TaskCallable {
	return &flowExecuteCallable{flow: f, upToNode: upToNode, features: feature.Capture()}
}

// SetupEnvironment restores the feature flags captured at construction
func (c *flowExecuteCallable) SetupEnvironment() error {
	feature.Restore(c.features)
	return nil
}

// Call returns the result of executing one chunk through the pipeline
func (c *flowExecuteCallable) Call(chunk interface{}) (interface{}, error) {
	return c.flow.Execute(chunk, c.upToNode)
}

// Fork returns a callable sharing the same pipeline reference - no deep
// clone is needed since execution does not mutate shared state
func (c *flowExecuteCallable) Fork() (flo.TaskCallable, error) {
	return &flowExecuteCallable{flow: c.flow, upToNode: c.upToNode, features: c.features}, nil
}
