package flow

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// A ParallelCheckpointFlow is a ParallelFlow which invokes a checkpoint
// function immediately after a node closes its final training phase. A
// checkpoint function may contribute named values, which are merged into the
// flow's extension state.
//
// Training phases are always closed before a checkpoint fires, so checkpoint
// functions never observe remote or un-joined state.
type ParallelCheckpointFlow struct {
	*ParallelFlow
	checkpoints []flo.CheckpointFunction
	state       map[string]interface{}
}

// CreateParallelCheckpoint returns a new ParallelCheckpointFlow over the
// given nodes
func CreateParallelCheckpoint(nodes ...flo.Node) *ParallelCheckpointFlow {
	pcf := &ParallelCheckpointFlow{
		ParallelFlow: CreateParallel(nodes...),
		state:        make(map[string]interface{}),
	}
	pcf.Flow.postStopTrainingHook = pcf.checkpointHook
	return pcf
}

// State returns the extension state contributed by checkpoint functions. It
// is a deliberately bounded form of dynamic state: checkpoints may only add
// named values here, after a well-defined lifecycle point.
func (pcf *ParallelCheckpointFlow) State() map[string]interface{} {
	return pcf.state
}

// SetupTraining prepares parallel training with checkpoint support. The
// checkpoints slice holds at most one function per node - nil entries and a
// short slice are legal.
func (pcf *ParallelCheckpointFlow) SetupTraining(iterables []flo.ChunkIterable, checkpoints []flo.CheckpointFunction, callable TrainCallableFactory) error {
	if err := pcf.setCheckpoints(checkpoints); err != nil {
		return err
	}
	return pcf.ParallelFlow.SetupTraining(iterables, callable)
}

// Train trains all trainable nodes in the flow, firing checkpoint functions
// as nodes finish their final training phases. Same contract as
// ParallelFlow.Train otherwise.
func (pcf *ParallelCheckpointFlow) Train(iterables []flo.ChunkIterable, checkpoints []flo.CheckpointFunction, opts *TrainOptions) error {
	if err := pcf.setCheckpoints(checkpoints); err != nil {
		return err
	}
	return pcf.ParallelFlow.Train(iterables, opts)
}

// setCheckpoints validates and pads the checkpoint slice to one entry per node
func (pcf *ParallelCheckpointFlow) setCheckpoints(checkpoints []flo.CheckpointFunction) error {
	if len(checkpoints) > pcf.Len() {
		return errors.CheckpointCountError{Expected: pcf.Len(), Actual: len(checkpoints)}
	}
	padded := make([]flo.CheckpointFunction, pcf.Len())
	copy(padded, checkpoints)
	pcf.checkpoints = padded
	return nil
}

// checkpointHook fires the node's checkpoint function once its last phase
// has closed, and merges any returned values into the extension state
func (pcf *ParallelCheckpointFlow) checkpointHook(nodeIndex int, node flo.Node) error {
	if pcf.checkpoints == nil || pcf.checkpoints[nodeIndex] == nil {
		return nil
	}
	if node.RemainingTrainPhases() > 0 {
		return nil
	}
	values, err := pcf.checkpoints[nodeIndex](node)
	if err != nil {
		return err
	}
	for name, value := range values {
		pcf.state[name] = value
	}
	return nil
}
