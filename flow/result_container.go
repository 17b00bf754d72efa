package flow

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// NodeResultContainer accumulates trained node clones returned by training
// tasks. The first result becomes the accumulator and every subsequent result
// is joined into it, bounding memory to a single clone regardless of task
// count. GetResults returns a singleton collection, so this container is a
// drop-in replacement for an ordinary result list.
//
// Not thread-safe: the Scheduler must serialize calls to AddResult.
type NodeResultContainer struct {
	node flo.ParallelNode
}

// CreateNodeResultContainer returns an empty NodeResultContainer
func CreateNodeResultContainer() *NodeResultContainer {
	return &NodeResultContainer{}
}

// AddResult joins a trained clone into the accumulated node. Nil results
// (from clones which closed their phase) are ignored.
func (c *NodeResultContainer) AddResult(result interface{}, taskIndex int) error {
	if result == nil {
		return nil
	}
	node, ok := result.(flo.ParallelNode)
	if !ok {
		return errors.IncompatibleResultError{}
	}
	if c.node == nil {
		c.node = node
		return nil
	}
	return c.node.Join(node)
}

// GetResults drains this container, returning the merged node as a
// singleton collection
func (c *NodeResultContainer) GetResults() []interface{} {
	if c.node == nil {
		return []interface{}{}
	}
	node := c.node
	c.node = nil
	return []interface{}{node}
}
