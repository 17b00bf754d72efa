// Package schedulers provides in-process Scheduler implementations and
// general-purpose ResultContainers. A Scheduler owns the execution strategy
// for tasks handed out by a coordinator - inline, pooled goroutines, or
// anything else satisfying the flo.Scheduler contract.
package schedulers

import (
	"sort"
)

// ListResultContainer accumulates results in arrival order. It is the
// default container for new schedulers.
type ListResultContainer struct {
	results []interface{}
}

// CreateListResultContainer returns an empty ListResultContainer
func CreateListResultContainer() *ListResultContainer {
	return &ListResultContainer{}
}

// AddResult appends a result in arrival order
func (c *ListResultContainer) AddResult(result interface{}, taskIndex int) error {
	c.results = append(c.results, result)
	return nil
}

// GetResults drains this container
func (c *ListResultContainer) GetResults() []interface{} {
	results := c.results
	c.results = nil
	if results == nil {
		return []interface{}{}
	}
	return results
}

// OrderedResultContainer accumulates results in task submission order,
// regardless of completion order, so that concatenation reconstructs the
// original data ordering. Used for parallel execution.
type OrderedResultContainer struct {
	entries []orderedResult
}

type orderedResult struct {
	taskIndex int
	result    interface{}
}

// CreateOrderedResultContainer returns an empty OrderedResultContainer
func CreateOrderedResultContainer() *OrderedResultContainer {
	return &OrderedResultContainer{}
}

// AddResult stores a result along with its task submission index
func (c *OrderedResultContainer) AddResult(result interface{}, taskIndex int) error {
	c.entries = append(c.entries, orderedResult{taskIndex: taskIndex, result: result})
	return nil
}

// GetResults drains this container, sorted by task submission order
func (c *OrderedResultContainer) GetResults() []interface{} {
	entries := c.entries
	c.entries = nil
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].taskIndex < entries[j].taskIndex
	})
	results := make([]interface{}, len(entries))
	for i, entry := range entries {
		results[i] = entry.result
	}
	return results
}
