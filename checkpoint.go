package flo

// A CheckpointFunction is invoked with a Node immediately after the Node
// closes its final training phase. It may return a map of named values which
// the owning flow merges into its extension state, or nil.
// Checkpoint functions only ever observe closed phases: no training phase
// remains open across a checkpoint boundary.
type CheckpointFunction func(node Node) (map[string]interface{}, error)
