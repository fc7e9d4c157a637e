// Package dag implements the append-only, topologically-sorted dependency
// graph the streaming engine is built from: every node's predecessors must
// already exist, so node ids are a valid evaluation order by construction.
package dag

import "errors"

// ErrInvalidDependency reports that Add was called with a predecessor id
// that does not refer to an already-added node.
var ErrInvalidDependency = errors.New("dag: predecessor id out of range")

// InvalidID is returned by Add in place of a node id when the dependency
// list fails validation, mirroring the reference container's sentinel.
const InvalidID = -1
