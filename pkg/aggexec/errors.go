// Package aggexec implements the aggregation executor: the "many rows ->
// window -> reduced row" pattern, independent of the streaming engine. It
// buffers input columns per group, drives a window policy per group, and
// fans each emitted window out to a set of column-bound aggregators.
package aggexec

import "errors"

// ErrColumnIndexOutOfRange reports that an aggregator binding referenced a
// column index ≥ the executor's configured column count.
var ErrColumnIndexOutOfRange = errors.New("aggexec: column index out of range")

// ErrAggregatorArityMismatch reports that an aggregator binding's column
// list length did not match the aggregator's declared NumInputs.
var ErrAggregatorArityMismatch = errors.New("aggexec: aggregator binding arity mismatch")

// ErrNoColumns reports that a Spec was constructed with zero columns.
var ErrNoColumns = errors.New("aggexec: number of columns must be positive")

// ErrNoGroups reports that a Spec was constructed with zero groups.
var ErrNoGroups = errors.New("aggexec: number of groups must be positive")
