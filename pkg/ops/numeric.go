// Package ops provides reference operators for pkg/engine: a rolling (or
// cumulative) column sum and a tumbling-window OHLC reducer.
package ops

// Integer is the tick constraint the window-aware operators need for
// epoch-aligned boundary arithmetic, mirroring pkg/windows.
type Integer interface {
	~int | ~int32 | ~int64
}
