// Command dagctl is the demo CLI for the dagflow streaming operator DAG
// engine: it wires pkg/config, internal/streamlog, pkg/telemetry, and
// internal/ingest around the reference pipelines in pkg/ops, pkg/windows,
// and pkg/aggregators, mirroring the teacher's cmd/cli wiring of its own
// config/logger/analyzer stack.
package main

import "github.com/katalvlaran/dagflow/cmd/dagctl/cmd"

func main() {
	cmd.Execute()
}
