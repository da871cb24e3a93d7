// Package sim provides the discrete-event simulation engine for fog/cloud
// task offloading.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: EventQueue, the simulated clock and the (time, sequence) ordered heap
//   - process.go: Process suspension points (Timeout, Await, Exit)
//   - simulator.go: the scheduler loop and horizon handling
//
// Then the fog/cloud model built on top of it:
//   - task.go: Task lifecycle (created → routed → completed) and CompletionRecord
//   - sensor.go: the perpetual task generator
//   - routing.go: the offload decision, fog nodes and the cloud stage
//   - metrics.go: the per-run statistics Collector
//   - system.go: wiring of one run and its Result
//
// # Determinism
//
// Execution is single-threaded. Events at the same simulated time resume in
// the order they were scheduled, and all randomness comes from named
// Streams derived from the configured seed, so a fixed Config always
// produces the same CompletionRecord sequence. Independent runs may execute
// in parallel as long as each has its own System.
//
// Sub-packages:
//   - sim/trace/: routing decision trace recording
//   - sim/report/: output sinks (text, JSON, CSV) and latency histograms
package sim
