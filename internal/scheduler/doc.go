// Package scheduler runs the collection job on a fixed cadence.
//
// The Runner:
//   - Runs the task once on start, then at every interval boundary (hourly by default)
//   - Never overlaps invocations and never catches up missed ticks
//   - Retries a failed run a bounded number of times with a fixed delay
//   - Notifies the job's alert recipients when the final attempt fails
package scheduler
