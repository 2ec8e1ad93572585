// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Collection runs by outcome and run duration
//   - Rows inserted and coins returned by the provider
//   - Fetch and persist errors
//   - Scheduler retries and time of last success
package metrics
