// Package metrics defines the sinks that record production plan outcomes.
// Sinks like PromSink and InfluxSink record computed plans and rejected
// requests and can be combined with NewMultiSink. The factory helpers return
// a MultiSink automatically when multiple sinks are configured.
package metrics
