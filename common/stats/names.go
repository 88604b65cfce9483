package stats

// Instrument names shared across packages so dashboards see stable keys.
const (
	// Number of external scorer invocations.
	ScorerInvocations = "scorerInvocations"
	// Number of scorer invocations that exited non-zero or failed to parse.
	ScorerFailures = "scorerFailures"
	// Wall time of a single scorer invocation.
	ScorerLatency_ms = "scorerLatency_ms"

	// Jobs that returned an error or panicked in the local scheduler.
	SchedulerJobFailures = "schedulerJobFailures"
	// Jobs completed by the local scheduler, failed or not.
	SchedulerJobsCompleted = "schedulerJobsCompleted"
	// Wall time of a whole local batch.
	SchedulerBatchLatency_ms = "schedulerBatchLatency_ms"

	// Structures whose result file was missing at aggregation time.
	AggregateMissingResults = "aggregateMissingResults"
)
