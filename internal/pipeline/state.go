package pipeline

// State names an item's position in the processing lifecycle. States are
// recorded in the journal and logs in their string form, so the values are
// part of the on-disk contract.
type State string

const (
	StatePending      State = "pending"
	StateKeyResolved  State = "key_resolved"
	StateSkipped      State = "skipped"
	StateRateGated    State = "rate_gated"
	StateFetched      State = "fetched"
	StateGenerating   State = "generating"
	StateParsedOK     State = "parsed_ok"
	StateParsedErrors State = "parsed_with_errors"
	StatePersisted    State = "persisted"
	StateFailed       State = "failed"
	StateAborted      State = "aborted"
)

// FailureKind classifies why an item failed. The zero value means the item
// did not fail. Kinds feed the journal, the failure report, and log lines;
// a cancelled run never produces one, it produces an aborted item instead.
type FailureKind string

const (
	FailureNone              FailureKind = ""
	FailureFetchMetadata     FailureKind = "fetch-metadata-error"
	FailureFetch             FailureKind = "fetch-error"
	FailureGenerationTimeout FailureKind = "generation-timeout"
	FailureGenerationFailed  FailureKind = "generation-failed"
	FailureParse             FailureKind = "parse-error"
	FailureStorage           FailureKind = "storage-error"
)
