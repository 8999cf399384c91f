package ir

// Version constants recorded alongside every ledger entry.
const (
	// DigestVersion is the canonical digest schema version.
	DigestVersion = "1"

	// EngineVersion is the fissure engine version.
	EngineVersion = "0.1.0"
)
