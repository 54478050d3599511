package domain

import "time"

// Process exit codes. A probe never exits with anything else.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ProbeResult is the outcome of one connectivity probe.
type ProbeResult struct {
	// ID uniquely identifies the probe. It is also sent as X-Opaque-Id.
	ID string

	// Endpoint is the endpoint that was probed.
	Endpoint Endpoint

	// Info is the server info payload. Nil on failure.
	Info *ServerInfo

	// Err is the reason the probe failed. Nil on success.
	Err error

	// StartedAt is when the first attempt began.
	StartedAt time.Time

	// Duration is the total time spent, across all attempts.
	Duration time.Duration

	// Attempts is the number of info requests made.
	Attempts int
}

// OK returns true if the service was reached and accepted the credentials.
func (r *ProbeResult) OK() bool {
	return r != nil && r.Err == nil && r.Info != nil
}

// ExitCode returns the process exit code for this result.
func (r *ProbeResult) ExitCode() int {
	if r.OK() {
		return ExitOK
	}
	return ExitFailure
}

// ProbeRecord is a persisted summary of a probe.
// It never carries the password.
type ProbeRecord struct {
	ID          string        `json:"id"`
	Engine      EngineType    `json:"engine"`
	URL         string        `json:"url"`
	Username    string        `json:"username,omitempty"`
	OK          bool          `json:"ok"`
	Error       string        `json:"error,omitempty"`
	ClusterName string        `json:"cluster_name,omitempty"`
	Version     string        `json:"version,omitempty"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewProbeRecord summarises a probe result for persistence.
func NewProbeRecord(r *ProbeResult) ProbeRecord {
	rec := ProbeRecord{
		ID:        r.ID,
		Engine:    r.Endpoint.Engine,
		URL:       r.Endpoint.RedactedURL(),
		Username:  r.Endpoint.Username,
		OK:        r.OK(),
		Duration:  r.Duration,
		CreatedAt: r.StartedAt,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	if r.Info != nil {
		rec.ClusterName = r.Info.ClusterName
		rec.Version = r.Info.Version.Number
	}
	return rec
}
