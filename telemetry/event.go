// Package telemetry submits build-sync events to a configurable backend.
// The backend is selected once from a single endpoint URL: prefilled Google
// Forms links are submitted field-by-field over GET, anything else is sent
// through the batched event-stream client.
package telemetry

import (
	"github.com/google/uuid"

	"github.com/eduardbosch/ide-metrics-plugin/hostinfo"
)

// Event is a record of a single build-sync occurrence. It is constructed
// once per sync and must not be modified afterwards — submitters share it
// read-only across submission tasks.
type Event struct {
	// Outcome and timing
	SyncType             string
	SyncTime             int64 // epoch millis at sync start
	TotalDurationMillis  int64
	IDEDurationMillis    int64
	GradleDurationMillis int64

	// Identity (anonymised upstream)
	ProjectID string
	MachineID string
	SessionID string

	// Toolchain
	PluginVersion string
	IDEVersion    string
	GradleVersion string
	JavaVersion   string
	KotlinVersion *string // nil when the project has no Kotlin plugin

	// Failure detail, nil on success
	ErrorMessage *string

	// Host environment
	OSName      string
	OSArch      string
	CPUName     *string
	CPUCores    int64
	MaxMemoryMB int64

	// Project shape and build flags
	ModuleCount       int64
	TaskCount         int64
	OfflineMode       bool
	ParallelBuild     bool
	BuildCacheEnabled bool
}

// WithHostFacts returns a copy of the event with any unset environment
// fields filled in from the collected host facts.
func (e Event) WithHostFacts(f hostinfo.Facts) Event {
	if e.OSName == "" {
		e.OSName = f.OSName
	}
	if e.OSArch == "" {
		e.OSArch = f.OSArch
	}
	if e.CPUName == nil {
		e.CPUName = f.CPUName
	}
	if e.CPUCores == 0 {
		e.CPUCores = f.CPUCores
	}
	if e.MaxMemoryMB == 0 {
		e.MaxMemoryMB = f.TotalMemoryMB
	}
	return e
}

// NewSessionID returns a fresh identifier grouping the events of one IDE
// session.
func NewSessionID() string {
	return uuid.NewString()
}
