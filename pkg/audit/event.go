// Package audit records every build of the fabric in a JSON-lines log.
package audit

import (
	"strconv"
	"time"
)

// Operations recorded by the CLI.
const (
	OpBuild    = "build"
	OpValidate = "validate"
)

// Event is one recorded run.
type Event struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	User        string        `json:"user"`
	Operation   string        `json:"operation"`
	VarsDir     string        `json:"vars_dir"`
	Store       string        `json:"store,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Devices     []string      `json:"devices,omitempty"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	DryRun      bool          `json:"dry_run"`
	Duration    time.Duration `json:"duration"`
}

// Filter selects events in Query. Zero fields match everything.
type Filter struct {
	Operation   string
	Device      string
	Store       string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates an event stamped now.
func NewEvent(user, operation, varsDir string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Operation: operation,
		VarsDir:   varsDir,
	}
}

// WithStore records where the models were written.
func (e *Event) WithStore(kind, destination string) *Event {
	e.Store = kind
	e.Destination = destination
	return e
}

// WithDevices records the devices of the run.
func (e *Event) WithDevices(names []string) *Event {
	e.Devices = names
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the run duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// WithDryRun marks a run that wrote nothing.
func (e *Event) WithDryRun(dry bool) *Event {
	e.DryRun = dry
	return e
}

// HasDevice reports whether name took part in the run.
func (e *Event) HasDevice(name string) bool {
	for _, d := range e.Devices {
		if d == name {
			return true
		}
	}
	return false
}

func generateID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
