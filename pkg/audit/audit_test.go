package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newLogger(t *testing.T, rotation RotationConfig) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewFileLogger(path, rotation)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger, path
}

func TestEvent_New(t *testing.T) {
	event := NewEvent("alice", OpBuild, "dc1/vars")

	if event.User != "alice" || event.Operation != OpBuild || event.VarsDir != "dc1/vars" {
		t.Errorf("event = %+v", event)
	}
	if event.ID == "" {
		t.Error("ID should not be empty")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestEvent_Chaining(t *testing.T) {
	event := NewEvent("alice", OpBuild, "vars").
		WithStore("file", "host_vars").
		WithDevices([]string{"DC1-N9K-LEAF01", "DC1-N9K-LEAF02"}).
		WithSuccess().
		WithDuration(time.Second).
		WithDryRun(true)

	if event.Store != "file" || event.Destination != "host_vars" {
		t.Errorf("store = %q %q", event.Store, event.Destination)
	}
	if !event.HasDevice("DC1-N9K-LEAF02") || event.HasDevice("DC1-N9K-LEAF03") {
		t.Errorf("devices = %v", event.Devices)
	}
	if !event.Success || event.Duration != time.Second || !event.DryRun {
		t.Errorf("event = %+v", event)
	}
}

func TestEvent_WithError(t *testing.T) {
	event := NewEvent("alice", OpBuild, "vars").WithSuccess().WithError(errors.New("capacity exceeded"))
	if event.Success {
		t.Error("Success should be false")
	}
	if event.Error != "capacity exceeded" {
		t.Errorf("Error = %q", event.Error)
	}

	event = NewEvent("alice", OpBuild, "vars").WithError(nil)
	if event.Success || event.Error != "" {
		t.Errorf("WithError(nil) = %+v", event)
	}
}

func TestFileLogger_LogQuery(t *testing.T) {
	logger, _ := newLogger(t, RotationConfig{})

	events := []*Event{
		NewEvent("alice", OpBuild, "vars").WithStore("file", "out").WithDevices([]string{"DC1-N9K-LEAF01"}).WithSuccess(),
		NewEvent("bob", OpBuild, "vars").WithStore("redis", "redis:6379").WithError(errors.New("boom")),
		NewEvent("alice", OpValidate, "vars").WithSuccess(),
	}
	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"operation", Filter{Operation: OpBuild}, 2},
		{"store", Filter{Store: "redis"}, 1},
		{"device", Filter{Device: "DC1-N9K-LEAF01"}, 1},
		{"success", Filter{SuccessOnly: true}, 2},
		{"failure", Filter{FailureOnly: true}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 2}, 1},
		{"offset beyond", Filter{Offset: 5}, 0},
		{"future", Filter{StartTime: time.Now().Add(time.Hour)}, 0},
		{"past", Filter{EndTime: time.Now().Add(-time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logger.Query(tt.filter)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFileLogger_QueryMalformedJSON(t *testing.T) {
	logger, path := newLogger(t, RotationConfig{})

	content := `{"user":"alice","operation":"build","success":true}
invalid json line
{"user":"bob","operation":"build","success":true}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test data: %v", err)
	}

	results, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 valid events (skipping malformed), got %d", len(results))
	}
}

func TestFileLogger_QueryNonExistent(t *testing.T) {
	logger, path := newLogger(t, RotationConfig{})
	os.Remove(path)

	results, err := logger.Query(Filter{})
	if err != nil || len(results) != 0 {
		t.Errorf("Query() = %v, %v; want empty", results, err)
	}
}

func TestFileLogger_RotationWithCleanup(t *testing.T) {
	logger, path := newLogger(t, RotationConfig{MaxSize: 50, MaxBackups: 2})

	for i := 0; i < 10; i++ {
		if err := logger.Log(NewEvent("alice", OpBuild, "vars")); err != nil {
			t.Fatalf("Log failed on iteration %d: %v", i, err)
		}
	}

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) == 0 || len(matches) > 2 {
		t.Errorf("backups = %d, want 1-2", len(matches))
	}
}

func TestFileLogger_NewFileLoggerMkdirError(t *testing.T) {
	if _, err := NewFileLogger("/dev/null/impossible/audit.log", RotationConfig{}); err == nil {
		t.Error("Expected error creating logger under /dev/null")
	}
}

func TestDefaultLogger(t *testing.T) {
	if err := Log(NewEvent("alice", OpBuild, "vars")); err != nil {
		t.Errorf("Log without default logger should be a no-op: %v", err)
	}

	logger, _ := newLogger(t, RotationConfig{})
	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	if err := Log(NewEvent("alice", OpBuild, "vars").WithSuccess()); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	got, err := Query(Filter{Operation: OpBuild})
	if err != nil || len(got) != 1 {
		t.Errorf("Query() = %v, %v", got, err)
	}
}

func TestFileLogger_QueryAcrossRotation(t *testing.T) {
	logger, _ := newLogger(t, RotationConfig{MaxSize: 50})

	for _, user := range []string{"alice", "bob", "carol"} {
		if err := logger.Log(NewEvent(user, OpBuild, "vars")); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	all, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(all) != 3 || all[0].User != "alice" || all[2].User != "carol" {
		t.Fatalf("events = %v, want alice..carol oldest first", all)
	}

	last, err := logger.Query(Filter{Limit: 1})
	if err != nil || len(last) != 1 || last[0].User != "carol" {
		t.Errorf("Limit 1 = %v, %v; want the newest event", last, err)
	}
	skipped, err := logger.Query(Filter{Offset: 1, Limit: 1})
	if err != nil || len(skipped) != 1 || skipped[0].User != "bob" {
		t.Errorf("Offset 1 Limit 1 = %v, %v; want bob", skipped, err)
	}
}
