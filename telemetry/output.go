package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/config"
)

// OutputManager handles structured experiment output with CSV logging.
// A nil manager is valid and discards everything, so callers never branch
// on whether output is enabled.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	lifetimeFile  *os.File
	eventFile     *os.File

	telemetryHeaderWritten bool
	lifetimeHeaderWritten  bool
	eventHeaderWritten     bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "lifetimes.csv"))
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating lifetimes.csv: %w", err)
	}
	om.lifetimeFile = f

	f, err = os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		om.telemetryFile.Close()
		om.lifetimeFile.Close()
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	om.eventFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.telemetryHeaderWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteLifetime appends a closed lifetime record to lifetimes.csv.
func (om *OutputManager) WriteLifetime(rec LifetimeRecord) error {
	if om == nil {
		return nil
	}

	records := []LifetimeRecord{rec}
	if !om.lifetimeHeaderWritten {
		if err := gocsv.Marshal(records, om.lifetimeFile); err != nil {
			return fmt.Errorf("writing lifetime: %w", err)
		}
		om.lifetimeHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.lifetimeFile); err != nil {
		return fmt.Errorf("writing lifetime: %w", err)
	}
	return nil
}

// WriteEvent appends an event to events.csv.
func (om *OutputManager) WriteEvent(ev Event) error {
	if om == nil {
		return nil
	}

	records := []Event{ev}
	if !om.eventHeaderWritten {
		if err := gocsv.Marshal(records, om.eventFile); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
		om.eventHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.eventFile); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.telemetryFile, om.lifetimeFile, om.eventFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
