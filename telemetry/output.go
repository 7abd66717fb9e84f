package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/skellen-games/gravwing/config"
)

// OutputManager handles structured flight-log output with CSV files.
type OutputManager struct {
	dir        string
	flightFile *os.File
	windowFile *os.File

	flightHeaderWritten bool
	windowHeaderWritten bool
}

// NewOutputManager creates the output directory and log files. Returns nil
// if dir is empty (output disabled); a nil manager's methods are no-ops.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "flight.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating flight.csv: %w", err)
	}
	om.flightFile = f

	f, err = os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		om.flightFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML next to the logs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrame appends one frame record to flight.csv.
func (om *OutputManager) WriteFrame(fs FrameStats) error {
	if om == nil {
		return nil
	}
	records := []FrameStats{fs}
	if !om.flightHeaderWritten {
		if err := gocsv.Marshal(records, om.flightFile); err != nil {
			return fmt.Errorf("writing flight frame: %w", err)
		}
		om.flightHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.flightFile); err != nil {
		return fmt.Errorf("writing flight frame: %w", err)
	}
	return nil
}

// WriteWindow appends one window record to windows.csv.
func (om *OutputManager) WriteWindow(ws WindowStats) error {
	if om == nil {
		return nil
	}
	records := []WindowStats{ws}
	if !om.windowHeaderWritten {
		if err := gocsv.Marshal(records, om.windowFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
		om.windowHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.windowFile); err != nil {
		return fmt.Errorf("writing window stats: %w", err)
	}
	return nil
}

// Close flushes and closes the log files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if err := om.flightFile.Close(); err != nil {
		firstErr = err
	}
	if err := om.windowFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
