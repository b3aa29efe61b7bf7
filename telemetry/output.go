package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/olivierh59500/particle-life-groups/config"
)

// OutputManager writes diagnostics as CSV files in one directory.
// A nil *OutputManager discards everything.
type OutputManager struct {
	dir        string
	framesFile *os.File
	groupsFile *os.File

	framesHeaderWritten bool
	groupsHeaderWritten bool
}

// NewOutputManager creates the output directory and files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.framesFile = f

	f, err = os.Create(filepath.Join(dir, "groups.csv"))
	if err != nil {
		om.framesFile.Close()
		return nil, fmt.Errorf("creating groups.csv: %w", err)
	}
	om.groupsFile = f

	return om, nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrame appends a record to frames.csv.
func (om *OutputManager) WriteFrame(stats FrameStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]FrameStats{stats}, om.framesFile, &om.framesHeaderWritten); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// WriteGroups appends records to groups.csv.
func (om *OutputManager) WriteGroups(stats []GroupStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	if err := writeRecords(stats, om.groupsFile, &om.groupsHeaderWritten); err != nil {
		return fmt.Errorf("writing groups: %w", err)
	}
	return nil
}

// writeRecords includes the header only on the first write to a file.
func writeRecords(records interface{}, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Close flushes and closes all files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.framesFile, om.groupsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
