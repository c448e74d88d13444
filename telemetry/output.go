package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/life3d/config"
)

// csvFile appends gocsv rows, writing the header only once.
type csvFile struct {
	f      *os.File
	header bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

func writeRows[T any](c *csvFile, rows []T) error {
	if !c.header {
		c.header = true
		return gocsv.Marshal(rows, c.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, c.f)
}

// OutputManager writes run artifacts into one directory:
// generations.csv, windows.csv, perf.csv and config.yaml.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir         string
	generations *csvFile
	windows     *csvFile
	perf        *csvFile
}

// NewOutputManager creates dir and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.generations, err = createCSV(dir, "generations.csv"); err != nil {
		return nil, err
	}
	if om.windows, err = createCSV(dir, "windows.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.perf, err = createCSV(dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends one row to generations.csv.
func (om *OutputManager) WriteGeneration(r GenerationRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.generations, []GenerationRecord{r}); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WriteWindow appends one row to windows.csv.
func (om *OutputManager) WriteWindow(ws WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.windows, []WindowStats{ws}); err != nil {
		return fmt.Errorf("writing window stats: %w", err)
	}
	return nil
}

// WritePerf appends one row to perf.csv.
func (om *OutputManager) WritePerf(s PerfStats, generation int) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.perf, []PerfRecord{s.Record(generation)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
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

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []*csvFile{om.generations, om.windows, om.perf} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
