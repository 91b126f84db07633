// Package store persists converged solves under a data directory, one
// subdirectory per run holding metadata.json and trace.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/shooting"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one converged solve. Angles are radians.
type RunMetadata struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Mach          float64   `json:"mach"`
	Gamma         float64   `json:"gamma"`
	ConeAngle     float64   `json:"cone_angle"`
	ShockAngle    float64   `json:"shock_angle"`
	Deflection    float64   `json:"deflection"`
	MachPostShock float64   `json:"mach_post_shock"`
	SurfaceMach   float64   `json:"surface_mach"`
	SurfaceCp     float64   `json:"surface_cp"`
	PressureRatio float64   `json:"pressure_ratio"`
	Iterations    int       `json:"iterations"`
	Residual      float64   `json:"residual"`
	Samples       int       `json:"samples"`
}

// Save writes the solve under a fresh run ID and returns it.
func (s *Store) Save(mach, gamma float64, res shooting.Result) (string, error) {
	runID := fmt.Sprintf("m%.4g_%d", mach, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Mach:          mach,
		Gamma:         gamma,
		ConeAngle:     res.ConeAngle,
		ShockAngle:    res.ShockAngle,
		Deflection:    res.Shock.Deflection,
		MachPostShock: res.Shock.MachDownstream,
		SurfaceMach:   res.Surface.Mach,
		SurfaceCp:     res.Surface.PressureCoeff,
		PressureRatio: res.Shock.PressureRatio,
		Iterations:    res.Iterations,
		Residual:      res.Residual,
		Samples:       res.Trace.Len(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeTrace(filepath.Join(runDir, "trace.csv"), res.Trace); err != nil {
		return "", err
	}

	return runID, nil
}

func writeTrace(path string, tr *flow.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"theta", "vr", "vt"}); err != nil {
		return err
	}
	for i := range tr.Thetas {
		row := []string{
			strconv.FormatFloat(tr.Thetas[i], 'g', 12, 64),
			strconv.FormatFloat(tr.States[i][flow.VR], 'g', 12, 64),
			strconv.FormatFloat(tr.States[i][flow.VT], 'g', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads a stored trace back into memory.
func (s *Store) LoadTrace(runID string) (*flow.Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &flow.Trace{}, nil
	}

	tr := &flow.Trace{
		Thetas: make([]float64, 0, len(records)-1),
		States: make([]flow.State, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		if len(rec) != 3 {
			continue
		}
		theta, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		vr, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		vt, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			continue
		}
		tr.Thetas = append(tr.Thetas, theta)
		tr.States = append(tr.States, flow.State{vr, vt})
	}
	return tr, nil
}
