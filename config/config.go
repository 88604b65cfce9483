// Package config loads the YAML parameter file the CLI consumes.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	cerrors "github.com/structbio/alascan/common/errors"
	"github.com/structbio/alascan/model"
	"github.com/structbio/alascan/scorer"
)

// Execution modes. Local and MPI are never mixed within one batch.
const (
	ModeLocal = "local"
	ModeMPI   = "mpi"
)

type StructureParams struct {
	Path    string `yaml:"path"`
	Name    string `yaml:"name"`
	Score   string `yaml:"score"`
	Cluster string `yaml:"cluster"`
}

type Params struct {
	Mode        string `yaml:"mode"`
	NCores      int    `yaml:"ncores"`
	ScanResidue string `yaml:"scan_residue"`
	ScorerBin   string `yaml:"scorer_bin"`
	OutputDir   string `yaml:"output_dir"`

	Structures []StructureParams `yaml:"structures"`

	// InterfaceResidues lists the residues to scan, per chain, when no
	// contact identifier is plugged in.
	InterfaceResidues map[string][]int `yaml:"interface_residues"`

	// Accessibility scoring expectations, resdic style: chain to residues.
	BuriedResidues     map[string][]int `yaml:"resdic_buried"`
	AccessibleResidues map[string][]int `yaml:"resdic_accessible"`
	Cutoff             float64          `yaml:"cutoff"`
	ProbeRadius        float64          `yaml:"probe_radius"`
	// AccessibilityDir holds precomputed per-structure accessibility files
	// (<structure>.acc) from the external accessibility tool.
	AccessibilityDir string `yaml:"accessibility_dir"`
}

// Load reads and validates a params file, applying defaults.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.NewError(errors.Wrapf(err, "reading params file %s", path), cerrors.ConfigExitCode)
	}
	p := &Params{
		Mode:        ModeLocal,
		NCores:      1,
		ScanResidue: "ALA",
		ScorerBin:   scorer.DefaultBin,
		OutputDir:   ".",
		Cutoff:      0.4,
		ProbeRadius: 1.4,
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, cerrors.NewError(errors.Wrapf(err, "parsing params file %s", path), cerrors.ConfigExitCode)
	}
	if p.Mode != ModeLocal && p.Mode != ModeMPI {
		return nil, cerrors.NewError(errors.Errorf("unknown mode %q, want %q or %q", p.Mode, ModeLocal, ModeMPI), cerrors.ConfigExitCode)
	}
	if p.NCores < 1 {
		return nil, cerrors.NewError(errors.Errorf("ncores must be at least 1, got %d", p.NCores), cerrors.ConfigExitCode)
	}
	return p, nil
}

// ModelStructures converts the configured structures to the model type.
func (p *Params) ModelStructures() []model.Structure {
	structures := make([]model.Structure, len(p.Structures))
	for i, sp := range p.Structures {
		structures[i] = model.Structure{Path: sp.Path, Name: sp.Name, Score: sp.Score, ClusterID: sp.Cluster}
	}
	return structures
}
