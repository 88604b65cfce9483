// Package scan implements the alanine-scanning job: for every structure in
// its partition it rescores the native model, mutates each interface residue
// to the scan residue, rescores the mutant, and records the energy deltas.
package scan

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/model"
	"github.com/structbio/alascan/pdb"
	"github.com/structbio/alascan/scorer"
)

func init() {
	gob.Register(&Job{})
}

// InterfaceFunc identifies the interface residues of a structure, as residue
// numbers per chain. Contact identification itself is an external
// collaborator; the default implementation just hands back the residues
// configured in Params.
type InterfaceFunc func(pdbPath string) (map[string][]int, error)

// ResnamesFunc maps "<chain>-<resnum>" keys to three-letter residue names.
type ResnamesFunc func(pdbPath string) (map[string]string, error)

// Params is the configuration shared by all scan jobs in a batch.
type Params struct {
	// ScanResidue is the target residue type, e.g. "ALA".
	ScanResidue string
	// ScorerBin is the external scoring executable.
	ScorerBin string
	// OutputName is the per-core completion note file.
	OutputName string
	// Path is the directory result files are written into.
	Path string
	// InterfaceResidues backs the default InterfaceFunc when no identifier
	// is bound.
	InterfaceResidues map[string][]int
}

// StructureResult holds the rows accumulated for one structure.
type StructureResult struct {
	Name string
	Rows []Row
}

// Deps are the collaborators a Job needs at run time. They do not cross the
// serialization boundary; jobs decoded from an artifact are rebound via
// BindDefaults.
type Deps struct {
	Calc     scorer.Calculator
	Identify InterfaceFunc
	Resnames ResnamesFunc
}

// Job scans one partition of the structure list. No Job is shared across
// partitions, so Run needs no locking; mutual exclusion is structural.
type Job struct {
	Structures []model.Structure
	Core       int
	Params     Params
	// Results accumulates during Run and is harvested by the scheduler.
	Results []StructureResult

	calc     scorer.Calculator
	identify InterfaceFunc
	resnames ResnamesFunc
}

func NewJob(structures []model.Structure, core int, params Params, deps Deps) *Job {
	if params.OutputName == "" {
		params.OutputName = fmt.Sprintf("alascan_%d.out", core)
	}
	if params.Path == "" {
		params.Path = "."
	}
	j := &Job{Structures: structures, Core: core, Params: params}
	j.Bind(deps)
	return j
}

// Bind attaches collaborators, filling in defaults for any left nil.
func (j *Job) Bind(deps Deps) {
	j.calc = deps.Calc
	j.identify = deps.Identify
	j.resnames = deps.Resnames
	if j.identify == nil {
		j.identify = j.configuredInterface
	}
	if j.resnames == nil {
		j.resnames = pdb.ResidueNames
	}
}

// BindDefaults attaches the default collaborators: a real scorer over the
// configured binary, the configured interface residues, and the ATOM-record
// residue name reader.
func (j *Job) BindDefaults() error {
	j.Bind(Deps{Calc: scorer.New(j.Params.ScorerBin, nil, stats.DefaultStatsReceiver())})
	return nil
}

func (j *Job) configuredInterface(string) (map[string][]int, error) {
	if len(j.Params.InterfaceResidues) == 0 {
		return nil, errors.New("no interface residues configured and no identifier bound")
	}
	return j.Params.InterfaceResidues, nil
}

// Run scans every structure in the partition, appending per-structure rows
// to Results and writing one result file per structure.
func (j *Job) Run() error {
	if j.calc == nil {
		if err := j.BindDefaults(); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"core": j.Core, "structures": len(j.Structures)}).Info("Running scan")
	// One scorer scratch directory per core, so concurrent jobs never write
	// the same path.
	runDir := fmt.Sprintf("scorer-run-%d", j.Core)
	for _, native := range j.Structures {
		rows, err := j.scanStructure(native, runDir)
		if err != nil {
			return errors.Wrapf(err, "scanning %s", native.Name)
		}
		j.Results = append(j.Results, StructureResult{Name: native.Name, Rows: rows})
		fname := filepath.Join(j.Params.Path, ResultFileName(native.Name))
		if err := WriteResultFile(fname, native.Name, rows); err != nil {
			return err
		}
	}
	return nil
}

func (j *Job) scanStructure(native model.Structure, runDir string) ([]Row, error) {
	// The workflow score may come from any upstream stage with its own
	// conventions, so the native model is rescored for internal consistency.
	oriScore := native.ScoreValue()
	nat, err := j.calc.Calc(native.Path, runDir)
	if err != nil {
		return nil, err
	}

	iface, err := j.identify(native.Path)
	if err != nil {
		return nil, err
	}
	resnames, err := j.resnames(native.Path)
	if err != nil {
		return nil, err
	}

	chains := make([]string, 0, len(iface))
	for chain := range iface {
		chains = append(chains, chain)
	}
	sort.Strings(chains)

	var rows []Row
	for _, chain := range chains {
		residues := append([]int{}, iface[chain]...)
		sort.Ints(residues)
		for _, res := range residues {
			oriResname, ok := resnames[fmt.Sprintf("%s-%d", chain, res)]
			if !ok {
				log.WithFields(log.Fields{"chain": chain, "res": res, "structure": native.Name}).
					Warn("Interface residue has no residue name, skipping")
				continue
			}
			row, err := j.scanResidue(native, chain, res, oriResname, nat, oriScore, runDir)
			if err != nil {
				return nil, err
			}
			if row != nil {
				rows = append(rows, *row)
			}
		}
	}

	zs := ZScores(column(rows, func(r Row) float64 { return r.DeltaScore }))
	for i := range rows {
		rows[i].ZScore = zs[i]
	}
	return rows, nil
}

// scanResidue produces the row for one interface residue. A nil row with a
// nil error means the residue was skipped (mutation lookup failure, which is
// fatal for that attempt only). Scorer failures fail the whole job.
func (j *Job) scanResidue(native model.Structure, chain string, res int, oriResname string,
	nat scorer.Energies, oriScore float64, runDir string) (*Row, error) {

	row := Row{Chain: chain, Res: res, OriResname: oriResname, EndResname: j.Params.ScanResidue}

	if oriResname == j.Params.ScanResidue {
		// Already the scan residue: reuse the native rescoring instead of
		// paying for another scorer call.
		row.SetEnergies(nat, nat, oriScore)
		return &row, nil
	}

	mutPath, _, err := pdb.Mutate(native.Path, chain, res, j.Params.ScanResidue)
	if err != nil {
		log.WithFields(log.Fields{"chain": chain, "res": res, "structure": native.Name, "error": err}).
			Warn("Mutation failed, skipping residue")
		return nil, nil
	}
	mut, calcErr := j.calc.Calc(mutPath, runDir)
	// The temporary mutant is removed whether or not scoring worked.
	if rmErr := os.Remove(mutPath); rmErr != nil {
		log.WithFields(log.Fields{"path": mutPath, "error": rmErr}).Warn("Could not remove mutant file")
	}
	if calcErr != nil {
		return nil, calcErr
	}
	row.SetEnergies(mut, nat, oriScore)
	return &row, nil
}

// Output writes the per-core completion note.
func (j *Job) Output() error {
	fname := filepath.Join(j.Params.Path, j.Params.OutputName)
	content := fmt.Sprintf("core %d wrote alascan data for %d models\n", j.Core, len(j.Structures))
	return errors.Wrapf(os.WriteFile(fname, []byte(content), 0666), "writing %s", fname)
}

func column(rows []Row, f func(Row) float64) []float64 {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = f(r)
	}
	return vals
}
