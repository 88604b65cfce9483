// Package accscore implements the solvent-accessibility scoring job: each
// structure is checked against user-supplied expectations of which residues
// should be buried and which accessible, and every contradiction adds one to
// the structure's score. Lower scores mean better agreement with the user
// data.
package accscore

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/structbio/alascan/model"
)

func init() {
	gob.Register(&Job{})
}

// AccessFunc computes per-residue relative side-chain accessibility for a
// structure, keyed chain then residue number. The accessibility computation
// itself is an external collaborator.
type AccessFunc func(pdbPath string, probeRadius float64) (map[string]map[int]float64, error)

// Params configures one accessibility scoring batch.
type Params struct {
	// Buried lists residues expected to be buried, per chain.
	Buried map[string][]int
	// Accessible lists residues expected to be accessible, per chain.
	Accessible map[string][]int
	// Cutoff is the relative accessibility above which a residue counts as
	// accessible.
	Cutoff float64
	// ProbeRadius is handed to the accessibility collaborator.
	ProbeRadius float64
	// Path is the directory output files are written into.
	Path string
	// OutputName is the per-core completion note file.
	OutputName string
}

// Result is the accessibility score for one structure, plus the residues
// that contradicted the expectations.
type Result struct {
	Name string
	// Score is the number of violations.
	Score int
	// BuriedViolations lists expected-buried residues found accessible.
	BuriedViolations map[string][]int
	// AccViolations lists expected-accessible residues found buried.
	AccViolations map[string][]int
}

// Job scores one partition of the structure list against the accessibility
// expectations.
type Job struct {
	Structures []model.Structure
	Core       int
	Params     Params
	Results    []Result

	access AccessFunc
}

func NewJob(structures []model.Structure, core int, params Params, access AccessFunc) *Job {
	if params.OutputName == "" {
		params.OutputName = fmt.Sprintf("accscore_%d.out", core)
	}
	if params.Path == "" {
		params.Path = "."
	}
	return &Job{Structures: structures, Core: core, Params: params, access: access}
}

// Bind attaches the accessibility collaborator.
func (j *Job) Bind(access AccessFunc) {
	j.access = access
}

// BindDefaults satisfies the scheduler rebinding contract. There is no
// default accessibility implementation; a decoded job must be rebound
// explicitly before Run.
func (j *Job) BindDefaults() error {
	if j.access == nil {
		return errors.New("no accessibility function bound")
	}
	return nil
}

func (j *Job) Run() error {
	if j.access == nil {
		return errors.New("no accessibility function bound")
	}
	log.WithFields(log.Fields{"core": j.Core, "structures": len(j.Structures)}).Info("Running accessibility scoring")
	for _, native := range j.Structures {
		acc, err := j.access(native.Path, j.Params.ProbeRadius)
		if err != nil {
			return errors.Wrapf(err, "computing accessibility of %s", native.Name)
		}
		res := Result{
			Name:             native.Name,
			BuriedViolations: map[string][]int{},
			AccViolations:    map[string][]int{},
		}
		for chain, residues := range j.Params.Buried {
			for _, resnum := range residues {
				if a, ok := acc[chain][resnum]; ok && a > j.Params.Cutoff {
					res.BuriedViolations[chain] = append(res.BuriedViolations[chain], resnum)
					res.Score++
				}
			}
		}
		for chain, residues := range j.Params.Accessible {
			for _, resnum := range residues {
				if a, ok := acc[chain][resnum]; ok && a <= j.Params.Cutoff {
					res.AccViolations[chain] = append(res.AccViolations[chain], resnum)
					res.Score++
				}
			}
		}
		j.Results = append(j.Results, res)
	}
	return nil
}

// Output writes the per-core completion note.
func (j *Job) Output() error {
	fname := filepath.Join(j.Params.Path, j.Params.OutputName)
	content := fmt.Sprintf("core %d wrote accscore data for %d models\n", j.Core, len(j.Structures))
	return errors.Wrapf(os.WriteFile(fname, []byte(content), 0666), "writing %s", fname)
}

// WriteScores extracts the results harvested from a batch of jobs into the
// score table and the violations table.
func WriteScores(jobs []*Job, scoresFname, violationsFname string) error {
	sf, err := os.Create(scoresFname)
	if err != nil {
		return errors.Wrapf(err, "creating %s", scoresFname)
	}
	defer sf.Close()
	vf, err := os.Create(violationsFname)
	if err != nil {
		return errors.Wrapf(err, "creating %s", violationsFname)
	}
	defer vf.Close()

	sw := bufio.NewWriter(sf)
	vw := bufio.NewWriter(vf)
	fmt.Fprintln(sw, "structure\tscore")
	fmt.Fprintln(vw, "structure\tkind\tchain\tresidues")
	for _, j := range jobs {
		for _, res := range j.Results {
			fmt.Fprintf(sw, "%s\t%d\n", res.Name, res.Score)
			writeViolations(vw, res.Name, "buried", res.BuriedViolations)
			writeViolations(vw, res.Name, "accessible", res.AccViolations)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", scoresFname)
	}
	return errors.Wrapf(vw.Flush(), "writing %s", violationsFname)
}

func writeViolations(w *bufio.Writer, name, kind string, violations map[string][]int) {
	chains := make([]string, 0, len(violations))
	for chain := range violations {
		chains = append(chains, chain)
	}
	sort.Strings(chains)
	for _, chain := range chains {
		residues := append([]int{}, violations[chain]...)
		sort.Ints(residues)
		strs := make([]string, len(residues))
		for i, r := range residues {
			strs[i] = strconv.Itoa(r)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, kind, chain, strings.Join(strs, ","))
	}
}
