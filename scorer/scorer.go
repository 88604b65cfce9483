// Package scorer wraps the external scoring binary. One invocation scores
// one structure; the five energy terms are scraped from the binary's textual
// report.
package scorer

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	cerrors "github.com/structbio/alascan/common/errors"
	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/execer"
)

// DefaultBin is the scoring executable probed on PATH when none is
// configured.
const DefaultBin = "haddock3-score"

// Report line prefixes. A report missing either line is a parse failure,
// never a silent default.
const (
	scoreLinePrefix  = "> HADDOCK-score (emscoring)"
	energyLinePrefix = "> vdw"
)

// Energies are the five terms reported for one scored structure.
type Energies struct {
	Score  float64
	Vdw    float64
	Elec   float64
	Desolv float64
	Bsa    float64
}

// Calculator is the scoring seam the analysis jobs depend on.
type Calculator interface {
	Calc(pdbPath, runDir string) (Energies, error)
}

// Scorer invokes the external scoring binary through an Execer.
type Scorer struct {
	bin  string
	ex   execer.Execer
	stat stats.StatsReceiver
}

func New(bin string, ex execer.Execer, stat stats.StatsReceiver) *Scorer {
	if bin == "" {
		bin = DefaultBin
	}
	if ex == nil {
		ex = execer.NewOsExecer()
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Scorer{bin: bin, ex: ex, stat: stat}
}

// Calc scores one structure, running the binary with runDir as its scratch
// directory. A non-zero exit is fatal for this call and is not retried;
// callers decide whether to retry a whole job.
func (s *Scorer) Calc(pdbPath, runDir string) (Energies, error) {
	defer s.stat.Latency(stats.ScorerLatency_ms).Time().Stop()
	s.stat.Counter(stats.ScorerInvocations).Inc(1)

	var stdout, stderr bytes.Buffer
	cmd := execer.Command{
		Argv:   []string{s.bin, pdbPath, "--full", "--run_dir", runDir},
		Stdout: &stdout,
		Stderr: &stderr,
	}
	p, err := s.ex.Exec(cmd)
	if err != nil {
		s.stat.Counter(stats.ScorerFailures).Inc(1)
		return Energies{}, errors.Wrapf(err, "starting %s for %s", s.bin, pdbPath)
	}
	st := p.Wait()
	if st.State != execer.COMPLETE || st.ExitCode != 0 {
		s.stat.Counter(stats.ScorerFailures).Inc(1)
		log.WithFields(log.Fields{
			"bin":      s.bin,
			"pdb":      pdbPath,
			"exitCode": st.ExitCode,
			"stderr":   strings.TrimSpace(stderr.String()),
		}).Error("Scoring command failed")
		return Energies{}, cerrors.NewError(
			errors.Errorf("%s %s failed: exit code %d: %s", s.bin, pdbPath, st.ExitCode, st.Error),
			cerrors.ScorerExitCode)
	}

	en, err := parseReport(stdout.String())
	if err != nil {
		s.stat.Counter(stats.ScorerFailures).Inc(1)
		return Energies{}, cerrors.NewError(errors.Wrapf(err, "parsing %s report for %s", s.bin, pdbPath), cerrors.ParseExitCode)
	}
	return en, nil
}

func parseReport(out string) (Energies, error) {
	var en Energies
	haveScore, haveTerms := false, false
	for _, ln := range strings.Split(out, "\n") {
		if strings.HasPrefix(ln, scoreLinePrefix) {
			fields := strings.Fields(ln)
			v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
			if err != nil {
				return Energies{}, errors.Wrapf(err, "bad score field in %q", ln)
			}
			en.Score = v
			haveScore = true
		}
		if strings.HasPrefix(ln, energyLinePrefix) {
			var err error
			if en.Vdw, err = cutTerm(ln, "vdw="); err != nil {
				return Energies{}, err
			}
			if en.Elec, err = cutTerm(ln, "elec="); err != nil {
				return Energies{}, err
			}
			if en.Desolv, err = cutTerm(ln, "desolv="); err != nil {
				return Energies{}, err
			}
			if en.Bsa, err = cutTerm(ln, "bsa="); err != nil {
				return Energies{}, err
			}
			haveTerms = true
		}
	}
	if !haveScore {
		return Energies{}, errors.Errorf("report has no line starting with %q", scoreLinePrefix)
	}
	if !haveTerms {
		return Energies{}, errors.Errorf("report has no line starting with %q", energyLinePrefix)
	}
	return en, nil
}

// cutTerm extracts the float following key up to the next comma, e.g.
// "vdw=" from "> vdw=-20.9,elec=-182.5,desolv=8.0,bsa=1913.0".
func cutTerm(ln, key string) (float64, error) {
	_, after, found := strings.Cut(ln, key)
	if !found {
		return 0, errors.Errorf("report line %q has no %q field", ln, key)
	}
	val, _, _ := strings.Cut(after, ",")
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bad %s field in %q", key, ln)
	}
	return v, nil
}
