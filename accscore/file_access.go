package accscore

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FileAccess returns an AccessFunc backed by precomputed accessibility
// files: for structure <dir>/x.pdb it reads <accDir>/x.acc, tab-separated
// "chain resnum rel_sc_acc" rows. The accessibility computation itself runs
// outside this system.
func FileAccess(accDir string) AccessFunc {
	return func(pdbPath string, _ float64) (map[string]map[int]float64, error) {
		base := strings.TrimSuffix(filepath.Base(pdbPath), ".pdb")
		fname := filepath.Join(accDir, base+".acc")
		f, err := os.Open(fname)
		if err != nil {
			return nil, errors.Wrapf(err, "opening accessibility file for %s", pdbPath)
		}
		defer f.Close()

		acc := make(map[string]map[int]float64)
		sc := bufio.NewScanner(f)
		lineno := 0
		for sc.Scan() {
			lineno++
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Split(line, "\t")
			if len(fields) != 3 {
				return nil, errors.Errorf("%s:%d: want 3 columns, got %d", fname, lineno, len(fields))
			}
			resnum, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d: bad resnum %q", fname, lineno, fields[1])
			}
			rel, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d: bad accessibility %q", fname, lineno, fields[2])
			}
			if acc[fields[0]] == nil {
				acc[fields[0]] = make(map[int]float64)
			}
			acc[fields[0]][resnum] = rel
		}
		return acc, errors.Wrapf(sc.Err(), "reading %s", fname)
	}
}
