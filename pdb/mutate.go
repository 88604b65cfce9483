package pdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ATOM record fixed columns (0-based, end exclusive).
const (
	atomNameStart = 12
	atomNameEnd   = 16
	resnameStart  = 17
	resnameEnd    = 20
	chainCol      = 21
	resnumStart   = 22
	resnumEnd     = 26
)

// Mutate rewrites the residue name on the ATOM records of the requested
// chain/residue whose atom name is one of the shared backbone/CB atoms. All
// other records, including the residue's remaining side-chain atoms and every
// unrelated line, pass through byte for byte. The mutant is written next to
// the input with a deterministic name encoding the chain and mutation id
// (e.g. model-A_K12A.pdb), so re-runs with the same inputs produce the same
// path. Returns the mutant path and the mutation id.
func Mutate(pdbPath, chain string, resnum int, target string) (string, string, error) {
	if _, ok := ResCodes[target]; !ok {
		return "", "", errors.Errorf("unknown target residue name %q", target)
	}

	data, err := os.ReadFile(pdbPath)
	if err != nil {
		return "", "", errors.Wrapf(err, "reading %s", pdbPath)
	}

	lines := strings.SplitAfter(string(data), "\n")
	var out strings.Builder
	oriResname := ""
	for _, line := range lines {
		if !isTargetAtom(line, chain, resnum) {
			out.WriteString(line)
			continue
		}
		if oriResname == "" {
			oriResname = strings.TrimSpace(line[resnameStart:resnameEnd])
		}
		atomName := strings.TrimSpace(line[atomNameStart:atomNameEnd])
		if mutatedAtoms[atomName] {
			out.WriteString(line[:resnameStart] + target + line[resnameEnd:])
		} else {
			out.WriteString(line)
		}
	}
	if oriResname == "" {
		return "", "", errors.Errorf("residue %s:%d not found in %s", chain, resnum, pdbPath)
	}

	oriCode, err := OneLetter(oriResname)
	if err != nil {
		return "", "", err
	}
	targetCode, err := OneLetter(target)
	if err != nil {
		return "", "", err
	}
	mutID := fmt.Sprintf("%s%d%s", oriCode, resnum, targetCode)

	base := strings.TrimSuffix(filepath.Base(pdbPath), ".pdb")
	mutPath := filepath.Join(filepath.Dir(pdbPath), fmt.Sprintf("%s-%s_%s.pdb", base, chain, mutID))
	if err := os.WriteFile(mutPath, []byte(out.String()), 0666); err != nil {
		return "", "", errors.Wrapf(err, "writing mutant %s", mutPath)
	}
	return mutPath, mutID, nil
}

func isTargetAtom(line, chain string, resnum int) bool {
	if !strings.HasPrefix(line, "ATOM") || len(line) < resnumEnd {
		return false
	}
	if string(line[chainCol]) != chain {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[resnumStart:resnumEnd]))
	return err == nil && n == resnum
}

// ResidueNames scans ATOM records and returns the residue name per
// "<chain>-<resnum>" key, first occurrence wins.
func ResidueNames(pdbPath string) (map[string]string, error) {
	data, err := os.ReadFile(pdbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", pdbPath)
	}
	names := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "ATOM") || len(line) < resnumEnd {
			continue
		}
		resnum := strings.TrimSpace(line[resnumStart:resnumEnd])
		key := fmt.Sprintf("%s-%s", string(line[chainCol]), resnum)
		if _, ok := names[key]; !ok {
			names[key] = strings.TrimSpace(line[resnameStart:resnameEnd])
		}
	}
	return names, nil
}
