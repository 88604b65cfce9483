package pdb

import "github.com/pkg/errors"

// Atoms rewritten when a residue is mutated. Everything the twenty standard
// amino acids share: backbone plus the beta carbon.
var mutatedAtoms = map[string]bool{
	"C":  true,
	"N":  true,
	"CA": true,
	"O":  true,
	"CB": true,
}

// ResCodes maps three-letter residue names to one-letter codes.
var ResCodes = map[string]string{
	"CYS": "C",
	"ASP": "D",
	"SER": "S",
	"GLN": "Q",
	"LYS": "K",
	"ILE": "I",
	"PRO": "P",
	"THR": "T",
	"PHE": "F",
	"ASN": "N",
	"GLY": "G",
	"HIS": "H",
	"LEU": "L",
	"ARG": "R",
	"TRP": "W",
	"ALA": "A",
	"VAL": "V",
	"GLU": "E",
	"TYR": "Y",
	"MET": "M",
}

// OneLetter resolves a three-letter residue name. Names outside the standard
// twenty are a lookup error, not a silent passthrough.
func OneLetter(resname string) (string, error) {
	code, ok := ResCodes[resname]
	if !ok {
		return "", errors.Errorf("unknown residue name %q", resname)
	}
	return code, nil
}
