package scan

import "github.com/structbio/alascan/scorer"

// Row is the result for one scanned interface residue of one structure:
// the mutant energies plus the deltas against the native rescoring and
// against the workflow-supplied original score.
type Row struct {
	Chain      string
	Res        int
	OriResname string
	EndResname string

	Score  float64
	Vdw    float64
	Elec   float64
	Desolv float64
	Bsa    float64

	// DeltaOriScore is the mutant score minus the workflow score. It is NaN
	// when the workflow score did not parse.
	DeltaOriScore float64

	DeltaScore  float64
	DeltaVdw    float64
	DeltaElec   float64
	DeltaDesolv float64
	DeltaBsa    float64

	ZScore float64
}

// SetEnergies fills the energy and delta columns from the mutant and native
// rescoring. When the residue already is the scan residue the caller passes
// the native energies twice and all native deltas come out zero.
func (r *Row) SetEnergies(mut, nat scorer.Energies, oriScore float64) {
	r.Score = mut.Score
	r.Vdw = mut.Vdw
	r.Elec = mut.Elec
	r.Desolv = mut.Desolv
	r.Bsa = mut.Bsa
	r.DeltaOriScore = mut.Score - oriScore
	r.DeltaScore = mut.Score - nat.Score
	r.DeltaVdw = mut.Vdw - nat.Vdw
	r.DeltaElec = mut.Elec - nat.Elec
	r.DeltaDesolv = mut.Desolv - nat.Desolv
	r.DeltaBsa = mut.Bsa - nat.Bsa
}
