// Package aggregate merges per-structure scan results into per-cluster
// statistics: averaged deltas per residue key, fraction of cluster members
// the key was seen in, and a cluster-level z-score.
package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/model"
	"github.com/structbio/alascan/scan"
)

// Key identifies a scanned residue across a cluster.
type Key struct {
	Chain   string
	Res     int
	Resname string
}

// Ident renders the composite key, e.g. "A-12-ALA".
func (k Key) Ident() string {
	return fmt.Sprintf("%s-%d-%s", k.Chain, k.Res, k.Resname)
}

// Entry accumulates running sums for one residue key. Occurrence counts the
// structures the key was actually scanned in, which is a different
// denominator than the cluster population: averages divide by Occurrence,
// fraction-present divides by the population.
type Entry struct {
	DeltaScore  float64
	DeltaVdw    float64
	DeltaElec   float64
	DeltaDesolv float64
	DeltaBsa    float64
	Occurrence  int
}

// Cluster is the accumulator for one cluster id.
type Cluster struct {
	ID string
	// Population counts every member whose cluster assignment was known,
	// including members whose scan results never materialized.
	Population int
	Entries    map[Key]*Entry
}

// Clusters reads every structure's result file from dir and accumulates the
// per-cluster sums. A missing result file (crashed worker) is tolerated: the
// member still counts toward its cluster's population but contributes no
// rows. A malformed file is an error.
func Clusters(structures []model.Structure, dir string, stat stats.StatsReceiver) (map[string]*Cluster, error) {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}

	// Result files are independent, so read them concurrently and merge
	// serially afterwards.
	rowsPer := make([][]scan.Row, len(structures))
	var g errgroup.Group
	for i, native := range structures {
		i, native := i, native
		g.Go(func() error {
			fname := filepath.Join(dir, scan.ResultFileName(native.Name))
			rows, err := scan.ReadResultFile(fname)
			if os.IsNotExist(errors.Cause(err)) {
				log.WithFields(log.Fields{"structure": native.Name, "file": fname}).
					Warn("No scan results for structure, excluding from averages")
				stat.Counter(stats.AggregateMissingResults).Inc(1)
				return nil
			}
			if err != nil {
				return err
			}
			rowsPer[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	clusters := make(map[string]*Cluster)
	for i, native := range structures {
		id := native.Cluster()
		cl, ok := clusters[id]
		if !ok {
			cl = &Cluster{ID: id, Entries: make(map[Key]*Entry)}
			clusters[id] = cl
		}
		cl.Population++
		for _, row := range rowsPer[i] {
			key := Key{Chain: row.Chain, Res: row.Res, Resname: row.OriResname}
			e, ok := cl.Entries[key]
			if !ok {
				e = &Entry{}
				cl.Entries[key] = e
			}
			e.DeltaScore += row.DeltaScore
			e.DeltaVdw += row.DeltaVdw
			e.DeltaElec += row.DeltaElec
			e.DeltaDesolv += row.DeltaDesolv
			e.DeltaBsa += row.DeltaBsa
			e.Occurrence++
		}
	}
	return clusters, nil
}

// SummaryRow is one finalized row of a cluster summary.
type SummaryRow struct {
	Chain   string
	Res     int
	Resname string

	DeltaScore  float64
	DeltaVdw    float64
	DeltaElec   float64
	DeltaDesolv float64
	DeltaBsa    float64

	// FracPres is occurrence over cluster population; it may be below 1
	// when a residue was not an interface residue in every member.
	FracPres float64
	ZScore   float64
}

// Summary finalizes the accumulator: averages by occurrence, fraction by
// population, z-scores over the averaged delta-score column, rows sorted by
// chain then numeric residue number.
func (c *Cluster) Summary() []SummaryRow {
	rows := make([]SummaryRow, 0, len(c.Entries))
	for key, e := range c.Entries {
		occ := float64(e.Occurrence)
		rows = append(rows, SummaryRow{
			Chain:       key.Chain,
			Res:         key.Res,
			Resname:     key.Resname,
			DeltaScore:  e.DeltaScore / occ,
			DeltaVdw:    e.DeltaVdw / occ,
			DeltaElec:   e.DeltaElec / occ,
			DeltaDesolv: e.DeltaDesolv / occ,
			DeltaBsa:    e.DeltaBsa / occ,
			FracPres:    occ / float64(c.Population),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Chain != rows[j].Chain {
			return rows[i].Chain < rows[j].Chain
		}
		return rows[i].Res < rows[j].Res
	})

	deltas := make([]float64, len(rows))
	for i, r := range rows {
		deltas[i] = r.DeltaScore
	}
	zs := scan.ZScores(deltas)
	for i := range rows {
		rows[i].ZScore = zs[i]
	}
	return rows
}
