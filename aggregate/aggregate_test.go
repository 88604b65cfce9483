package aggregate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/model"
	"github.com/structbio/alascan/scan"
)

func writeResults(t *testing.T, dir, name string, rows []scan.Row) {
	t.Helper()
	fname := filepath.Join(dir, scan.ResultFileName(name))
	require.NoError(t, scan.WriteResultFile(fname, name, rows))
}

func row(chain string, res int, resname string, deltaScore float64) scan.Row {
	return scan.Row{
		Chain:      chain,
		Res:        res,
		OriResname: resname,
		EndResname: "ALA",
		DeltaScore: deltaScore,
		DeltaVdw:   deltaScore / 2,
	}
}

func TestClustersAveragesByOccurrence(t *testing.T) {
	dir := t.TempDir()
	// residue A-12 appears in both members, A-2 in only one
	writeResults(t, dir, "m1", []scan.Row{row("A", 12, "LEU", 1), row("A", 2, "GLY", 4)})
	writeResults(t, dir, "m2", []scan.Row{row("A", 12, "LEU", 3)})
	structures := []model.Structure{
		{Name: "m1", ClusterID: "1"},
		{Name: "m2", ClusterID: "1"},
	}

	clusters, err := Clusters(structures, dir, nil)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	cl := clusters["1"]
	assert.Equal(t, 2, cl.Population)

	rows := cl.Summary()
	require.Len(t, rows, 2)

	// shared residue: average over its own occurrence count, present in all
	shared := rows[1]
	assert.Equal(t, 12, shared.Res)
	assert.InDelta(t, 2.0, shared.DeltaScore, 1e-9)
	assert.InDelta(t, 1.0, shared.DeltaVdw, 1e-9)
	assert.InDelta(t, 1.0, shared.FracPres, 1e-9)

	// single-member residue: average over one occurrence, fraction over the
	// whole population
	single := rows[0]
	assert.Equal(t, 2, single.Res)
	assert.InDelta(t, 4.0, single.DeltaScore, 1e-9)
	assert.InDelta(t, 0.5, single.FracPres, 1e-9)
}

func TestClustersSeparatesUnclustered(t *testing.T) {
	dir := t.TempDir()
	writeResults(t, dir, "m1", []scan.Row{row("A", 12, "LEU", 1)})
	writeResults(t, dir, "m2", []scan.Row{row("A", 12, "LEU", 3)})
	structures := []model.Structure{
		{Name: "m1", ClusterID: "2"},
		{Name: "m2"}, // no assignment
	}

	clusters, err := Clusters(structures, dir, nil)
	require.NoError(t, err)
	require.Len(t, clusters, 2)
	assert.Equal(t, 1, clusters["2"].Population)
	assert.Equal(t, 1, clusters[model.UnclusteredID].Population)
}

func TestSummarySortsResiduesNumerically(t *testing.T) {
	dir := t.TempDir()
	writeResults(t, dir, "m1", []scan.Row{
		row("A", 10, "SER", 1),
		row("A", 2, "GLY", 1),
		row("A", 1, "MET", 1),
		row("B", 1, "LYS", 1),
	})
	clusters, err := Clusters([]model.Structure{{Name: "m1", ClusterID: "1"}}, dir, nil)
	require.NoError(t, err)

	rows := clusters["1"].Summary()
	require.Len(t, rows, 4)
	var order []int
	for _, r := range rows[:3] {
		assert.Equal(t, "A", r.Chain)
		order = append(order, r.Res)
	}
	assert.Equal(t, []int{1, 2, 10}, order)
	assert.Equal(t, "B", rows[3].Chain)
}

func TestClustersToleratesMissingResults(t *testing.T) {
	dir := t.TempDir()
	writeResults(t, dir, "m1", []scan.Row{row("A", 12, "LEU", 2)})
	// m2 crashed before writing anything
	structures := []model.Structure{
		{Name: "m1", ClusterID: "1"},
		{Name: "m2", ClusterID: "1"},
	}
	stat := stats.NewStatsReceiver()

	clusters, err := Clusters(structures, dir, stat)
	require.NoError(t, err)
	cl := clusters["1"]

	// the absent member still counts toward the population
	assert.Equal(t, 2, cl.Population)
	rows := cl.Summary()
	require.Len(t, rows, 1)
	assert.InDelta(t, 2.0, rows[0].DeltaScore, 1e-9)
	assert.InDelta(t, 0.5, rows[0].FracPres, 1e-9)
	assert.Equal(t, int64(1), stat.Counter(stats.AggregateMissingResults).Count())
}

func TestClustersRejectsMalformedResults(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, scan.ResultFileName("m1"))
	require.NoError(t, os.WriteFile(fname, []byte("chain\tres\nA\t12\n"), 0666))

	_, err := Clusters([]model.Structure{{Name: "m1"}}, dir, nil)
	require.Error(t, err)
}

func TestWriteSummaries(t *testing.T) {
	dir := t.TempDir()
	writeResults(t, dir, "m1", []scan.Row{row("A", 12, "LEU", 1), row("A", 13, "THR", 3)})
	clusters, err := Clusters([]model.Structure{{Name: "m1", ClusterID: "1"}}, dir, nil)
	require.NoError(t, err)

	written, err := WriteSummaries(clusters, dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "scan_clt_1.csv")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(summaryColumns, "\t"), lines[0])
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, len(summaryColumns))
	assert.Equal(t, "A", fields[0])
	assert.Equal(t, "12", fields[1])
	assert.Equal(t, "LEU", fields[2])
	assert.Equal(t, "A-12-LEU", fields[3])
	assert.Equal(t, "1.000", fields[4])
	// delta column {1, 3}: mean 2, std 1
	assert.Equal(t, "-1.000", fields[10])
}
