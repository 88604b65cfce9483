package aggregate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var summaryColumns = []string{
	"chain", "resnum", "resname", "full_resname",
	"delta_score", "delta_vdw", "delta_elec", "delta_desolv", "delta_bsa",
	"frac_pres", "z_score",
}

// SummaryFileName returns the summary file name for a cluster id.
func SummaryFileName(clusterID string) string {
	return fmt.Sprintf("scan_clt_%s.csv", clusterID)
}

// WriteSummaries writes one tab-separated summary file per cluster into dir
// and returns the paths written.
func WriteSummaries(clusters map[string]*Cluster, dir string) ([]string, error) {
	ids := make([]string, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var written []string
	for _, id := range ids {
		fname := filepath.Join(dir, SummaryFileName(id))
		log.WithFields(log.Fields{"cluster": id, "file": fname}).Info("Writing cluster summary")
		if err := writeSummary(fname, clusters[id]); err != nil {
			return written, err
		}
		written = append(written, fname)
	}
	return written, nil
}

func writeSummary(fname string, cl *Cluster) error {
	f, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "creating %s", fname)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, strings.Join(summaryColumns, "\t"))
	for _, r := range cl.Summary() {
		key := Key{Chain: r.Chain, Res: r.Res, Resname: r.Resname}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.Chain, r.Res, r.Resname, key.Ident(),
			r.DeltaScore, r.DeltaVdw, r.DeltaElec, r.DeltaDesolv, r.DeltaBsa,
			r.FracPres, r.ZScore)
	}
	return errors.Wrapf(w.Flush(), "writing %s", fname)
}
