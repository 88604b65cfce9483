package scan

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var resultColumns = []string{
	"chain", "res", "ori_resname", "end_resname",
	"score", "vdw", "elec", "desolv", "bsa",
	"delta_ori_score", "delta_score", "delta_vdw", "delta_elec", "delta_desolv", "delta_bsa",
	"z_score",
}

// ResultFileName returns the per-structure result file name for a structure
// display name.
func ResultFileName(structureName string) string {
	return fmt.Sprintf("scan_%s.csv", structureName)
}

// WriteResultFile persists the rows for one structure: a four-line comment
// header, a tab-separated column header, one row per scanned residue,
// floats to 3 decimal places.
func WriteResultFile(fname, structureName string, rows []Row) error {
	f, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "creating %s", fname)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, strings.Repeat("#", 40))
	fmt.Fprintf(w, "# alascan results for %s\n", structureName)
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, strings.Repeat("#", 40))
	fmt.Fprintln(w, strings.Join(resultColumns, "\t"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.Chain, r.Res, r.OriResname, r.EndResname,
			r.Score, r.Vdw, r.Elec, r.Desolv, r.Bsa,
			r.DeltaOriScore, r.DeltaScore, r.DeltaVdw, r.DeltaElec, r.DeltaDesolv, r.DeltaBsa,
			r.ZScore)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", fname)
	}
	return nil
}

// ReadResultFile parses a per-structure result file. Comment lines are
// skipped; a header or row that does not match the expected columns is an
// error so truncated files fail loudly instead of being averaged silently.
func ReadResultFile(fname string) ([]Row, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []Row
	headerSeen := false
	sc := bufio.NewScanner(f)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if !headerSeen {
			if strings.Join(fields, "\t") != strings.Join(resultColumns, "\t") {
				return nil, errors.Errorf("%s:%d: unexpected header %q", fname, lineno, line)
			}
			headerSeen = true
			continue
		}
		if len(fields) != len(resultColumns) {
			return nil, errors.Errorf("%s:%d: truncated row with %d of %d columns", fname, lineno, len(fields), len(resultColumns))
		}
		row, err := parseRow(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", fname, lineno)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", fname)
	}
	if !headerSeen {
		return nil, errors.Errorf("%s: no header row found", fname)
	}
	return rows, nil
}

func parseRow(fields []string) (Row, error) {
	var r Row
	var err error
	r.Chain = fields[0]
	if r.Res, err = strconv.Atoi(fields[1]); err != nil {
		return r, errors.Wrapf(err, "bad res %q", fields[1])
	}
	r.OriResname = fields[2]
	r.EndResname = fields[3]
	floats := []*float64{
		&r.Score, &r.Vdw, &r.Elec, &r.Desolv, &r.Bsa,
		&r.DeltaOriScore, &r.DeltaScore, &r.DeltaVdw, &r.DeltaElec, &r.DeltaDesolv, &r.DeltaBsa,
		&r.ZScore,
	}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(fields[4+i], 64); err != nil {
			return r, errors.Wrapf(err, "bad %s %q", resultColumns[4+i], fields[4+i])
		}
	}
	return r, nil
}
