package pdb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func atomLine(serial int, atom, resname, chain string, resnum int) string {
	return fmt.Sprintf("ATOM  %5d %-4s %3s %s%4d      11.104  13.207   9.331", serial, atom, resname, chain, resnum)
}

func writeFixture(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	fname := filepath.Join(dir, "model_1.pdb")
	if err := os.WriteFile(fname, []byte(strings.Join(lines, "\n")+"\n"), 0666); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestMutateRewritesOnlySharedAtoms(t *testing.T) {
	lines := []string{
		atomLine(1, "N", "LEU", "A", 12),
		atomLine(2, "CA", "LEU", "A", 12),
		atomLine(3, "C", "LEU", "A", 12),
		atomLine(4, "O", "LEU", "A", 12),
		atomLine(5, "CB", "LEU", "A", 12),
		atomLine(6, "CD1", "LEU", "A", 12),
		atomLine(7, "N", "SER", "A", 13),
		atomLine(8, "CA", "SER", "B", 12),
	}
	fname := writeFixture(t, lines)

	mutPath, mutID, err := Mutate(fname, "A", 12, "ALA")
	if err != nil {
		t.Fatal(err)
	}
	if mutID != "L12A" {
		t.Fatalf("mutation id is %q, want L12A", mutID)
	}
	wantPath := filepath.Join(filepath.Dir(fname), "model_1-A_L12A.pdb")
	if mutPath != wantPath {
		t.Fatalf("mutant path is %q, want %q", mutPath, wantPath)
	}

	data, err := os.ReadFile(mutPath)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(got) != len(lines) {
		t.Fatalf("mutant has %d lines, want %d", len(got), len(lines))
	}
	for i, line := range got {
		switch i {
		case 0, 1, 2, 3, 4:
			if !strings.Contains(line, "ALA") {
				t.Fatalf("line %d not mutated: %q", i, line)
			}
			want := strings.Replace(lines[i], "LEU", "ALA", 1)
			if line != want {
				t.Fatalf("line %d is %q, want %q", i, line, want)
			}
		default:
			// side-chain atoms of the residue and unrelated residues are
			// byte-identical
			if line != lines[i] {
				t.Fatalf("line %d modified: %q -> %q", i, lines[i], line)
			}
		}
	}
}

func TestMutateSelfMutationID(t *testing.T) {
	fname := writeFixture(t, []string{
		atomLine(1, "N", "ALA", "A", 12),
		atomLine(2, "CA", "ALA", "A", 12),
	})
	_, mutID, err := Mutate(fname, "A", 12, "ALA")
	if err != nil {
		t.Fatal(err)
	}
	if mutID != "A12A" {
		t.Fatalf("self mutation id is %q, want A12A", mutID)
	}
}

func TestMutateIsDeterministic(t *testing.T) {
	fname := writeFixture(t, []string{atomLine(1, "CA", "GLY", "B", 7)})
	p1, _, err := Mutate(fname, "B", 7, "ALA")
	if err != nil {
		t.Fatal(err)
	}
	p2, _, err := Mutate(fname, "B", 7, "ALA")
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Fatalf("paths differ across re-runs: %q vs %q", p1, p2)
	}
}

func TestMutateUnknownResidue(t *testing.T) {
	fname := writeFixture(t, []string{atomLine(1, "CA", "UNK", "A", 5)})
	if _, _, err := Mutate(fname, "A", 5, "ALA"); err == nil {
		t.Fatal("expected lookup error for unknown residue name")
	}
}

func TestMutateUnknownTarget(t *testing.T) {
	fname := writeFixture(t, []string{atomLine(1, "CA", "GLY", "A", 5)})
	if _, _, err := Mutate(fname, "A", 5, "XXX"); err == nil {
		t.Fatal("expected lookup error for unknown target name")
	}
}

func TestMutateResidueNotFound(t *testing.T) {
	fname := writeFixture(t, []string{atomLine(1, "CA", "GLY", "A", 5)})
	if _, _, err := Mutate(fname, "A", 99, "ALA"); err == nil {
		t.Fatal("expected error for absent residue")
	}
}

func TestResidueNames(t *testing.T) {
	fname := writeFixture(t, []string{
		atomLine(1, "N", "LEU", "A", 12),
		atomLine(2, "CA", "LEU", "A", 12),
		atomLine(3, "N", "SER", "B", 3),
		"TER",
	})
	names, err := ResidueNames(fname)
	if err != nil {
		t.Fatal(err)
	}
	if names["A-12"] != "LEU" || names["B-3"] != "SER" {
		t.Fatalf("unexpected residue names: %+v", names)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(names))
	}
}
