package workflow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRunNumbersStepDirectories(t *testing.T) {
	root := t.TempDir()
	var order []string
	step := func(name string) Step {
		return Step{Name: name, Run: func(workdir string) error {
			order = append(order, filepath.Base(workdir))
			return nil
		}}
	}
	w := New(step("scan"), step("aggregate"), step("accscore"))
	if err := w.Run(root); err != nil {
		t.Fatal(err)
	}

	want := []string{"0_scan", "1_aggregate", "2_accscore"}
	if len(order) != len(want) {
		t.Fatalf("ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ran %v, want %v", order, want)
		}
		if fi, err := os.Stat(filepath.Join(root, want[i])); err != nil || !fi.IsDir() {
			t.Fatalf("step directory %s not created: %v", want[i], err)
		}
	}
}

func TestRunZeroFillsWideStepCounts(t *testing.T) {
	root := t.TempDir()
	var steps []Step
	for i := 0; i < 11; i++ {
		steps = append(steps, Step{Name: "s", Run: func(string) error { return nil }})
	}
	if err := New(steps...).Run(root); err != nil {
		t.Fatal(err)
	}
	// two-digit step count pads the early directories so listings sort
	if _, err := os.Stat(filepath.Join(root, "00_s")); err != nil {
		t.Fatalf("expected zero-filled directory 00_s: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "10_s")); err != nil {
		t.Fatalf("expected directory 10_s: %v", err)
	}
}

func TestRunStopsOnFirstFailure(t *testing.T) {
	root := t.TempDir()
	ran := 0
	w := New(
		Step{Name: "ok", Run: func(string) error { ran++; return nil }},
		Step{Name: "boom", Run: func(string) error { ran++; return errors.New("step exploded") }},
		Step{Name: "never", Run: func(string) error { ran++; return nil }},
	)
	err := w.Run(root)
	if err == nil {
		t.Fatal("expected workflow failure")
	}
	if got := err.Error(); !strings.HasPrefix(got, "step boom") {
		t.Fatalf("error does not name the failing step: %q", got)
	}
	if ran != 2 {
		t.Fatalf("ran %d steps, want 2", ran)
	}
}
