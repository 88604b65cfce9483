package async

import (
	"errors"
	"testing"
)

func TestRunnerDeliversResults(t *testing.T) {
	r := NewRunner()
	var got []error
	r.RunAsync(func() error { return nil }, func(err error) { got = append(got, err) })
	r.RunAsync(func() error { return errors.New("boom") }, func(err error) { got = append(got, err) })
	r.Wait()

	if r.NumRunning() != 0 {
		t.Fatalf("expected no goroutines in flight, got %d", r.NumRunning())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(got))
	}
	failures := 0
	for _, err := range got {
		if err != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly one failure, got %d", failures)
	}
}

func TestProcessMessagesNoop(t *testing.T) {
	r := NewRunner()
	// must not block with nothing in flight
	r.ProcessMessages()
}
