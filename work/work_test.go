package work

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPartitionAbsorbsRemainderFirst(t *testing.T) {
	ranges := Partition(10, 3)
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}
	wantSizes := []int{4, 3, 3}
	for i, rng := range ranges {
		if rng.Len() != wantSizes[i] {
			t.Fatalf("range %d has size %d, want %d (ranges: %+v)", i, rng.Len(), wantSizes[i], ranges)
		}
		if rng.Core != i {
			t.Fatalf("range %d has core %d", i, rng.Core)
		}
	}
}

func TestPartitionEmpty(t *testing.T) {
	if ranges := Partition(0, 4); ranges != nil {
		t.Fatalf("expected no ranges for n=0, got %+v", ranges)
	}
}

func TestPartitionMoreCoresThanWork(t *testing.T) {
	ranges := Partition(2, 8)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	for _, rng := range ranges {
		if rng.Len() != 1 {
			t.Fatalf("expected singleton ranges, got %+v", ranges)
		}
	}
}

func Test_PartitionCoversEveryIndexExactlyOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ranges are contiguous, ordered and cover 0..n-1", prop.ForAll(
		func(n, ncores int) bool {
			ranges := Partition(n, ncores)
			if n == 0 {
				return len(ranges) == 0
			}
			if len(ranges) > ncores {
				return false
			}
			next := 0
			for i, rng := range ranges {
				if rng.Core != i || rng.Start != next || rng.End <= rng.Start {
					return false
				}
				next = rng.End
			}
			return next == n
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 64),
	))

	properties.Property("earlier ranges are never smaller than later ones", prop.ForAll(
		func(n, ncores int) bool {
			ranges := Partition(n, ncores)
			for i := 1; i < len(ranges); i++ {
				if ranges[i-1].Len() < ranges[i].Len() {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 500),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}
