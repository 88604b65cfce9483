package work

// Job is the unit of work handed to a scheduler. A Job owns one partition of
// the structure list exclusively; Run accumulates per-structure results in
// memory and writes per-structure result files, Output persists the Job's
// completion note. Schedulers never need to know what kind of analysis a Job
// runs.
type Job interface {
	Run() error
	Output() error
}

// Binder is implemented by Jobs that carry collaborators which cannot cross
// a serialization boundary (scorers, coordinate readers). The MPI rank driver
// calls BindDefaults after decoding the job artifact.
type Binder interface {
	BindDefaults() error
}

// Range is a contiguous slice of the structure list owned by one core.
// Start is inclusive, End exclusive.
type Range struct {
	Core  int
	Start int
	End   int
}

// Len returns the number of structures in the range.
func (r Range) Len() int { return r.End - r.Start }

// Partition splits n structures over at most ncores contiguous ordered
// ranges. Every index lands in exactly one range and earlier ranges absorb
// the remainder when the division is uneven, so the split is deterministic:
// n=10, ncores=3 gives sizes 4, 3, 3.
func Partition(n, ncores int) []Range {
	if n <= 0 {
		return nil
	}
	if ncores < 1 {
		ncores = 1
	}
	njobs := ncores
	if n < njobs {
		njobs = n
	}
	base := n / njobs
	rem := n % njobs
	ranges := make([]Range, 0, njobs)
	start := 0
	for core := 0; core < njobs; core++ {
		size := base
		if core < rem {
			size++
		}
		ranges = append(ranges, Range{Core: core, Start: start, End: start + size})
		start += size
	}
	return ranges
}
