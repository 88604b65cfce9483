package sched

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	cerrors "github.com/structbio/alascan/common/errors"
	"github.com/structbio/alascan/execer"
	"github.com/structbio/alascan/work"
)

// ArtifactName is the job-list artifact the MPI rank driver decodes. It is
// written to the current working directory, which all ranks share.
const ArtifactName = "mpi.gob"

// DefaultDriverBin is the rank driver launched on every MPI rank.
const DefaultDriverBin = "alascan-mpitask"

// MPIScheduler hands a whole batch to an external distributed launcher. It
// probes for mpirun first (explicit process count) and srun second (count
// supplied by the resource manager); neither present is a configuration
// error, not a retryable condition. The driver's stderr is the only failure
// signal: any output there fails the whole batch, with no partial-result
// recovery.
type MPIScheduler struct {
	ncores    int
	ex        execer.Execer
	driverBin string

	// lookPath is swapped out in tests.
	lookPath func(string) (string, error)
}

func NewMPIScheduler(ncores int, ex execer.Execer) *MPIScheduler {
	if ncores < 1 {
		ncores = 1
	}
	if ex == nil {
		ex = execer.NewOsExecer()
	}
	return &MPIScheduler{ncores: ncores, ex: ex, driverBin: DefaultDriverBin, lookPath: exec.LookPath}
}

func (s *MPIScheduler) Schedule(jobs []work.Job) ([]Result, error) {
	if err := WriteJobs(ArtifactName, jobs); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"jobs": len(jobs), "artifact": ArtifactName, "ncores": s.ncores}).
		Info("Handing batch to MPI launcher")

	var argv []string
	if _, err := s.lookPath("mpirun"); err == nil {
		argv = []string{"mpirun", "-np", strconv.Itoa(s.ncores), s.driverBin, ArtifactName}
	} else if _, err := s.lookPath("srun"); err == nil {
		argv = []string{"srun", s.driverBin, ArtifactName}
	} else {
		return nil, cerrors.NewError(
			errors.New("no MPI launcher available: neither mpirun nor srun found in PATH"),
			cerrors.NoLauncherExitCode)
	}
	log.WithFields(log.Fields{"argv": argv}).Debug("MPI command")

	var stdout, stderr bytes.Buffer
	p, err := s.ex.Exec(execer.Command{Argv: argv, Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		return nil, errors.Wrapf(err, "starting %s", argv[0])
	}
	st := p.Wait()
	if st.State != execer.COMPLETE || st.ExitCode != 0 {
		return nil, errors.Errorf("%s failed: exit code %d: %s", argv[0], st.ExitCode, st.Error)
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		// Log the driver's stderr before failing so diagnostics survive.
		log.WithFields(log.Fields{"stderr": errOut}).Error("MPI driver reported errors")
		return nil, errors.Errorf("mpi driver reported errors on stderr, failing batch")
	}

	// The launcher gives no per-job visibility; downstream consumers read
	// the per-structure files the ranks wrote.
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i].Job = job
	}
	return results, nil
}
