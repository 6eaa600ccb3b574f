package tests

type runnerCall struct {
	Name string
	Args []string
	Env  []string
}

// RunnerStub records pg_dump/pg_restore invocations instead of spawning the
// real binaries, so the recovery endpoints can be exercised without a
// postgres installation.
type RunnerStub struct {
	Calls  []runnerCall
	Stderr string
	Err    error
}

func (s *RunnerStub) Run(name string, args []string, extraEnv []string) (string, error) {
	s.Calls = append(s.Calls, runnerCall{Name: name, Args: args, Env: extraEnv})
	return s.Stderr, s.Err
}
