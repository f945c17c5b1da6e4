package testutil

import (
	"context"
	"strings"
	"sync"
)

// RunnerCall is one command seen by a RecordingRunner
type RunnerCall struct {
	Dir  string
	Name string
	Args []string
}

// Line renders the call as a command line
func (c RunnerCall) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

type scriptedResponse struct {
	prefix string
	output string
	err    error
}

// RecordingRunner records commands and answers them from a script. Commands
// without a scripted response succeed with empty output.
type RecordingRunner struct {
	mu        sync.Mutex
	responses []scriptedResponse
	calls     []RunnerCall
}

// NewRecordingRunner creates an empty runner
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{}
}

// On scripts the response for command lines starting with prefix, e.g.
// "git pull". The first matching entry wins.
func (r *RecordingRunner) On(prefix, output string, err error) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, scriptedResponse{prefix: prefix, output: output, err: err})
	return r
}

// Run records the call and returns the scripted response
func (r *RecordingRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := RunnerCall{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	r.calls = append(r.calls, call)

	line := call.Line()
	for _, resp := range r.responses {
		if strings.HasPrefix(line, resp.prefix) {
			return []byte(resp.output), resp.err
		}
	}
	return nil, nil
}

// Calls returns the recorded calls in order
func (r *RecordingRunner) Calls() []RunnerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RunnerCall(nil), r.calls...)
}

// Lines returns the recorded calls as command lines
func (r *RecordingRunner) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}
