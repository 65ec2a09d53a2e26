package updater

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// recentLogLines caps how much of the run log pollers receive.
const recentLogLines = 20

// LogEntry is one timestamped line of a sync run's log.
type LogEntry struct {
	Time string `json:"time"`
	Msg  string `json:"msg"`
}

// State tracks one sync job: whether a run is in flight, how far along
// it is and what the last completed run produced. The running job
// writes, any number of pollers read; all methods are safe for
// concurrent use.
type State struct {
	prefix string

	mu          sync.Mutex
	running     bool
	progress    int
	total       int
	currentCase string
	lastUpdate  string
	lastResult  interface{}
	log         []LogEntry
}

// NewState creates a State whose console lines carry the given prefix.
func NewState(prefix string) *State {
	return &State{prefix: prefix}
}

// TryStart claims the job. Returns false when a run is already in
// flight; on success the progress counters and the log are reset.
func (s *State) TryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	s.progress = 0
	s.total = 0
	s.currentCase = ""
	s.log = nil
	return true
}

// Finish releases the job, clearing the live progress fields. The last
// result and the log survive for pollers.
func (s *State) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.progress = 0
	s.currentCase = ""
}

// SetTotal records how many cases the run will walk.
func (s *State) SetTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = n
}

// Step advances the progress counter and names the case being worked.
func (s *State) Step(progress int, currentCase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = progress
	s.currentCase = currentCase
}

// Logf appends a line to the run log and echoes it to the console.
func (s *State) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", s.prefix, msg)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, LogEntry{Time: time.Now().UTC().Format(time.RFC3339), Msg: msg})
}

// SetResult records the outcome of a completed run.
func (s *State) SetResult(result interface{}, when string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = when
	s.lastResult = result
}

// Status is the dashboard-facing view of the job.
type Status struct {
	Running     bool        `json:"running"`
	Progress    int         `json:"progress"`
	Total       int         `json:"total"`
	CurrentCase string      `json:"currentProcess"`
	LastUpdate  string      `json:"lastUpdate,omitempty"`
	LastResult  interface{} `json:"lastResult"`
}

// Status returns a point-in-time copy of the job state.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Running:     s.running,
		Progress:    s.progress,
		Total:       s.total,
		CurrentCase: s.currentCase,
		LastUpdate:  s.lastUpdate,
		LastResult:  s.lastResult,
	}
}

// Progress is the polling view: live counters plus the tail of the log.
type Progress struct {
	Running     bool       `json:"running"`
	Progress    int        `json:"progress"`
	Total       int        `json:"total"`
	CurrentCase string     `json:"currentProcess"`
	Log         []LogEntry `json:"log"`
}

// Recent returns the live counters and the last lines of the run log.
func (s *State) Recent() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	tail := s.log
	if len(tail) > recentLogLines {
		tail = tail[len(tail)-recentLogLines:]
	}
	out := make([]LogEntry, len(tail))
	copy(out, tail)
	return Progress{
		Running:     s.running,
		Progress:    s.progress,
		Total:       s.total,
		CurrentCase: s.currentCase,
		Log:         out,
	}
}
