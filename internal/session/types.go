package session

import "time"

// Summary is the indexed, lightweight representation of one session file,
// used for listing and search without loading full content. It is rebuilt
// by a full re-scan of its file on every catalog load, never patched.
type Summary struct {
	ID        string    // filename stem
	Workspace string    // workspace directory name
	Path      string    // absolute path to the .jsonl file
	Modified  time.Time // file mtime
	SizeBytes int64

	MessageCount int
	FirstMessage time.Time // zero when no timestamped message exists
	LastMessage  time.Time // zero when no timestamped message exists

	Model             string // from the first assistant record seen
	InputTokens       int
	OutputTokens      int
	CacheReadTokens   int
	CacheCreateTokens int

	ToolUsage map[string]int // tool name -> invocation count
	CWD       string         // from the first user record carrying one

	Description string
	Tag         string // user annotation, joined from the sidecar store
}

// TotalTokens returns input plus output tokens, the number shown in the
// session list.
func (s *Summary) TotalTokens() int {
	return s.InputTokens + s.OutputTokens
}

// Duration is the span between the first and last timestamped message,
// zero when either end is unknown.
func (s *Summary) Duration() time.Duration {
	if s.FirstMessage.IsZero() || s.LastMessage.IsZero() {
		return 0
	}
	return s.LastMessage.Sub(s.FirstMessage)
}

// DisplayMessage is one rendered conversation message, produced only when
// a session is opened. It is owned by the requesting view and never
// cached across sessions.
type DisplayMessage struct {
	Role       string // "user" or "assistant"
	Content    string // rendered text
	Timestamp  time.Time
	Model      string // assistant only
	StopReason string // assistant only
	Usage      *Usage // assistant only
	GitBranch  string
	Line       int // 1-indexed source line in the JSONL file
}

// DeleteResult reports the outcome of removing one session file.
type DeleteResult struct {
	Path string
	Err  error
}
