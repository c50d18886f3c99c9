package session

import (
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		cwd        string
		expected   string
	}{
		{
			name:       "first substantial message wins",
			candidates: []string{"Please fix the authentication bug in the login handler"},
			cwd:        "/home/dev/webapp",
			expected:   "[webapp] Please fix the authentication bug in the login handler",
		},
		{
			name: "system caveat skipped",
			candidates: []string{
				"Caveat: the messages below were generated by the user while running local commands",
				"Refactor the session parser to stream instead of buffering",
			},
			cwd:      "",
			expected: "Refactor the session parser to stream instead of buffering",
		},
		{
			name: "command tags skipped",
			candidates: []string{
				"<command-name>/clear</command-name>",
				"Add retry logic to the upload client so transient failures recover",
			},
			cwd:      "",
			expected: "Add retry logic to the upload client so transient failures recover",
		},
		{
			name: "short acknowledgement skipped",
			candidates: []string{
				"ok sounds good, proceed",
				"Explain why the cache invalidation misses entries after a rename",
			},
			cwd:      "",
			expected: "Explain why the cache invalidation misses entries after a rename",
		},
		{
			name:       "medium message accepted",
			candidates: []string{"fix the slow database query"},
			cwd:        "",
			expected:   "fix the slow database query",
		},
		{
			name:       "only tiny acknowledgements fall back to cwd",
			candidates: []string{"ok", "yes", "sure"},
			cwd:        "/home/dev/api",
			expected:   "[api]",
		},
		{
			name:       "nothing at all",
			candidates: nil,
			cwd:        "",
			expected:   "(empty session)",
		},
		{
			name:       "no candidates but known cwd",
			candidates: nil,
			cwd:        "/srv/data/pipeline",
			expected:   "[pipeline]",
		},
		{
			name:       "whitespace collapsed",
			candidates: []string{"Fix the   indentation\nand the\ttab handling in the formatter"},
			cwd:        "",
			expected:   "Fix the indentation and the tab handling in the formatter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.candidates, tt.cwd)
			if got != tt.expected {
				t.Errorf("Describe() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDescribeTruncatesAtWordBoundary(t *testing.T) {
	long := "Implement the full request pipeline including parsing validation transformation persistence and response shaping"
	got := Describe([]string{long}, "")

	if len(got) > 80 {
		t.Errorf("description length = %d, want <= 80", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	// The cut must land between words, never inside one.
	trimmed := strings.TrimSuffix(got, "...")
	if !strings.HasPrefix(long, trimmed) {
		t.Errorf("truncated text %q is not a prefix of the original", trimmed)
	}
	if strings.HasSuffix(trimmed, " ") {
		t.Errorf("truncated text %q ends with a space", trimmed)
	}
	words := strings.Fields(long)
	last := strings.Fields(trimmed)
	if len(last) == 0 {
		t.Fatal("truncation left nothing")
	}
	found := false
	for _, w := range words {
		if w == last[len(last)-1] {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("truncation cut mid-word: %q", last[len(last)-1])
	}
}

func TestPickDescriptionPrefersLongOverEarlierShort(t *testing.T) {
	candidates := []string{
		"fix the parser crash right away", // 31 chars with a task verb, wins early
		"A much longer and more specific request that clearly states the work",
	}
	got := pickDescription(candidates)
	if got != candidates[0] {
		t.Errorf("pickDescription() = %q, want first qualifying candidate %q", got, candidates[0])
	}
}

func TestTruncateAtWord(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		max      int
		expected string
	}{
		{"short unchanged", "hello world", 80, "hello world"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"cut backs up to space", "alpha beta gamma delta", 15, "alpha beta..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateAtWord(tt.in, tt.max); got != tt.expected {
				t.Errorf("truncateAtWord(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.expected)
			}
		})
	}
}
