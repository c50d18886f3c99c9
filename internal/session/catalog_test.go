package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ccsessions/internal/config"
	"ccsessions/internal/tag"
)

const (
	authLine   = `{"type":"user","cwd":"/home/dev/webapp","message":{"role":"user","content":"Please fix the authentication bug in the login handler"}}`
	cacheLine  = `{"type":"user","cwd":"/home/dev/svc","message":{"role":"user","content":"Investigate why the cache layer drops entries under load"}}`
	needleLine = `{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"The xylophone constant is unused."}]}}`
)

// newRoot builds a projects directory with one workspace subdirectory.
func newRoot(t *testing.T) (root, workspace string) {
	t.Helper()
	root = t.TempDir()
	workspace = filepath.Join(root, "-home-dev-webapp")
	if err := os.Mkdir(workspace, 0o755); err != nil {
		t.Fatal(err)
	}
	return root, workspace
}

func TestLoad(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	older := writeSession(t, ws, "older.jsonl", authLine)
	newer := writeSession(t, ws, "newer.jsonl", cacheLine)

	// Force a stable mtime order regardless of write timing.
	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, base, base); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	c, err := Load([]string{root}, tag.NewSidecarStore())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(c.Summaries) != 2 {
		t.Fatalf("len(Summaries) = %d, want 2", len(c.Summaries))
	}
	if c.Summaries[0].ID != "newer" || c.Summaries[1].ID != "older" {
		t.Errorf("order = %s, %s; want newest first", c.Summaries[0].ID, c.Summaries[1].ID)
	}
	if c.Summaries[0].Workspace != "-home-dev-webapp" {
		t.Errorf("Workspace = %q", c.Summaries[0].Workspace)
	}
}

func TestLoadExclusions(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	writeSession(t, ws, "real.jsonl", authLine)
	writeSession(t, ws, "history.jsonl", authLine)
	writeSession(t, ws, "agent-task.jsonl", authLine)
	writeSession(t, ws, "empty.jsonl", `{"type":"summary","summary":"nothing"}`)
	writeSession(t, ws, "notes.txt", "not a session")

	c, err := Load([]string{root}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(c.Summaries) != 1 {
		t.Fatalf("len(Summaries) = %d, want 1", len(c.Summaries))
	}
	if c.Summaries[0].ID != "real" {
		t.Errorf("kept %q, want %q", c.Summaries[0].ID, "real")
	}
}

func TestLoadShowsAgentSessionsWhenConfigured(t *testing.T) {
	config.SetGlobal(&config.Config{Theme: "mocha", ShowAgentSessions: true})
	t.Cleanup(func() { config.SetGlobal(config.DefaultConfig()) })
	root, ws := newRoot(t)

	writeSession(t, ws, "agent-task.jsonl", authLine)

	c, err := Load([]string{root}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(c.Summaries) != 1 {
		t.Errorf("len(Summaries) = %d, want 1", len(c.Summaries))
	}
}

func TestLoadMissingRoot(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	if _, err := Load([]string{filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Error("expected error for unreadable root")
	}
}

func TestLoadJoinsTags(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	path := writeSession(t, ws, "tagged.jsonl", authLine)
	store := tag.NewSidecarStore()
	if err := store.Write(path, "important"); err != nil {
		t.Fatal(err)
	}

	c, err := Load([]string{root}, store)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Summaries[0].Tag != "important" {
		t.Errorf("Tag = %q, want %q", c.Summaries[0].Tag, "important")
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		input string
		term  string
		deep  bool
	}{
		{"auth", "auth", false},
		{"c:needle", "needle", true},
		{"c: spaced term ", "spaced term", true},
		{"c:", "", true},
		{"", "", false},
		{"  padded  ", "padded", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term, deep := ParseQuery(tt.input)
			if term != tt.term || deep != tt.deep {
				t.Errorf("ParseQuery(%q) = (%q, %v), want (%q, %v)",
					tt.input, term, deep, tt.term, tt.deep)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	writeSession(t, ws, "one.jsonl", authLine)
	writeSession(t, ws, "two.jsonl", cacheLine)

	c, err := Load([]string{root}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		term string
		want int
	}{
		{"", 2},
		{"auth", 1},          // description
		{"AUTH", 1},          // case-insensitive
		{"webapp", 2},        // workspace matches both
		{"one", 1},           // session id
		{"no-such-thing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := c.Filter(tt.term); len(got) != tt.want {
				t.Errorf("Filter(%q) matched %d, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestFilterMatchesTag(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	path := writeSession(t, ws, "one.jsonl", authLine)
	store := tag.NewSidecarStore()
	if err := store.Write(path, "release-prep"); err != nil {
		t.Fatal(err)
	}

	c, err := Load([]string{root}, store)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := c.Filter("release"); len(got) != 1 {
		t.Errorf("Filter by tag matched %d, want 1", len(got))
	}
}

func TestDeepFilter(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	writeSession(t, ws, "meta.jsonl", authLine)
	writeSession(t, ws, "content.jsonl", cacheLine, needleLine)

	c, err := Load([]string{root}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// "xylophone" appears only inside conversation content.
	if got := c.Filter("xylophone"); len(got) != 0 {
		t.Fatalf("metadata filter matched %d, want 0", len(got))
	}
	deep, err := c.DeepFilter(context.Background(), "xylophone")
	if err != nil {
		t.Fatalf("DeepFilter() error: %v", err)
	}
	if len(deep) != 1 || deep[0].ID != "content" {
		t.Errorf("DeepFilter matched %v, want [content]", ids(deep))
	}

	// Deep results are a superset of metadata results for the same term.
	meta := c.Filter("auth")
	deep, err = c.DeepFilter(context.Background(), "auth")
	if err != nil {
		t.Fatalf("DeepFilter() error: %v", err)
	}
	if len(deep) < len(meta) {
		t.Errorf("deep matched %d, metadata matched %d; deep must be a superset", len(deep), len(meta))
	}
}

func TestDeepFilterScansPastOversizedLine(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)

	huge := `{"type":"assistant","message":{"role":"assistant","content":"` +
		strings.Repeat("z", 3*1024*1024) + `"}}`
	writeSession(t, ws, "big.jsonl", cacheLine, huge, needleLine)

	c, err := Load([]string{root}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	// The needle sits on the line after the oversized one.
	deep, err := c.DeepFilter(context.Background(), "xylophone")
	if err != nil {
		t.Fatalf("DeepFilter() error: %v", err)
	}
	if len(deep) != 1 {
		t.Errorf("DeepFilter matched %d, want 1 (scan continues past oversized line)", len(deep))
	}
}

func TestDeepFilterCancellation(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	root, ws := newRoot(t)
	writeSession(t, ws, "one.jsonl", cacheLine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := Load([]string{root}, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := c.DeepFilter(ctx, "xylophone"); err == nil {
		t.Error("expected context error from canceled deep search")
	}
}

func TestDelete(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	_, ws := newRoot(t)

	existing := writeSession(t, ws, "one.jsonl", authLine)
	missing := filepath.Join(ws, "gone.jsonl")

	results := Delete([]string{existing, missing})
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Delete(%s) error: %v", r.Path, r.Err)
		}
	}
	if _, err := os.Stat(existing); !os.IsNotExist(err) {
		t.Error("expected session file to be removed")
	}
}

func TestDeleteLeavesSidecar(t *testing.T) {
	config.SetGlobal(config.DefaultConfig())
	_, ws := newRoot(t)

	path := writeSession(t, ws, "one.jsonl", authLine)
	store := tag.NewSidecarStore()
	if err := store.Write(path, "keep"); err != nil {
		t.Fatal(err)
	}

	Delete([]string{path})

	if _, err := os.Stat(tag.SidecarPath(path)); err != nil {
		t.Errorf("sidecar should survive session deletion: %v", err)
	}
}

func ids(summaries []*Summary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.ID
	}
	return out
}
