package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ccsessions/internal/session"
	"ccsessions/internal/tag"
)

// loadCatalog builds the catalog from the configured roots with the
// default sidecar tag store.
func loadCatalog() (*session.Catalog, error) {
	c, err := session.Load(nil, tag.NewSidecarStore())
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	return c, nil
}

// findSummary resolves a command-line session argument: a path to a
// .jsonl file is indexed directly (so even empty or hidden sessions can
// be addressed), anything else is looked up in the catalog by identifier,
// exact match first, then unique prefix.
func findSummary(c *session.Catalog, arg string) (*session.Summary, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		s, err := session.Index(arg, filepath.Base(filepath.Dir(arg)))
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", arg, err)
		}
		if value, err := tag.NewSidecarStore().Read(arg); err == nil {
			s.Tag = value
		}
		return s, nil
	}

	if s := c.ByID(arg); s != nil {
		return s, nil
	}

	var matches []*session.Summary
	for _, s := range c.Summaries {
		if strings.HasPrefix(s.ID, arg) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q is ambiguous (%d sessions match)", arg, len(matches))
	}
}

// humanSize renders a byte count the way the session list shows it.
func humanSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/1024/1024)
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
