package session

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ccsessions/internal/config"
	"ccsessions/internal/tag"
)

const (
	// DeepSearchPrefix switches a query from metadata-only to full-content
	// search when it leads the input.
	DeepSearchPrefix = "c:"

	// historyFile is the shared prompt-history log that lives next to
	// session files and is never a session itself.
	historyFile = "history.jsonl"

	// agentPrefix marks background agent-spawned sessions, hidden from the
	// default listing.
	agentPrefix = "agent-"
)

// DefaultRoot returns the Claude Code projects directory, honoring the
// configured override.
func DefaultRoot() string {
	if dir := config.Global().ProjectsDir; dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "projects")
}

// Catalog holds the indexed summaries for a set of roots, sorted by file
// modification time, most recent first.
type Catalog struct {
	Summaries []*Summary

	tags tag.Store
}

// Load enumerates session files under the given roots (directories are
// walked, files are used directly), indexes each one, and joins user tags.
// Files that fail to index are dropped silently; a root that cannot be
// read at all is an error. Empty sessions (zero messages) are excluded
// from the listing.
func Load(roots []string, tags tag.Store) (*Catalog, error) {
	if len(roots) == 0 {
		roots = append([]string{DefaultRoot()}, config.Global().ExtraRoots...)
	}

	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		found, err := discoverFiles(root)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	c := &Catalog{tags: tags}
	for _, path := range files {
		s, err := Index(path, filepath.Base(filepath.Dir(path)))
		if err != nil {
			continue // unreadable session, drop it
		}
		if s.MessageCount == 0 {
			continue
		}
		if tags != nil {
			if value, err := tags.Read(path); err == nil {
				s.Tag = value
			}
		}
		c.Summaries = append(c.Summaries, s)
	}

	sort.SliceStable(c.Summaries, func(i, j int) bool {
		return c.Summaries[i].Modified.After(c.Summaries[j].Modified)
	})

	return c, nil
}

// discoverFiles walks a root directory for session files, skipping the
// reserved history log and, unless configured otherwise, agent sessions.
func discoverFiles(root string) ([]string, error) {
	showAgents := config.Global().ShowAgentSessions

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // unreadable subtree, keep walking
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			return nil
		}
		if name == historyFile {
			return nil
		}
		if !showAgents && strings.HasPrefix(name, agentPrefix) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ByID returns the summary with the given identifier, or nil.
func (c *Catalog) ByID(id string) *Summary {
	for _, s := range c.Summaries {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// ParseQuery splits a search input into its term and mode. A leading
// DeepSearchPrefix requests full-content search; the remainder is the
// term, and an empty term means "no filter".
func ParseQuery(input string) (term string, deep bool) {
	if strings.HasPrefix(input, DeepSearchPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(input, DeepSearchPrefix)), true
	}
	return strings.TrimSpace(input), false
}

// Filter returns the summaries whose metadata matches the term,
// case-insensitively, preserving catalog order. An empty term matches
// everything.
func (c *Catalog) Filter(term string) []*Summary {
	if term == "" {
		return c.Summaries
	}
	lower := strings.ToLower(term)

	var matched []*Summary
	for _, s := range c.Summaries {
		if s.matchesMetadata(lower) {
			matched = append(matched, s)
		}
	}
	return matched
}

func (s *Summary) matchesMetadata(lower string) bool {
	for _, field := range []string{s.ID, s.Workspace, s.Description, s.Tag, s.CWD} {
		if strings.Contains(strings.ToLower(field), lower) {
			return true
		}
	}
	return false
}

// DeepFilter returns the metadata matches plus every session whose full
// content contains the term. It re-streams each non-matching file, so it
// is O(total bytes) where Filter is O(catalog size); callers invoke it
// only on explicit request. Cancellation is checked between files, never
// mid-file.
func (c *Catalog) DeepFilter(ctx context.Context, term string) ([]*Summary, error) {
	if term == "" {
		return c.Summaries, nil
	}
	lower := strings.ToLower(term)

	var matched []*Summary
	for _, s := range c.Summaries {
		if s.matchesMetadata(lower) {
			matched = append(matched, s)
			continue
		}
		if err := ctx.Err(); err != nil {
			return matched, err
		}
		if fileContains(s.Path, lower) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// fileContains re-streams one session file looking for the lowercased
// term in text, tool-input, and thinking blocks. Unreadable files simply
// do not match.
func fileContains(path, lower string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	found := false
	_ = forEachLine(f, func(_ int, line []byte) bool {
		record, ok := DecodeLine(line)
		if !ok || !record.IsMessage() || record.Message == nil {
			return true
		}
		if s, ok := record.Message.ContentString(); ok {
			if strings.Contains(strings.ToLower(s), lower) {
				found = true
				return false
			}
			return true
		}
		blocks, ok := record.Message.ContentBlocks()
		if !ok {
			return true
		}
		for _, b := range blocks {
			switch b.Type {
			case "text":
				if strings.Contains(strings.ToLower(b.Text), lower) {
					found = true
					return false
				}
			case "tool_use":
				if strings.Contains(strings.ToLower(string(b.Input)), lower) {
					found = true
					return false
				}
			case "thinking":
				if strings.Contains(strings.ToLower(b.Thinking), lower) {
					found = true
					return false
				}
			}
		}
		return true
	})
	return found
}

// Delete removes the given session files from disk. One failure does not
// stop the rest of the batch; every outcome is reported. Orphaned tag
// sidecars are left in place.
func Delete(paths []string) []DeleteResult {
	results := make([]DeleteResult, 0, len(paths))
	for _, path := range paths {
		r := DeleteResult{Path: path}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.Err = err
		}
		results = append(results, r)
	}
	return results
}
