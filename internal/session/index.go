package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Index streams a session file once and builds its Summary. Lines that
// fail to decode, and lines over the size cap, are skipped; the scan
// never aborts mid-file. An error is returned when the file cannot be
// opened or stat'd, or when the read itself fails partway — callers must
// treat that as "no summary", not as an empty session.
func Index(path, workspace string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := &Summary{
		ID:        strings.TrimSuffix(filepath.Base(path), ".jsonl"),
		Workspace: workspace,
		Path:      path,
		Modified:  info.ModTime(),
		SizeBytes: info.Size(),
		ToolUsage: make(map[string]int),
	}

	var candidates []string

	err = forEachLine(f, func(_ int, line []byte) bool {
		record, ok := DecodeLine(line)
		if !ok || !record.IsMessage() {
			return true
		}

		s.MessageCount++

		if t, ok := record.Time(); ok {
			if s.FirstMessage.IsZero() {
				s.FirstMessage = t
			}
			s.LastMessage = t
		}

		switch record.Type {
		case "user":
			if s.CWD == "" && record.CWD != "" {
				s.CWD = record.CWD
			}
			if record.Message != nil && len(candidates) < maxCandidates {
				if text := record.Message.FirstText(); text != "" {
					candidates = append(candidates, text)
				}
			}

		case "assistant":
			if record.Message == nil {
				return true
			}
			if s.Model == "" {
				s.Model = record.Message.Model
			}
			if u := record.Message.Usage; u != nil {
				s.InputTokens += u.InputTokens
				s.OutputTokens += u.OutputTokens
				s.CacheReadTokens += u.CacheReadInputTokens
				s.CacheCreateTokens += u.CacheCreationInputTokens
			}
			if blocks, ok := record.Message.ContentBlocks(); ok {
				for _, b := range blocks {
					if b.Type == "tool_use" {
						name := b.Name
						if name == "" {
							name = "unknown"
						}
						s.ToolUsage[name]++
					}
				}
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	s.Description = Describe(candidates, s.CWD)
	return s, nil
}
