package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Truncation limits for rendered content blocks.
const (
	maxToolResultChars = 1000
	maxThinkingChars   = 500
)

// RenderContent converts a message's content into display text. String
// content is emitted verbatim; block lists are rendered block by block.
// Unrecognized block types are dropped.
func RenderContent(m *Message) string {
	if m == nil {
		return ""
	}
	if s, ok := m.ContentString(); ok {
		return s
	}
	blocks, ok := m.ContentBlocks()
	if !ok {
		return ""
	}

	var parts []string
	for _, b := range blocks {
		switch b.Type {
		case "text":
			parts = append(parts, b.Text)

		case "tool_use":
			name := b.Name
			if name == "" {
				name = "unknown"
			}
			parts = append(parts, fmt.Sprintf("\n[Tool: %s]\n%s\n", name, prettyJSON(b.Input)))

		case "tool_result":
			status := "OK"
			if b.IsError {
				status = "ERROR"
			}
			// Only string results are rendered; structured results are
			// skipped the same way unknown blocks are.
			var result string
			if err := json.Unmarshal(b.Content, &result); err != nil {
				continue
			}
			if len(result) > maxToolResultChars {
				result = result[:maxToolResultChars] + fmt.Sprintf("\n... (%d chars total)", len(result))
			}
			parts = append(parts, fmt.Sprintf("\n[Tool Result %s]\n%s\n", status, result))

		case "thinking":
			thinking := b.Thinking
			if len(thinking) > maxThinkingChars {
				thinking = thinking[:maxThinkingChars] + fmt.Sprintf("... (%d chars total)", len(b.Thinking))
			}
			parts = append(parts, fmt.Sprintf("\n[Thinking]\n%s\n", thinking))

		case "image":
			mediaType := "unknown"
			if b.Source != nil && b.Source.MediaType != "" {
				mediaType = b.Source.MediaType
			}
			parts = append(parts, fmt.Sprintf("\n[Image: %s]\n", mediaType))
		}
	}

	return strings.Join(parts, "\n")
}

// prettyJSON re-indents a raw JSON value for display, falling back to the
// raw bytes when it will not re-marshal.
func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
