package session

import (
	"encoding/json"
	"time"
)

// Record represents a single line in a session JSONL file. Only `user` and
// `assistant` records count as conversation messages; every other type is
// decoded but ignored, and unknown fields are dropped by the decoder so
// newer log producers keep working.
type Record struct {
	Type      string   `json:"type"`
	Timestamp string   `json:"timestamp"`
	UUID      string   `json:"uuid"`
	SessionID string   `json:"sessionId"`
	GitBranch string   `json:"gitBranch"`
	CWD       string   `json:"cwd"`
	Version   string   `json:"version"`
	Message   *Message `json:"message,omitempty"`
}

// Message is the nested message object of a user/assistant record.
// Content is either a plain string or an array of content blocks, so it
// stays raw until a caller asks for one of the two shapes.
type Message struct {
	Role       string          `json:"role"`
	Model      string          `json:"model,omitempty"`
	StopReason string          `json:"stop_reason,omitempty"`
	Content    json.RawMessage `json:"content,omitempty"`
	Usage      *Usage          `json:"usage,omitempty"`
}

// Usage holds the token counters of an assistant message. Missing fields
// unmarshal to zero, which is exactly the accounting the indexer wants.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
}

// ContentBlock is one typed unit inside a content array.
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
	Thinking  string          `json:"thinking,omitempty"`
	Source    *ImageSource    `json:"source,omitempty"`
}

// ImageSource carries the media type of an image block. The raw image
// bytes are never decoded.
type ImageSource struct {
	MediaType string `json:"media_type"`
}

// DecodeLine parses one raw line into a Record. A false return means the
// line is not valid JSON and should be skipped; it is never a reason to
// abort the scan of a file.
func DecodeLine(line []byte) (*Record, bool) {
	var r Record
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, false
	}
	return &r, true
}

// IsMessage reports whether the record counts toward the message total.
func (r *Record) IsMessage() bool {
	return r.Type == "user" || r.Type == "assistant"
}

// Time parses the record's timestamp. Returns false when the record has
// no timestamp or it is not RFC 3339.
func (r *Record) Time() (time.Time, bool) {
	if r.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ContentString returns the content as a plain string, when it has that
// shape.
func (m *Message) ContentString() (string, bool) {
	if len(m.Content) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(m.Content, &s); err != nil {
		return "", false
	}
	return s, true
}

// ContentBlocks returns the content as an ordered block list, when it has
// that shape.
func (m *Message) ContentBlocks() ([]ContentBlock, bool) {
	if len(m.Content) == 0 {
		return nil, false
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(m.Content, &blocks); err != nil {
		return nil, false
	}
	return blocks, true
}

// FirstText reduces the message to its first plain-text content: the
// string itself for string content, otherwise the text of the first text
// block. Empty when the message carries no text at all (e.g. a pure
// tool_result message).
func (m *Message) FirstText() string {
	if s, ok := m.ContentString(); ok {
		return s
	}
	blocks, ok := m.ContentBlocks()
	if !ok {
		return ""
	}
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			return b.Text
		}
	}
	return ""
}
