package session

import (
	"os"
)

// LoadMessages re-streams a session file fully and returns its ordered
// displayable messages. This is the only place full conversation content
// is materialized; the result belongs to the requesting view. Line
// numbers count every physical line, including skipped ones.
func LoadMessages(path string) ([]DisplayMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var messages []DisplayMessage

	err = forEachLine(f, func(n int, line []byte) bool {
		record, ok := DecodeLine(line)
		if !ok || !record.IsMessage() || record.Message == nil {
			return true
		}

		msg := DisplayMessage{
			Role:      record.Type,
			Content:   RenderContent(record.Message),
			GitBranch: record.GitBranch,
			Line:      n,
		}
		if t, ok := record.Time(); ok {
			msg.Timestamp = t
		}
		if record.Type == "assistant" {
			msg.Model = record.Message.Model
			msg.StopReason = record.Message.StopReason
			msg.Usage = record.Message.Usage
		}

		messages = append(messages, msg)
		return true
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}
