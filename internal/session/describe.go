package session

import (
	"path/filepath"
	"strings"
)

// Description heuristic: pick the one early user message that best says
// what a session is about. Operates on the candidate texts collected
// during the indexing pass, never on file I/O.

const (
	// maxCandidates caps how many user messages the indexer collects.
	maxCandidates = 10

	// descriptionLimit is the maximum rendered length of the winning
	// message, bracketed directory prefix excluded.
	descriptionLimit = 80

	// emptySessionLabel is shown when a session has no usable text and
	// no known working directory.
	emptySessionLabel = "(empty session)"
)

// systemMarkers identify messages injected by tooling rather than typed
// by a person. A marker only disqualifies when it appears in the first
// 100 characters of the lowercased text.
var systemMarkers = []string{
	"caveat: the messages below were generated",
	"<command-name>",
	"<local-command-stdout>",
	"<system-reminder>",
	"this session is being continued from a previous",
	"[request interrupted",
}

// ackPhrases are short continuation/acknowledgement replies. Substring
// match on purpose: this is a heuristic, and tightening it to word
// boundaries would change which sessions get which description.
var ackPhrases = []string{
	"continue",
	"go ahead",
	"sounds good",
	"looks good",
	"lgtm",
	"ok",
	"okay",
	"yes",
	"yep",
	"sure",
	"thanks",
	"thank you",
	"proceed",
	"do it",
	"try again",
}

// taskIndicators suggest the message states a task or asks a question.
var taskIndicators = []string{
	"help",
	"fix",
	"add",
	"create",
	"implement",
	"refactor",
	"update",
	"write",
	"build",
	"make",
	"change",
	"remove",
	"delete",
	"debug",
	"review",
	"explain",
	"why",
	"how",
	"what",
	"when",
	"where",
	"can you",
	"could you",
	"please",
	"i want",
	"i need",
	"let's",
	"should",
}

// Describe selects and formats the session description from the collected
// candidate messages. The result is at most descriptionLimit characters of
// message text, never cut mid-word, prefixed with the base name of the
// working directory when one is known.
func Describe(candidates []string, cwd string) string {
	text := pickDescription(candidates)
	text = collapseWhitespace(text)
	text = truncateAtWord(text, descriptionLimit)

	base := ""
	if cwd != "" {
		base = "[" + filepath.Base(cwd) + "]"
	}

	switch {
	case text == "" && base == "":
		return emptySessionLabel
	case text == "":
		return base
	case base == "":
		return text
	default:
		return base + " " + text
	}
}

// pickDescription applies the selection rules in order:
//  1. drop candidates shorter than 20 characters
//  2. drop candidates with a system marker in the first 100 characters
//  3. drop short (<50 chars) acknowledgement replies
//  4. take the first survivor that is >=50 chars, or >=30 chars with a
//     task/question indicator
//  5. else the first survivor
//  6. else the first candidate long enough to mean anything
func pickDescription(candidates []string) string {
	var survivors []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if len(c) < 20 {
			continue
		}
		lower := strings.ToLower(c)
		head := lower
		if len(head) > 100 {
			head = head[:100]
		}
		if containsAny(head, systemMarkers) {
			continue
		}
		if len(c) < 50 && containsAny(lower, ackPhrases) {
			continue
		}
		survivors = append(survivors, c)
	}

	for _, c := range survivors {
		if len(c) >= 50 {
			return c
		}
		if len(c) >= 30 && containsAny(strings.ToLower(c), taskIndicators) {
			return c
		}
	}

	if len(survivors) > 0 {
		return survivors[0]
	}

	for _, c := range candidates {
		if c = strings.TrimSpace(c); len(c) >= 20 {
			return c
		}
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// collapseWhitespace folds newlines and runs of spaces into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateAtWord cuts s down to at most max characters, backing up to the
// last whole word and marking the cut with an ellipsis.
func truncateAtWord(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max-3]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
