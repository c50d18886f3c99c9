package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ccsessions/internal/session"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show <session-id-or-path>",
	Short: "Print a session's full conversation",
	Long: `Print the rendered conversation of one session.

With --output the conversation is exported as a markdown transcript
instead of printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		summary, err := findSummary(catalog, args[0])
		if err != nil {
			return err
		}

		messages, err := session.LoadMessages(summary.Path)
		if err != nil {
			return fmt.Errorf("loading conversation: %w", err)
		}

		if showOutput != "" {
			transcript := formatMarkdown(summary, messages)
			if err := os.WriteFile(showOutput, []byte(transcript), 0o644); err != nil {
				return fmt.Errorf("writing transcript: %w", err)
			}
			fmt.Printf("Conversation exported to %s (%d messages)\n", showOutput, len(messages))
			return nil
		}

		printConversation(summary, messages)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write a markdown transcript to this file")
}

func printConversation(s *session.Summary, messages []session.DisplayMessage) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Workspace: %s\n", s.Workspace)
	fmt.Printf("Messages: %d\n", s.MessageCount)
	if s.CWD != "" {
		fmt.Printf("Directory: %s\n", s.CWD)
	}
	fmt.Println(strings.Repeat("=", 60))

	for i, m := range messages {
		fmt.Printf("\n--- %s (message %d) ---\n", roleLabel(m.Role), i+1)
		if meta := messageMeta(m); meta != "" {
			fmt.Println(meta)
		}
		fmt.Println(m.Content)
	}
}

// formatMarkdown builds a standalone markdown transcript of the session.
func formatMarkdown(s *session.Summary, messages []session.DisplayMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claude Code Session: %s\n\n", s.ID)
	fmt.Fprintf(&b, "**Session File:** `%s`\n\n", s.Path)
	fmt.Fprintf(&b, "**Total Messages:** %d\n\n", len(messages))
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("---\n")

	for i, m := range messages {
		fmt.Fprintf(&b, "\n## Message %d: %s\n\n", i+1, roleLabel(m.Role))
		if meta := messageMeta(m); meta != "" {
			fmt.Fprintf(&b, "*%s*\n\n", meta)
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	return b.String()
}

func roleLabel(role string) string {
	switch role {
	case "user":
		return "User"
	case "assistant":
		return "Assistant"
	default:
		return role
	}
}

// messageMeta renders the assistant metadata line: model, stop reason and
// token snapshot.
func messageMeta(m session.DisplayMessage) string {
	var parts []string
	if m.Model != "" {
		parts = append(parts, "Model: "+m.Model)
	}
	if m.StopReason != "" {
		parts = append(parts, "Stop: "+m.StopReason)
	}
	if m.Usage != nil {
		tokens := fmt.Sprintf("Tokens: in=%d, out=%d", m.Usage.InputTokens, m.Usage.OutputTokens)
		if m.Usage.CacheReadInputTokens > 0 {
			tokens += fmt.Sprintf(", cache_read=%d", m.Usage.CacheReadInputTokens)
		}
		parts = append(parts, tokens)
	}
	return strings.Join(parts, " | ")
}
