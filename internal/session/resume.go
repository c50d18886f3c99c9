package session

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Resume replaces the current UI with `claude --resume <id>` running in
// the session's working directory. It blocks until the resumed session
// exits.
func Resume(sessionID, dir string) error {
	cmd := exec.Command(findClaudeBinary(), "--resume", sessionID)
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			cmd.Dir = dir
		}
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// findClaudeBinary locates the claude executable, falling back to common
// install locations when it is not on PATH.
func findClaudeBinary() string {
	if _, err := exec.LookPath("claude"); err == nil {
		return "claude"
	}

	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".claude", "local", "claude"),
		"/usr/local/bin/claude",
		"/opt/homebrew/bin/claude",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "claude"
}
