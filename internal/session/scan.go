package session

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// maxLineSize bounds a single JSONL line. Tool results with large file
// contents can get long; 2MB matches what Claude Code actually emits.
// Longer lines are treated like malformed ones: skipped, never a reason
// to stop reading the file.
const maxLineSize = 2 * 1024 * 1024

// forEachLine calls fn for every newline-delimited line of r with its
// 1-indexed physical line number. A line longer than maxLineSize is
// discarded up to its newline and the scan continues with the next line;
// the skipped line still counts toward numbering. fn returning false
// stops the scan early. The returned error is a real read failure, never
// a property of any single line.
func forEachLine(r io.Reader, fn func(n int, line []byte) bool) error {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		buf      []byte
		lineNo   int
		skipping bool
	)
	for {
		chunk, err := br.ReadSlice('\n')

		if !skipping && len(chunk) > 0 {
			buf = append(buf, chunk...)
			if len(buf) > maxLineSize {
				buf = buf[:0]
				skipping = true
			}
		}

		if len(chunk) > 0 && chunk[len(chunk)-1] == '\n' {
			lineNo++
			if !skipping {
				line := bytes.TrimSuffix(buf, []byte("\n"))
				line = bytes.TrimSuffix(line, []byte("\r"))
				if !fn(lineNo, line) {
					return nil
				}
			}
			buf = buf[:0]
			skipping = false
		}

		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			// No newline inside the read buffer yet; keep accumulating
			// (or keep discarding, when the line is already oversized).
		case errors.Is(err, io.EOF):
			// Final line without a trailing newline.
			if !skipping && len(buf) > 0 {
				lineNo++
				line := bytes.TrimSuffix(buf, []byte("\r"))
				fn(lineNo, line)
			}
			return nil
		default:
			return err
		}
	}
}
