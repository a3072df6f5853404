package verify

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// prefixWriter writes each complete line to target with prefix prepended.
// A partial line is held until the next newline or Flush. stdout and stderr
// writers of one process share mu so their lines never interleave mid-line.
type prefixWriter struct {
	prefix string
	target io.Writer
	mu     *sync.Mutex
	buf    bytes.Buffer
}

func newPrefixWriter(prefix string, target io.Writer, mu *sync.Mutex) *prefixWriter {
	return &prefixWriter{prefix: prefix, target: target, mu: mu}
}

func (w *prefixWriter) Write(p []byte) (n int, err error) {
	n, err = w.buf.Write(p)
	if err != nil {
		return n, err
	}

	for {
		line, readErr := w.buf.ReadString('\n')
		if readErr != nil {
			if line != "" {
				w.buf.WriteString(line)
			}
			break
		}

		if err := w.emit(line); err != nil {
			return n, err
		}
	}

	return n, nil
}

// Flush writes any buffered partial line, terminated with a newline.
func (w *prefixWriter) Flush() error {
	remaining := w.buf.String()
	if remaining == "" {
		return nil
	}
	w.buf.Reset()
	return w.emit(remaining + "\n")
}

func (w *prefixWriter) emit(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.target, "%s %s", w.prefix, line)
	return err
}
