package output

import (
	"strings"
	"sync"
)

// CaptureBuffer collects what commands write so tests can compare it. It is
// safe for concurrent writers.
type CaptureBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

// NewCaptureBuffer returns an empty buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Write implements io.Writer.
func (c *CaptureBuffer) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sb.Write(b)
}

// String returns everything written so far.
func (c *CaptureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sb.String()
}

// Lines returns the captured lines without the final newline.
func (c *CaptureBuffer) Lines() []string {
	captured := strings.TrimSuffix(c.String(), "\n")
	if captured == "" {
		return []string{}
	}
	return strings.Split(captured, "\n")
}

// Reset discards the captured output.
func (c *CaptureBuffer) Reset() {
	c.mu.Lock()
	c.sb.Reset()
	c.mu.Unlock()
}

// Contains reports whether the captured output contains text.
func (c *CaptureBuffer) Contains(text string) bool {
	return strings.Contains(c.String(), text)
}

// CaptureOutput returns what fn writes to a plain printer.
func CaptureOutput(fn func(*Printer)) string {
	buffer := NewCaptureBuffer()
	fn(NewPrinter(WithWriter(buffer), PlainText()))
	return buffer.String()
}
