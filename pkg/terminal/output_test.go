package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterPrint(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)

	w.Print("Hello %s", "World")
	if got := buf.String(); got != "Hello World" {
		t.Errorf("Print = %q, want 'Hello World'", got)
	}
}

func TestWriterPrintln(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)

	w.Println("Hello %s", "World")
	if got := buf.String(); got != "Hello World\n" {
		t.Errorf("Println = %q, want 'Hello World\\n'", got)
	}
}

func TestWriterError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)

	w.Error("something went wrong")
	got := buf.String()
	if !strings.Contains(got, "error:") {
		t.Errorf("Error output should contain 'error:', got %q", got)
	}
	if !strings.Contains(got, "something went wrong") {
		t.Errorf("Error output should contain message, got %q", got)
	}
}

func TestWriterWarn(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)

	w.Warn("be careful")
	got := buf.String()
	if !strings.Contains(got, "warning:") {
		t.Errorf("Warn output should contain 'warning:', got %q", got)
	}
}

func TestWriterDim(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)

	w.Dim("quiet note")
	if got := buf.String(); !strings.Contains(got, "quiet note") {
		t.Errorf("Dim output should contain message, got %q", got)
	}
}

func TestWriterDivider(t *testing.T) {
	var buf bytes.Buffer
	w := NewWithOutput(&buf)

	w.Divider()
	if got := buf.String(); !strings.Contains(got, "─") {
		t.Errorf("Divider should draw a rule, got %q", got)
	}
}
