package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintWarning(t *testing.T) {
	prev := Output
	defer func() { Output = prev }()

	var buf bytes.Buffer
	Output = &buf
	PrintWarning("Invalid line", "keycodes.tsv:3")

	if !strings.Contains(buf.String(), "Invalid line") || !strings.Contains(buf.String(), "keycodes.tsv:3") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	DisableColor()
	PrintError("Error", "boom")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("color codes written after DisableColor: %q", buf.String())
	}
}

func TestPrintSuccess(t *testing.T) {
	prev := Output
	defer func() { Output = prev }()

	var buf bytes.Buffer
	Output = &buf
	PrintSuccess("Keycodes", "No duplicates among 3 names")

	if !strings.Contains(buf.String(), "Keycodes") || !strings.Contains(buf.String(), "No duplicates among 3 names") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
