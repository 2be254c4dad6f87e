// Package keycode loads the table mapping key names to firmware key values.
package keycode

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// KeyType is the firmware behaviour attached to a key value.
type KeyType int

const (
	Normal KeyType = iota
	Fn
	SpaceFn
	SwitchLayer
	Media
	ToggleFn
)

var keyTypeNames = [...]string{"NORMAL", "FN", "SPACEFN", "SWITCHLAYER", "MEDIA", "TOGGLEFN"}

func (t KeyType) String() string {
	if t.Valid() {
		return keyTypeNames[t]
	}
	return fmt.Sprintf("KeyType(%d)", int(t))
}

// Valid reports whether t is one of the types the firmware understands.
func (t KeyType) Valid() bool {
	return t >= Normal && t <= ToggleFn
}

// ParseKeyType parses the decimal form used in keycode and layout files.
func ParseKeyType(s string) (KeyType, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("key type %q is not an integer", s)
	}
	t := KeyType(n)
	if !t.Valid() {
		return 0, fmt.Errorf("key type %d out of range (allowed: 0-%d)", n, int(ToggleFn))
	}
	return t, nil
}

// MaxLineSize bounds a single line of a keycode or layout file.
const MaxLineSize = 16 << 20

// Key is one key assignment. The zero value is Key{0, Normal}, which is what
// the firmware receives for unassigned positions.
type Key struct {
	Value int
	Type  KeyType
}

func (k Key) String() string {
	return fmt.Sprintf("Key(%d, %d)", k.Value, int(k.Type))
}

// Table maps key names to their assignments.
type Table map[string]Key

// LineError describes a keycode line that was skipped.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Load reads "name\tvalue\ttype" lines. Malformed lines are skipped and
// returned alongside the table; only read failures are fatal.
func Load(r io.Reader) (Table, []LineError, error) {
	table := make(Table)
	var bad []LineError

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}

		name, key, reason := parseLine(line)
		if reason != "" {
			le := LineError{Line: lineNum, Text: line, Reason: reason}
			slog.Debug("skipping keycode line", "line", lineNum, "reason", reason)
			bad = append(bad, le)
			continue
		}
		table[name] = key
	}
	if err := sc.Err(); err != nil {
		return nil, bad, fmt.Errorf("failed to read keycodes: %w", err)
	}

	slog.Debug("loaded keycodes", "count", len(table), "skipped", len(bad))
	return table, bad, nil
}

func parseLine(line string) (string, Key, string) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return "", Key{}, fmt.Sprintf("expected 3 tab-separated fields, got %d", len(fields))
	}

	value, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return "", Key{}, fmt.Sprintf("key value %q is not an integer", fields[1])
	}
	kt, err := ParseKeyType(fields[2])
	if err != nil {
		return "", Key{}, err.Error()
	}
	return fields[0], Key{Value: value, Type: kt}, ""
}

// Duplicate is a key assignment claimed by more than one name.
type Duplicate struct {
	Key   Key
	Names []string
}

// Duplicates groups names by identical assignment and returns the groups
// holding two or more names, ordered by value then type.
func Duplicates(table Table) []Duplicate {
	byKey := make(map[Key][]string)
	for name, key := range table {
		byKey[key] = append(byKey[key], name)
	}

	var dups []Duplicate
	for key, names := range byKey {
		if len(names) < 2 {
			continue
		}
		sort.Strings(names)
		dups = append(dups, Duplicate{Key: key, Names: names})
	}

	sort.Slice(dups, func(i, j int) bool {
		if dups[i].Key.Value != dups[j].Key.Value {
			return dups[i].Key.Value < dups[j].Key.Value
		}
		return dups[i].Key.Type < dups[j].Key.Type
	})
	return dups
}
