// Package layout parses layout files into per-layer key grids.
//
// A layout file is a sequence of "LAYOUT <index> <tag>" headers, each followed
// by up to Rows lines of tab-separated key names. Names resolve through a
// keycode.Table or the inline CUSTOM_<value>_<type> form.
package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/uniquekeyboard/keyboardlayout/internal/keycode"
)

const customPrefix = "CUSTOM_"

var (
	ErrInvalidHeader    = errors.New("invalid layer format")
	ErrDuplicateLayer   = errors.New("layer already defined")
	ErrTooManyRows      = errors.New("too many rows")
	ErrTooManyColumns   = errors.New("too many columns")
	ErrInvalidCustomKey = errors.New("invalid CUSTOM key format")
)

// ParseError reports a fatal problem in the layout file.
type ParseError struct {
	Line   int
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options controls how a layout file is read.
type Options struct {
	Rows    int
	Columns int
	// Filter, when set, keeps only sections whose tag equals it.
	Filter string
	// Reverse mirrors columns for boards mounted upside down.
	Reverse bool
}

// Validate checks the grid dimensions.
func (o Options) Validate() error {
	if o.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", o.Rows)
	}
	if o.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", o.Columns)
	}
	return nil
}

// Layer holds the key assignments of one layer.
type Layer struct {
	rows, columns int
	keys          [][]*keycode.Key
}

// NewLayer returns an empty rows x columns layer.
func NewLayer(rows, columns int) *Layer {
	keys := make([][]*keycode.Key, rows)
	for r := range keys {
		keys[r] = make([]*keycode.Key, columns)
	}
	return &Layer{rows: rows, columns: columns, keys: keys}
}

func (l *Layer) Rows() int    { return l.rows }
func (l *Layer) Columns() int { return l.columns }

// Set assigns k to the cell at (row, col).
func (l *Layer) Set(row, col int, k keycode.Key) {
	l.keys[row][col] = &k
}

// Lookup returns the key assigned at (row, col) and whether one was set.
func (l *Layer) Lookup(row, col int) (keycode.Key, bool) {
	k := l.keys[row][col]
	if k == nil {
		return keycode.Key{}, false
	}
	return *k, true
}

// At returns the key at (row, col), or the zero Key for unassigned cells.
func (l *Layer) At(row, col int) keycode.Key {
	k, _ := l.Lookup(row, col)
	return k
}

// Result is the outcome of parsing a layout file.
type Result struct {
	Layers map[int]*Layer
	// Unknown lists names that matched neither the table nor the custom syntax, sorted.
	Unknown []string
}

// Indexes returns the layer indexes in ascending order.
func (r *Result) Indexes() []int {
	idx := make([]int, 0, len(r.Layers))
	for i := range r.Layers {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Parse reads a layout file made of "LAYOUT <index> <tag>" headers each
// followed by tab-separated rows of key names.
func Parse(r io.Reader, opts Options, table keycode.Table) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &parser{
		opts:    opts,
		table:   table,
		layers:  make(map[int]*Layer),
		unknown: make(map[string]struct{}),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), keycode.MaxLineSize)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}
		if err := p.parseLine(lineNum, line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}

	res := &Result{Layers: p.layers, Unknown: make([]string, 0, len(p.unknown))}
	for name := range p.unknown {
		res.Unknown = append(res.Unknown, name)
	}
	sort.Strings(res.Unknown)

	slog.Debug("parsed layout", "layers", len(res.Layers), "unknown", len(res.Unknown))
	return res, nil
}

type parser struct {
	opts    Options
	table   keycode.Table
	layers  map[int]*Layer
	unknown map[string]struct{}

	cur *Layer
	row int
}

func (p *parser) parseLine(lineNum int, line string) error {
	if strings.HasPrefix(strings.ToUpper(line), "LAYOUT ") {
		return p.parseHeader(lineNum, line)
	}

	// Rows outside an accepted section.
	if p.cur == nil {
		return nil
	}

	if p.row >= p.opts.Rows {
		return &ParseError{Line: lineNum, Err: ErrTooManyRows, Detail: strconv.Itoa(p.row)}
	}

	for col, name := range strings.Split(line, "\t") {
		if name == "" {
			continue
		}

		key, ok, err := p.resolve(name)
		if err != nil {
			return &ParseError{Line: lineNum, Err: ErrInvalidCustomKey, Detail: fmt.Sprintf("%s: %v", name, err)}
		}
		if !ok {
			p.unknown[name] = struct{}{}
			continue
		}

		if col >= p.opts.Columns {
			return &ParseError{Line: lineNum, Err: ErrTooManyColumns, Detail: fmt.Sprintf("%s at column %d", name, col)}
		}
		if p.opts.Reverse {
			col = p.opts.Columns - 1 - col
		}
		p.cur.Set(p.row, col, key)
	}

	p.row++
	return nil
}

func (p *parser) parseHeader(lineNum int, line string) error {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return &ParseError{Line: lineNum, Err: ErrInvalidHeader, Detail: line}
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return &ParseError{Line: lineNum, Err: ErrInvalidHeader, Detail: line}
	}
	tag := parts[2]

	if p.opts.Filter != "" && tag != p.opts.Filter {
		slog.Debug("skipping layer", "index", index, "tag", tag, "filter", p.opts.Filter)
		p.cur = nil
		return nil
	}

	if _, ok := p.layers[index]; ok {
		return &ParseError{Line: lineNum, Err: ErrDuplicateLayer, Detail: strconv.Itoa(index)}
	}

	p.cur = NewLayer(p.opts.Rows, p.opts.Columns)
	p.layers[index] = p.cur
	p.row = 0
	return nil
}

// resolve looks name up in the table, then tries the CUSTOM_<value>_<type>
// syntax. ok is false for names that are neither.
func (p *parser) resolve(name string) (keycode.Key, bool, error) {
	if key, ok := p.table[name]; ok {
		return key, true, nil
	}
	if !strings.HasPrefix(name, customPrefix) {
		return keycode.Key{}, false, nil
	}
	key, err := ParseCustom(name)
	if err != nil {
		return keycode.Key{}, false, err
	}
	return key, true, nil
}

// ParseCustom parses an inline key of the form CUSTOM_<value>_<type>.
func ParseCustom(name string) (keycode.Key, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 3 || parts[0]+"_" != customPrefix {
		return keycode.Key{}, errors.New("expected CUSTOM_<value>_<type>")
	}

	value, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return keycode.Key{}, fmt.Errorf("key value %q is not an integer", parts[1])
	}
	kt, err := keycode.ParseKeyType(parts[2])
	if err != nil {
		return keycode.Key{}, err
	}
	return keycode.Key{Value: value, Type: kt}, nil
}
