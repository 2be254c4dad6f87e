// Package emit formats parsed layers as serial "set key" commands.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/uniquekeyboard/keyboardlayout/internal/keycode"
	"github.com/uniquekeyboard/keyboardlayout/internal/layout"
)

// Token formats a single set-key command:
// <command>(<col>(<row>(<layer>(<value>(<type>
func Token(command string, col, row, layer int, k keycode.Key) string {
	return fmt.Sprintf("%s(%d(%d(%d(%d(%d", command, col, row, layer, k.Value, int(k.Type))
}

// Commands returns one token per cell of l in row-major order. Unassigned
// cells are sent as Key(0, NORMAL).
func Commands(command string, index int, l *layout.Layer) []string {
	out := make([]string, 0, l.Rows()*l.Columns())
	for r := 0; r < l.Rows(); r++ {
		for c := 0; c < l.Columns(); c++ {
			out = append(out, Token(command, c, r, index, l.At(r, c)))
		}
	}
	return out
}

// Write prints one line per layer in ascending index order, each token
// followed by a space, then an UNKNOWN line per unresolved key name.
func Write(w io.Writer, command string, res *layout.Result) error {
	bw := bufio.NewWriter(w)
	for _, idx := range res.Indexes() {
		for _, tok := range Commands(command, idx, res.Layers[idx]) {
			bw.WriteString(tok)
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	for _, name := range res.Unknown {
		fmt.Fprintf(bw, "UNKNOWN %s\n", quote(name))
	}
	return bw.Flush()
}

// WriteDuplicates prints one KEY2CODE line per shared key assignment.
func WriteDuplicates(w io.Writer, dups []keycode.Duplicate) error {
	bw := bufio.NewWriter(w)
	for _, d := range dups {
		names := make([]string, len(d.Names))
		for i, n := range d.Names {
			names[i] = quote(n)
		}
		fmt.Fprintf(bw, "KEY2CODE (%d, %d) [%s]\n", d.Key.Value, int(d.Key.Type), strings.Join(names, ", "))
	}
	return bw.Flush()
}

// quote renders s as a single-quoted literal, switching to double quotes
// when s contains a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\' || r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			b.WriteString(strings.Trim(strconv.QuoteRune(r), "'"))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
