package exchange

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Separator is the CSV field delimiter
	Separator = ';'

	bom = "\uFEFF"

	fileDateLayout = "2006-01-02"
	// DisplayDateLayout renders timestamps the way the fr-FR locale does
	DisplayDateLayout = "02/01/2006 15:04:05"
)

// FileName builds <prefix>-<YYYY-MM-DD>.<ext> from the day of t
func FileName(prefix, ext string, t time.Time) string {
	return prefix + "-" + t.Format(fileDateLayout) + "." + ext
}

// FormatAmount renders an amount with a comma decimal separator and no
// trailing zeros
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

// ParseAmount accepts either a comma or a dot as decimal separator
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

type cell struct {
	value  string
	quoted bool
}

func plain(v string) cell  { return cell{value: v} }
func quoted(v string) cell { return cell{value: v, quoted: true} }

// rowWriter writes BOM-prefixed, semicolon-separated rows terminated by \n.
// Cells are quoted when forced or when they contain a separator, quote or
// line break.
type rowWriter struct {
	w   *bufio.Writer
	err error
}

func newRowWriter(w io.Writer) *rowWriter {
	rw := &rowWriter{w: bufio.NewWriter(w)}
	_, rw.err = rw.w.WriteString(bom)
	return rw
}

func (rw *rowWriter) header(names ...string) {
	cells := make([]cell, len(names))
	for i, n := range names {
		cells[i] = plain(n)
	}
	rw.row(cells...)
}

func (rw *rowWriter) row(cells ...cell) {
	if rw.err != nil {
		return
	}
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(Separator)
		}
		if c.quoted || strings.ContainsAny(c.value, ";\"\r\n") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(c.value, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(c.value)
		}
	}
	b.WriteByte('\n')
	_, rw.err = rw.w.WriteString(b.String())
}

func (rw *rowWriter) flush() error {
	if rw.err != nil {
		return rw.err
	}
	return rw.w.Flush()
}
