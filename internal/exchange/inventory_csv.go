package exchange

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pos-service/internal/catalog"
	"pos-service/internal/model"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Inventory column names, in export order
const (
	headerName      = "nom"
	headerCategory  = "catégorie"
	headerPrice     = "prix"
	headerSize      = "taille"
	headerStock     = "stock"
	headerThreshold = "seuil de stock faible"
)

// InventoryHeaders is the required header row of an inventory file
var InventoryHeaders = []string{headerName, headerCategory, headerPrice, headerSize, headerStock, headerThreshold}

// WriteInventoryCSV writes one row per product variant
func WriteInventoryCSV(w io.Writer, products []model.Product) error {
	rw := newRowWriter(w)
	rw.header(InventoryHeaders...)
	for _, p := range products {
		for _, v := range p.Variants {
			rw.row(
				plain(p.Name),
				plain(p.Category),
				plain(FormatAmount(p.Price)),
				plain(v.Size),
				plain(strconv.Itoa(v.Stock)),
				plain(strconv.Itoa(v.LowStockThreshold)),
			)
		}
	}
	return rw.flush()
}

// ReadInventoryCSV parses an inventory file into import rows.
//
// Files starting with a UTF-8 byte order mark are read as UTF-8, anything
// else as Windows-1252. Headers are matched trimmed and case-insensitively in
// any order. The first invalid row aborts the whole read, so either every row
// is returned or none is.
func ReadInventoryCSV(data []byte) ([]catalog.ImportRow, error) {
	r := csv.NewReader(decodeLegacy(data))
	r.Comma = Separator
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	var missing []string
	for _, h := range InventoryHeaders {
		if _, ok := columns[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	var rows []catalog.ImportRow
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := r.FieldPos(0)
		if blank(record) {
			continue
		}

		row, rowErr := parseInventoryRecord(record, columns)
		if rowErr != nil {
			rowErr.Line = line
			return nil, rowErr
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}
	return rows, nil
}

func decodeLegacy(data []byte) io.Reader {
	if rest, ok := bytes.CutPrefix(data, []byte(bom)); ok {
		return bytes.NewReader(rest)
	}
	return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder())
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseInventoryRecord(record []string, columns map[string]int) (catalog.ImportRow, *RowError) {
	value := func(header string) string {
		i := columns[header]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := catalog.ImportRow{
		Name:     value(headerName),
		Category: value(headerCategory),
		Size:     value(headerSize),
	}
	if row.Name == "" {
		return row, &RowError{Field: headerName, Err: ErrMissingValue}
	}
	if row.Category == "" {
		return row, &RowError{Field: headerCategory, Err: ErrMissingValue}
	}
	if row.Size == "" {
		row.Size = model.DefaultSize
	}

	if raw := value(headerPrice); raw != "" {
		price, err := ParseAmount(raw)
		if err != nil {
			return row, &RowError{Field: headerPrice, Err: fmt.Errorf("%w: %q", ErrInvalidNumber, raw)}
		}
		if price.IsNegative() {
			return row, &RowError{Field: headerPrice, Err: ErrNegativeNumber}
		}
		row.Price = price
	}

	var rowErr *RowError
	if row.Stock, rowErr = parseCount(value(headerStock), headerStock); rowErr != nil {
		return row, rowErr
	}
	if row.LowStockThreshold, rowErr = parseCount(value(headerThreshold), headerThreshold); rowErr != nil {
		return row, rowErr
	}
	return row, nil
}

func parseCount(raw, field string) (int, *RowError) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &RowError{Field: field, Err: fmt.Errorf("%w: %q", ErrInvalidNumber, raw)}
	}
	if n < 0 {
		return 0, &RowError{Field: field, Err: ErrNegativeNumber}
	}
	return n, nil
}
