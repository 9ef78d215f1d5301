package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile indicates the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")
	// ErrInvalidEncoding indicates content that is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding, expected UTF-8")
	// ErrMissingHeader indicates a CSV file without a header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// Row is one parsed CSV data row keyed by header name
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// CSVParser reads UTF-8 CSV files with a mandatory header row. A UTF-8 BOM
// is stripped when present.
type CSVParser struct {
	reader     *csv.Reader
	headers    []string
	currentRow int
}

// NewCSVParser creates a parser over the reader and consumes the header row
func NewCSVParser(r io.Reader) (*CSVParser, error) {
	buffered := bufio.NewReader(r)

	head, err := buffered.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buffered.Discard(3)
	}

	if content, err := buffered.Peek(4096); err == nil || err == io.EOF {
		if !utf8.Valid(content) && err == io.EOF {
			return nil, ErrInvalidEncoding
		}
	}

	parser := &CSVParser{reader: csv.NewReader(buffered)}
	parser.reader.TrimLeadingSpace = true
	parser.reader.LazyQuotes = true
	parser.reader.FieldsPerRecord = -1

	header, err := parser.reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	parser.headers = make([]string, len(header))
	for i, h := range header {
		parser.headers[i] = strings.TrimSpace(h)
	}
	parser.currentRow = 1

	return parser, nil
}

// Headers returns the parsed header names
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader checks if a header exists
func (p *CSVParser) HasHeader(name string) bool {
	for _, h := range p.headers {
		if h == name {
			return true
		}
	}
	return false
}

// ReadAllRows reads every remaining row, skipping fully empty ones
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	rows := make([]*Row, 0)

	for {
		record, err := p.reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		p.currentRow++
		if err != nil {
			return rows, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
		}

		row := &Row{
			LineNumber: p.currentRow,
			Data:       make(map[string]string, len(p.headers)),
		}
		for i, header := range p.headers {
			if i < len(record) {
				row.Data[header] = strings.TrimSpace(record[i])
			} else {
				row.Data[header] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
}
