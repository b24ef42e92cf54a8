// Package jobs reads the job postings table.
package jobs

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column names.
const (
	ColumnCompany        = "Company"
	ColumnRole           = "Role"
	ColumnJobDescription = "Job_Description"
)

var (
	// ErrFileNotFound is returned when the postings file does not exist.
	ErrFileNotFound = errors.New("jobs file not found")
	// ErrMissingColumn is returned when the header lacks Job_Description.
	ErrMissingColumn = errors.New("missing required column")
)

// Row is one job posting. Index is the 1-based data row number.
type Row struct {
	Index          int
	Company        string
	Role           string
	JobDescription string
}

// Read opens and parses a postings file.
func Read(path string) (rows []Row, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrapf(ErrFileNotFound, "%s", path)
			return rows, err
		}
		err = errors.Wrapf(err, "failed to open jobs file: %s", path)
		return rows, err
	}
	defer f.Close()

	rows, err = Parse(f)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse jobs file: %s", path)
		return rows, err
	}

	return rows, err
}

// Parse reads UTF-8 CSV (a leading byte-order mark is tolerated) with a header
// row. Company and Role are optional columns; Job_Description is required.
// Cell values are trimmed.
func Parse(r io.Reader) (rows []Row, err error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	var header []string
	header, err = reader.Read()
	if err == io.EOF {
		err = errors.Wrapf(ErrMissingColumn, "%s (file is empty)", ColumnJobDescription)
		return rows, err
	}
	if err != nil {
		err = errors.Wrap(err, "failed to read header")
		return rows, err
	}

	columns := make(map[string]int, len(header))
	found := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		found = append(found, name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	if _, ok := columns[ColumnJobDescription]; !ok {
		err = errors.Wrapf(ErrMissingColumn, "%s (found columns: %s)", ColumnJobDescription, strings.Join(found, ", "))
		return rows, err
	}

	index := 0
	for {
		var record []string
		record, err = reader.Read()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			err = errors.Wrapf(err, "failed to read row %d", index+1)
			return rows, err
		}

		index++
		rows = append(rows, Row{
			Index:          index,
			Company:        cell(record, columns, ColumnCompany),
			Role:           cell(record, columns, ColumnRole),
			JobDescription: cell(record, columns, ColumnJobDescription),
		})
	}

	return rows, err
}

// cell returns the trimmed value of a named column, or "" when the column or cell is absent.
func cell(record []string, columns map[string]int, name string) (value string) {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return value
	}
	value = strings.TrimSpace(record[i])
	return value
}
