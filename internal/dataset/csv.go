package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/csvscope/internal/utils"
)

// Load reads a CSV/TSV or XLSX file into a Dataset, choosing the parser by
// file extension.
func Load(path string, opt Options) (*Dataset, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") {
		return LoadXLSX(path, opt)
	}
	return LoadCSV(path, opt)
}

// LoadCSV reads a delimited text file into a Dataset. The first record is the
// header. Fails with *InputError when the file is absent, empty, or not
// parsable as delimited text.
func LoadCSV(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Reason: "cannot open", Err: err}
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &InputError{Path: path, Reason: "file is empty"}
		}
		return nil, &InputError{Path: path, Reason: "cannot parse header", Err: err}
	}

	var records [][]string
	maxRows := opt.MaxRows
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &InputError{Path: path, Reason: fmt.Sprintf("cannot parse row %d", len(records)+2), Err: err}
		}
		if maxRows > 0 && len(records) >= maxRows {
			continue
		}
		row := make([]string, len(rec))
		copy(row, rec)
		records = append(records, row)
	}
	if len(records) == 0 {
		return nil, &InputError{Path: path, Reason: "no data rows"}
	}
	return build(utils.Stem(path), header, records, opt)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
