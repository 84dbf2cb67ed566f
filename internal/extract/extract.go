package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedExtension = errors.New("unsupported file extension")

// Emails pulls candidate addresses out of an uploaded file. The only
// filter applied is substring presence of "@": no dedup, no
// normalization, order preserved.
func Emails(data []byte, ext string) ([]string, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv", "txt":
		return fromLines(data), nil
	case "xls", "xlsx":
		return fromSpreadsheet(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

func fromLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")

	emails := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "@") {
			emails = append(emails, line)
		}
	}

	return emails
}

// fromSpreadsheet reads the first sheet only and flattens its cells
// row by row.
func fromSpreadsheet(data []byte) ([]string, error) {
	const op = "extract.fromSpreadsheet"

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var emails []string
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(cell, "@") {
				emails = append(emails, cell)
			}
		}
	}

	return emails, nil
}
