package importer

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Row is one data row of the sheet keyed by header text. Blank cells are absent.
type Row struct {
	// Number is the spreadsheet row the data came from, counting the header as row 1.
	Number int
	Cells  map[string]string
}

func (r Row) Get(col string) string { return r.Cells[col] }

// Has reports a non-blank value in col.
func (r Row) Has(col string) bool {
	return strings.TrimSpace(r.Cells[col]) != ""
}

// ReadSheet parses the first worksheet of an xlsx workbook. The first row holds the
// headers; fully blank rows are skipped.
func ReadSheet(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	return rowsFromGrid(grid), nil
}

func rowsFromGrid(grid [][]string) []Row {
	if len(grid) == 0 {
		return nil
	}
	headers := grid[0]

	var rows []Row
	for _, line := range grid[1:] {
		cells := map[string]string{}
		for i, v := range line {
			if i >= len(headers) || headers[i] == "" || v == "" {
				continue
			}
			cells[headers[i]] = v
		}
		if len(cells) == 0 {
			continue
		}
		// numbered by position among data rows, header is row 1
		rows = append(rows, Row{Number: len(rows) + 2, Cells: cells})
	}
	return rows
}
