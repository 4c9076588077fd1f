package docfill

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is the tabular source the generator reads commands from. Rows and
// columns are addressed 1-based; cell values are already resolved to
// literals (formula results, not formula text).
type Sheet interface {
	Name() string
	MaxRow() int
	Cell(row, col int) string
}

// Workbook reads XLSX source data through excelize.
type Workbook struct {
	file *excelize.File
	path string
}

// OpenWorkbook opens an XLSX file.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the workbook's sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet loads the named sheet into memory.
func (w *Workbook) Sheet(name string) (Sheet, error) {
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q from %q: %w", name, w.path, err)
	}
	return &xlsxSheet{name: name, rows: rows}, nil
}

// xlsxSheet is an in-memory snapshot of one worksheet.
type xlsxSheet struct {
	name string
	rows [][]string
}

func (s *xlsxSheet) Name() string { return s.name }

func (s *xlsxSheet) MaxRow() int { return len(s.rows) }

// Cell returns the cell value at the 1-based (row, col) position. Addresses
// outside the used range yield "".
func (s *xlsxSheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}
