package docfill

// SheetInfo summarizes one worksheet for the startup inventory listing.
type SheetInfo struct {
	Name   string
	MaxRow int
	MaxCol int
}

// Describe returns an inventory of every sheet in the workbook, in workbook
// order.
func (w *Workbook) Describe() ([]SheetInfo, error) {
	var infos []SheetInfo
	for _, name := range w.SheetNames() {
		rows, err := w.file.GetRows(name)
		if err != nil {
			return nil, err
		}
		info := SheetInfo{Name: name, MaxRow: len(rows)}
		for _, r := range rows {
			if len(r) > info.MaxCol {
				info.MaxCol = len(r)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
