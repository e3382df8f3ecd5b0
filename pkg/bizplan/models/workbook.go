package models

// SourceWorkbook is the loader-side view of a workbook.
type SourceWorkbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets are in workbook order.
	Sheets []SourceSheet `json:"sheets"`
}

// SheetNames returns the sheet names in workbook order.
func (w *SourceWorkbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the named sheet. An empty name selects the first sheet.
func (w *SourceWorkbook) Sheet(name string) (*SourceSheet, bool) {
	if name == "" {
		if len(w.Sheets) == 0 {
			return nil, false
		}
		return &w.Sheets[0], true
	}
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i], true
		}
	}
	return nil, false
}
