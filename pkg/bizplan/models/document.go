package models

// CompanyInfo identifies the company a business plan is written for.
type CompanyInfo struct {
	Name    string `json:"name" yaml:"name"`
	CEO     string `json:"ceo,omitempty" yaml:"ceo,omitempty"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Website string `json:"website,omitempty" yaml:"website,omitempty"`
}

// SectionImage is a picture placed inside a section.
type SectionImage struct {
	// Path is a file on disk; Data takes precedence when set.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Data holds encoded image bytes.
	Data []byte `json:"-" yaml:"-"`
	// Caption is rendered below the picture.
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// Section is one titled part of a business plan. Sections nest.
type Section struct {
	Title       string         `json:"title" yaml:"title"`
	Content     string         `json:"content,omitempty" yaml:"content,omitempty"`
	Table       *Table         `json:"table,omitempty" yaml:"-"`
	Images      []SectionImage `json:"images,omitempty" yaml:"images,omitempty"`
	Subsections []Section      `json:"subsections,omitempty" yaml:"subsections,omitempty"`
	PageBreak   bool           `json:"page_break,omitempty" yaml:"page_break,omitempty"`
}

// DocumentStyle overrides document-wide typography and page geometry.
// Zero fields fall back to the generator defaults.
type DocumentStyle struct {
	FontFamily string  `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize   float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`     // points
	MarginsIn  float64 `json:"margins_in,omitempty" yaml:"margins_in,omitempty"`   // inches, all sides
	PageWidth  float64 `json:"page_width,omitempty" yaml:"page_width,omitempty"`   // millimetres
	PageHeight float64 `json:"page_height,omitempty" yaml:"page_height,omitempty"` // millimetres
}

// TableStyle overrides how tables are drawn.
type TableStyle struct {
	BorderColor            string  `json:"border_color,omitempty" yaml:"border_color,omitempty"`
	BorderSize             float64 `json:"border_size,omitempty" yaml:"border_size,omitempty"` // points
	HeaderBackground       string  `json:"header_background,omitempty" yaml:"header_background,omitempty"`
	AlternateRowBackground string  `json:"alternate_row_background,omitempty" yaml:"alternate_row_background,omitempty"`
}

// Template is a complete business-plan document description.
type Template struct {
	ID            string         `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string         `json:"title" yaml:"title"`
	Subtitle      string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	CompanyInfo   CompanyInfo    `json:"company_info" yaml:"company_info"`
	Sections      []Section      `json:"sections" yaml:"sections"`
	DocumentStyle *DocumentStyle `json:"document_style,omitempty" yaml:"document_style,omitempty"`
	TableStyle    *TableStyle    `json:"table_style,omitempty" yaml:"table_style,omitempty"`
}

// Picture is an image embedded in a worksheet drawing.
type Picture struct {
	// Name is derived from the anchor cell and format (e.g. "B2_1.png").
	Name string `json:"name"`
	// Row and Col locate the anchor cell (zero-based).
	Row int `json:"row"`
	Col int `json:"col"`
	// Data holds the encoded image bytes.
	Data []byte `json:"-"`
}
