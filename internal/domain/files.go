package domain

// FileMetadata carries type-specific extras produced by file
// processing. DataURL is set only for images.
type FileMetadata struct {
	Size        int64    `json:"size"`
	ProcessedAt string   `json:"processedAt"`
	Error       bool     `json:"error,omitempty"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	DataURL     string   `json:"dataUrl,omitempty"`
	RowCount    int      `json:"rowCount,omitempty"`
	ColumnCount int      `json:"columnCount,omitempty"`
	Headers     []string `json:"headers,omitempty"`
}

// ProcessedFile is a rendered attachment ready for inclusion in an LLM
// request. Content is the text the model sees; images additionally
// carry their encoded data in Metadata.DataURL.
type ProcessedFile struct {
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Content  string       `json:"content"`
	Metadata FileMetadata `json:"metadata"`
}

// IsImage reports whether the file carries inline image data for a
// vision-capable model.
func (f ProcessedFile) IsImage() bool {
	return f.Metadata.DataURL != ""
}
