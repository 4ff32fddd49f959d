package domain

// FieldType is the declared Notion property type of a database field.
type FieldType string

const (
	FieldTitle       FieldType = "title"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multi_select"
	FieldDate        FieldType = "date"
	FieldNumber      FieldType = "number"
	FieldRichText    FieldType = "rich_text"
)

// FieldSchema describes a single property of a Notion database.
// Options is populated only for select/multi_select fields, in the
// order Notion declares them. Name is the case-sensitive property name
// the Notion API expects.
type FieldSchema struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Options     []string  `json:"options,omitempty"`
	Description string    `json:"description,omitempty"`
}

// IsSelectLike reports whether the field carries an option list.
func (f FieldSchema) IsSelectLike() bool {
	return f.Type == FieldSelect || f.Type == FieldMultiSelect
}

// SampleRecord maps property names to extracted scalar or array values
// from an existing database page.
type SampleRecord map[string]interface{}

// DatabaseSchema is a point-in-time snapshot of a Notion database's
// structure plus a small sample of its records. It is re-fetched on
// demand and never mutated after construction.
type DatabaseSchema struct {
	Title      string         `json:"title"`
	Fields     []FieldSchema  `json:"fields"`
	TotalPages int            `json:"totalPages"`
	SampleData []SampleRecord `json:"sampleData,omitempty"`
}

// Field returns the schema field with the given exact name, or nil.
func (s *DatabaseSchema) Field(name string) *FieldSchema {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// FieldsOfType returns all fields with the given declared type,
// preserving declaration order.
func (s *DatabaseSchema) FieldsOfType(t FieldType) []FieldSchema {
	var out []FieldSchema
	for _, f := range s.Fields {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// TitleField returns the first title-typed field, or nil.
func (s *DatabaseSchema) TitleField() *FieldSchema {
	for i := range s.Fields {
		if s.Fields[i].Type == FieldTitle {
			return &s.Fields[i]
		}
	}
	return nil
}

// PromptCategory classifies a generated instruction block.
type PromptCategory string

const (
	CategoryDatabaseStructure PromptCategory = "database-structure"
	CategoryFieldGuidance     PromptCategory = "field-guidance"
	CategoryDataPatterns      PromptCategory = "data-patterns"
	CategoryValidationRules   PromptCategory = "validation-rules"
)

// GeneratedPrompt is one natural-language instruction block synthesized
// from a database schema. Blocks are pure functions of the schema and
// are regenerated on every plan request; their order is significant
// when concatenated into an LLM request.
type GeneratedPrompt struct {
	Name     string         `json:"name"`
	Content  string         `json:"content"`
	Category PromptCategory `json:"category"`
}

// SystemPrompt is a generated prompt block with identity and ordering,
// the form the plan request builder consumes.
type SystemPrompt struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
	Order   int    `json:"order"`
}
