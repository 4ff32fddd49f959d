package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

const (
	// sampleQueryLimit bounds the query used to sample existing records.
	sampleQueryLimit = 10
	// sampleKeep is how many extracted sample records the schema keeps.
	sampleKeep = 3
)

// SchemaFetcher builds a DatabaseSchema snapshot from the live Notion
// database: property names, types, option lists in declared order, and
// a small sample of existing records.
type SchemaFetcher struct {
	client     *Client
	databaseID string
}

// NewSchemaFetcher creates a SchemaFetcher bound to one database.
func NewSchemaFetcher(client *Client, databaseID string) *SchemaFetcher {
	return &SchemaFetcher{client: client, databaseID: databaseID}
}

// Fetch retrieves the database's schema and sample data. Any store
// failure, during retrieval or the sample query, fails the whole
// fetch; ErrSchemaEmpty is returned when the database declares no
// properties.
func (f *SchemaFetcher) Fetch(ctx context.Context) (*domain.DatabaseSchema, error) {
	db, err := f.client.RetrieveDatabase(ctx, f.databaseID)
	if err != nil {
		return nil, fmt.Errorf("retrieving database schema: %w", err)
	}
	if len(db.Properties) == 0 {
		return nil, ErrSchemaEmpty
	}

	fields := make([]domain.FieldSchema, 0, len(db.Properties))
	for _, name := range db.PropertyOrder {
		prop, ok := db.Properties[name]
		if !ok {
			continue
		}
		fields = append(fields, buildField(name, prop))
	}

	schema := &domain.DatabaseSchema{
		Title:  databaseTitle(db),
		Fields: fields,
	}

	pages, err := f.client.QueryDatabase(ctx, f.databaseID, sampleQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("querying sample records: %w", err)
	}
	schema.TotalPages = len(pages)
	schema.SampleData = extractSamples(pages)
	return schema, nil
}

func databaseTitle(db *Database) string {
	if len(db.Title) > 0 && strings.TrimSpace(db.Title[0].PlainText) != "" {
		return db.Title[0].PlainText
	}
	return "Notion Database"
}

func buildField(name string, prop Property) domain.FieldSchema {
	field := domain.FieldSchema{
		Name: name,
		Type: domain.FieldType(prop.Type),
	}

	switch {
	case prop.Type == "select" && prop.Select != nil:
		for _, opt := range prop.Select.Options {
			field.Options = append(field.Options, opt.Name)
		}
	case prop.Type == "multi_select" && prop.MultiSelect != nil:
		for _, opt := range prop.MultiSelect.Options {
			field.Options = append(field.Options, opt.Name)
		}
	}

	field.Description = fieldDescription(field)
	return field
}

// fieldDescription returns the fixed per-type template the prompt
// generators embed alongside each field.
func fieldDescription(f domain.FieldSchema) string {
	optionList := func() string {
		if len(f.Options) == 0 {
			return "none"
		}
		return strings.Join(f.Options, ", ")
	}

	switch f.Type {
	case domain.FieldTitle:
		return "Main title/name of the task"
	case domain.FieldSelect:
		return "Single selection field with options: " + optionList()
	case domain.FieldMultiSelect:
		return "Multiple selection field with options: " + optionList()
	case domain.FieldDate:
		return "Date field (YYYY-MM-DD format)"
	case domain.FieldNumber:
		return "Numeric field for rankings, scores, etc."
	case domain.FieldRichText:
		return "Text field for notes, descriptions, etc."
	default:
		return string(f.Type) + " field"
	}
}

// extractSamples converts queried pages into flat sample records,
// keeping only property values whose encoded form is recognized.
// Records yielding no values are dropped; the first sampleKeep
// non-empty records are kept.
func extractSamples(pages []Page) []domain.SampleRecord {
	var samples []domain.SampleRecord
	for _, page := range pages {
		sample := domain.SampleRecord{}
		for name, value := range page.Properties {
			if v, ok := extractValue(value); ok {
				sample[name] = v
			}
		}
		if len(sample) == 0 {
			continue
		}
		samples = append(samples, sample)
		if len(samples) == sampleKeep {
			break
		}
	}
	return samples
}

func extractValue(pv PropertyValue) (interface{}, bool) {
	switch pv.Type {
	case "title":
		if len(pv.Title) > 0 {
			return pv.Title[0].PlainText, true
		}
	case "select":
		if pv.Select != nil {
			return pv.Select.Name, true
		}
	case "multi_select":
		if pv.MultiSelect != nil {
			names := make([]string, 0, len(pv.MultiSelect))
			for _, opt := range pv.MultiSelect {
				names = append(names, opt.Name)
			}
			return names, true
		}
	case "date":
		if pv.Date != nil {
			return pv.Date.Start, true
		}
	case "number":
		// Zero counts as empty, same as an unset number.
		if pv.Number != nil && *pv.Number != 0 {
			return *pv.Number, true
		}
	case "rich_text":
		if len(pv.RichText) > 0 {
			return pv.RichText[0].PlainText, true
		}
	}
	return nil, false
}
