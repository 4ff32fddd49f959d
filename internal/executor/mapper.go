package executor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

// WarnFunc receives non-fatal mapping diagnostics, such as a field
// being skipped because the schema has no match for it.
type WarnFunc func(format string, args ...interface{})

// fieldAliases maps common model-emitted field keys (lowercase) to
// canonical schema field names. The rank alias is added dynamically
// when the schema carries a rank-like field.
var fieldAliases = map[string]string{
	"name":     "Name",
	"title":    "Name",
	"status":   "Status",
	"priority": "Priority",
	"due":      "Due",
	"tags":     "Tags",
	"type":     "Type",
	"notes":    "Notes",
}

// Mapper encodes semantic operation field values into Notion API
// property payloads according to one database schema.
type Mapper struct {
	schema *domain.DatabaseSchema
	warnf  WarnFunc
}

// NewMapper creates a Mapper for the given schema. A nil warnf
// discards diagnostics.
func NewMapper(schema *domain.DatabaseSchema, warnf WarnFunc) *Mapper {
	if warnf == nil {
		warnf = func(string, ...interface{}) {}
	}
	return &Mapper{schema: schema, warnf: warnf}
}

// MapProperties resolves each field value against the schema and
// encodes it per the target property type. Nil values are dropped,
// unknown fields are skipped with a warning, and unsupported property
// types are skipped with a warning.
func (m *Mapper) MapProperties(fields domain.FieldValues) map[string]interface{} {
	properties := map[string]interface{}{}

	for key, value := range fields {
		if value == nil {
			continue
		}

		field, ok := m.resolveField(key)
		if !ok {
			m.warnf("field %q not found in schema, skipping", key)
			continue
		}

		payload, ok := m.encodeValue(field, value)
		if !ok {
			continue
		}
		properties[field.Name] = payload
	}

	return properties
}

// resolveField translates an operation field key to its schema field,
// applying the alias table first and then matching case-insensitively.
func (m *Mapper) resolveField(key string) (domain.FieldSchema, bool) {
	name := key
	if alias, ok := fieldAliases[strings.ToLower(key)]; ok {
		name = alias
	} else if rankField, ok := RankField(m.schema); ok && strings.EqualFold(key, "rank") {
		name = rankField.Name
	}

	for _, f := range m.schema.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	for _, f := range m.schema.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return domain.FieldSchema{}, false
}

func (m *Mapper) encodeValue(field domain.FieldSchema, value interface{}) (interface{}, bool) {
	switch field.Type {
	case domain.FieldTitle:
		return map[string]interface{}{
			"title": textRuns(stringify(value)),
		}, true

	case domain.FieldRichText:
		return map[string]interface{}{
			"rich_text": textRuns(stringify(value)),
		}, true

	case domain.FieldSelect:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		option, ok := m.resolveOption(field, s)
		if !ok {
			return nil, false
		}
		return map[string]interface{}{
			"select": map[string]interface{}{"name": option},
		}, true

	case domain.FieldMultiSelect:
		values := stringSlice(value)
		if values == nil {
			return nil, false
		}
		var selected []map[string]interface{}
		for _, v := range values {
			if option, ok := matchOption(field.Options, v); ok {
				selected = append(selected, map[string]interface{}{"name": option})
			}
		}
		if len(selected) == 0 {
			return nil, false
		}
		return map[string]interface{}{"multi_select": selected}, true

	case domain.FieldDate:
		s := stringify(value)
		if s == "" {
			return nil, false
		}
		return map[string]interface{}{
			"date": map[string]interface{}{"start": s},
		}, true

	case domain.FieldNumber:
		n, ok := numberValue(value)
		if !ok {
			return nil, false
		}
		return map[string]interface{}{"number": n}, true
	}

	m.warnf("unsupported field type %q for field %q", field.Type, field.Name)
	return nil, false
}

// resolveOption matches a select value against the field's options:
// exact, then case-insensitive, then the first option as a last
// resort so a near-miss value never drops the whole field.
func (m *Mapper) resolveOption(field domain.FieldSchema, value string) (string, bool) {
	if option, ok := matchOption(field.Options, value); ok {
		return option, true
	}
	if len(field.Options) > 0 {
		return field.Options[0], true
	}
	return "", false
}

func matchOption(options []string, value string) (string, bool) {
	for _, opt := range options {
		if opt == value {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return opt, true
		}
	}
	return "", false
}

func textRuns(content string) []map[string]interface{} {
	return []map[string]interface{}{
		{"text": map[string]interface{}{"content": content}},
	}
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return fmt.Sprintf("%v", v)
}
