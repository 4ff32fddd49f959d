package domain

// OperationKind identifies the kind of database write an operation
// performs.
type OperationKind string

const (
	OpCreate       OperationKind = "create"
	OpUpdate       OperationKind = "update"
	OpStatusChange OperationKind = "status_change"
)

// FieldValues holds an operation's semantic field values keyed by
// field name. Values are strings, numbers, string arrays, or nil; the
// names are resolved against the live schema only at mapping time.
type FieldValues map[string]interface{}

// Operation is a single proposed change to the Notion database,
// pending user approval. TaskID is required for update/status_change
// and must stay empty for create.
type Operation struct {
	ID         string        `json:"id"`
	Kind       OperationKind `json:"kind"`
	TaskID     string        `json:"taskId,omitempty"`
	Fields     FieldValues   `json:"fields"`
	Reason     string        `json:"reason"`
	Confidence int           `json:"confidence"`
	Warnings   []string      `json:"warnings"`
	Approved   bool          `json:"approved"`
	Edited     bool          `json:"edited"`
}

// MainFieldValue returns the operation's display title, trying common
// title field names before falling back to the first value present.
func (o Operation) MainFieldValue() string {
	for _, key := range []string{"name", "title", "Name", "Title"} {
		if v, ok := o.Fields[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, v := range o.Fields {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "Untitled"
}

// Plan is the parsed and normalized result of one plan-generation or
// plan-revision request: the operation list plus the model's overall
// reasoning and any plan-level warnings.
type Plan struct {
	Operations []Operation `json:"plan"`
	Reasoning  string      `json:"reasoning"`
	Warnings   []string    `json:"warnings"`
}

// Approved returns the subset of operations the user approved,
// preserving order.
func (p Plan) Approved() []Operation {
	var out []Operation
	for _, op := range p.Operations {
		if op.Approved {
			out = append(out, op)
		}
	}
	return out
}

// ExecutionResult reports the outcome of applying one operation.
// Exactly one result is produced per submitted operation, in order.
type ExecutionResult struct {
	Success      bool      `json:"success"`
	Operation    Operation `json:"operation"`
	NotionPageID string    `json:"notionPageId,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// ExecutionSummary aggregates a batch of execution results. Success is
// true only when no operation failed.
type ExecutionSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Summarize counts successes and failures across results.
func Summarize(results []ExecutionResult) ExecutionSummary {
	s := ExecutionSummary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}
