// Package executor applies approved operation plans to the Notion
// database, one operation at a time, isolating per-operation failures.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/notionplan/notionplan/internal/notion"
)

// pageStore is the subset of the Notion client the executor writes
// through.
type pageStore interface {
	CreatePage(ctx context.Context, databaseID string, properties map[string]interface{}) (string, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]interface{}) (string, error)
}

// Executor applies operations to one database. Operations run
// sequentially in plan order; a failed operation is recorded and the
// rest continue.
type Executor struct {
	store      pageStore
	databaseID string
	warnf      WarnFunc
}

// New creates an Executor writing through the given client.
func New(client *notion.Client, databaseID string, warnf WarnFunc) *Executor {
	return &Executor{store: client, databaseID: databaseID, warnf: warnf}
}

// Execute applies each operation in order and returns one result per
// operation. It never returns early: errors are captured into the
// corresponding result.
func (e *Executor) Execute(ctx context.Context, schema *domain.DatabaseSchema, operations []domain.Operation) []domain.ExecutionResult {
	mapper := NewMapper(schema, e.warnf)

	results := make([]domain.ExecutionResult, 0, len(operations))
	for _, op := range operations {
		results = append(results, e.apply(ctx, mapper, schema, op))
	}
	return results
}

func (e *Executor) apply(ctx context.Context, mapper *Mapper, schema *domain.DatabaseSchema, op domain.Operation) domain.ExecutionResult {
	switch op.Kind {
	case domain.OpCreate:
		return e.createPage(ctx, mapper, schema, op)
	case domain.OpUpdate:
		return e.updatePage(ctx, mapper, schema, op)
	case domain.OpStatusChange:
		return e.changeStatus(ctx, mapper, op)
	}
	return failure(op, fmt.Sprintf("unsupported operation kind: %s", op.Kind))
}

func (e *Executor) createPage(ctx context.Context, mapper *Mapper, schema *domain.DatabaseSchema, op domain.Operation) domain.ExecutionResult {
	properties := mapper.MapProperties(withComputedRank(schema, op.Fields))

	pageID, err := e.store.CreatePage(ctx, e.databaseID, properties)
	if err != nil {
		return failure(op, err.Error())
	}
	return success(op, pageID)
}

func (e *Executor) updatePage(ctx context.Context, mapper *Mapper, schema *domain.DatabaseSchema, op domain.Operation) domain.ExecutionResult {
	if op.TaskID == "" {
		return failure(op, "Task ID is required for update operations")
	}

	properties := mapper.MapProperties(withComputedRank(schema, op.Fields))

	pageID, err := e.store.UpdatePage(ctx, op.TaskID, properties)
	if err != nil {
		return failure(op, err.Error())
	}
	return success(op, pageID)
}

func (e *Executor) changeStatus(ctx context.Context, mapper *Mapper, op domain.Operation) domain.ExecutionResult {
	if op.TaskID == "" {
		return failure(op, "Task ID is required for status change operations")
	}

	properties := mapper.MapProperties(domain.FieldValues{"status": op.Fields["status"]})

	pageID, err := e.store.UpdatePage(ctx, op.TaskID, properties)
	if err != nil {
		return failure(op, err.Error())
	}
	return success(op, pageID)
}

// withComputedRank merges a computed rank into the field set, but only
// when the schema actually has a rank-like field to receive it.
func withComputedRank(schema *domain.DatabaseSchema, fields domain.FieldValues) domain.FieldValues {
	if !HasRankField(schema) {
		return fields
	}

	merged := make(domain.FieldValues, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["rank"] = float64(CalculateRank(fields, time.Now()))
	return merged
}

func success(op domain.Operation, pageID string) domain.ExecutionResult {
	return domain.ExecutionResult{Success: true, Operation: op, NotionPageID: pageID}
}

func failure(op domain.Operation, msg string) domain.ExecutionResult {
	return domain.ExecutionResult{Success: false, Operation: op, Error: msg}
}
