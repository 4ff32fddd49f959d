package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeCall struct {
	method     string
	pageID     string
	properties map[string]interface{}
}

type fakeStore struct {
	calls   []storeCall
	failOn  int // 1-based call index that fails; 0 = never
	nextID  int
	failErr error
}

func (s *fakeStore) CreatePage(_ context.Context, _ string, properties map[string]interface{}) (string, error) {
	return s.record("create", "", properties)
}

func (s *fakeStore) UpdatePage(_ context.Context, pageID string, properties map[string]interface{}) (string, error) {
	return s.record("update", pageID, properties)
}

func (s *fakeStore) record(method, pageID string, properties map[string]interface{}) (string, error) {
	s.calls = append(s.calls, storeCall{method: method, pageID: pageID, properties: properties})
	if s.failOn == len(s.calls) {
		err := s.failErr
		if err == nil {
			err = errors.New("notion returned status 500")
		}
		return "", err
	}
	s.nextID++
	return pageIDFor(s.nextID), nil
}

func pageIDFor(n int) string {
	return map[int]string{1: "page-1", 2: "page-2", 3: "page-3"}[n]
}

func executorSchema(withRank bool) *domain.DatabaseSchema {
	fields := []domain.FieldSchema{
		{Name: "Name", Type: domain.FieldTitle},
		{Name: "Status", Type: domain.FieldSelect, Options: []string{"Not started", "Done"}},
		{Name: "Priority", Type: domain.FieldSelect, Options: []string{"Low", "High"}},
	}
	if withRank {
		fields = append(fields, domain.FieldSchema{Name: "Rank", Type: domain.FieldNumber})
	}
	return &domain.DatabaseSchema{Title: "Tasks", Fields: fields}
}

func newTestExecutor(store *fakeStore) *Executor {
	return &Executor{store: store, databaseID: "db-1"}
}

func TestExecute_FailureIsolation(t *testing.T) {
	store := &fakeStore{failOn: 2}
	exec := newTestExecutor(store)

	operations := []domain.Operation{
		{ID: "op-1", Kind: domain.OpCreate, Fields: domain.FieldValues{"name": "A"}},
		{ID: "op-2", Kind: domain.OpCreate, Fields: domain.FieldValues{"name": "B"}},
		{ID: "op-3", Kind: domain.OpCreate, Fields: domain.FieldValues{"name": "C"}},
	}

	results := exec.Execute(context.Background(), executorSchema(false), operations)

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "status 500")
	assert.True(t, results[2].Success)

	summary := domain.Summarize(results)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
}

func TestExecute_UpdateRequiresTaskID(t *testing.T) {
	store := &fakeStore{}
	exec := newTestExecutor(store)

	operations := []domain.Operation{
		{ID: "op-1", Kind: domain.OpUpdate, Fields: domain.FieldValues{"status": "Done"}},
	}

	results := exec.Execute(context.Background(), executorSchema(false), operations)

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "Task ID is required for update operations", results[0].Error)
	assert.Empty(t, store.calls, "no store call should happen without a task id")
}

func TestExecute_StatusChangeRequiresTaskID(t *testing.T) {
	exec := newTestExecutor(&fakeStore{})

	operations := []domain.Operation{
		{ID: "op-1", Kind: domain.OpStatusChange, Fields: domain.FieldValues{"status": "Done"}},
	}

	results := exec.Execute(context.Background(), executorSchema(false), operations)

	assert.Equal(t, "Task ID is required for status change operations", results[0].Error)
}

func TestExecute_StatusChangeMapsOnlyStatus(t *testing.T) {
	store := &fakeStore{}
	exec := newTestExecutor(store)

	operations := []domain.Operation{
		{
			ID: "op-1", Kind: domain.OpStatusChange, TaskID: "task-9",
			Fields: domain.FieldValues{"status": "Done", "name": "should be ignored", "priority": "High"},
		},
	}

	results := exec.Execute(context.Background(), executorSchema(false), operations)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	require.Len(t, store.calls, 1)
	call := store.calls[0]
	assert.Equal(t, "update", call.method)
	assert.Equal(t, "task-9", call.pageID)
	assert.Contains(t, call.properties, "Status")
	assert.NotContains(t, call.properties, "Name")
	assert.NotContains(t, call.properties, "Priority")
}

func TestExecute_RankMergedWhenSchemaHasRankField(t *testing.T) {
	store := &fakeStore{}
	exec := newTestExecutor(store)

	operations := []domain.Operation{
		{ID: "op-1", Kind: domain.OpCreate, Fields: domain.FieldValues{"name": "A", "priority": "High"}},
	}

	results := exec.Execute(context.Background(), executorSchema(true), operations)

	require.True(t, results[0].Success)
	require.Len(t, store.calls, 1)
	assert.Contains(t, store.calls[0].properties, "Rank")
}

func TestExecute_NoRankFieldNoRankProperty(t *testing.T) {
	store := &fakeStore{}
	exec := newTestExecutor(store)

	operations := []domain.Operation{
		{ID: "op-1", Kind: domain.OpCreate, Fields: domain.FieldValues{"name": "A", "priority": "High"}},
	}

	exec.Execute(context.Background(), executorSchema(false), operations)

	require.Len(t, store.calls, 1)
	for name := range store.calls[0].properties {
		assert.NotEqual(t, "Rank", name)
	}
}

func TestExecute_UnsupportedKind(t *testing.T) {
	exec := newTestExecutor(&fakeStore{})

	operations := []domain.Operation{{ID: "op-1", Kind: "merge"}}

	results := exec.Execute(context.Background(), executorSchema(false), operations)

	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "unsupported operation kind")
}

func TestExecute_UpdateSendsMappedFields(t *testing.T) {
	store := &fakeStore{}
	exec := newTestExecutor(store)

	operations := []domain.Operation{
		{ID: "op-1", Kind: domain.OpUpdate, TaskID: "task-3", Fields: domain.FieldValues{"status": "Done"}},
	}

	results := exec.Execute(context.Background(), executorSchema(false), operations)

	require.True(t, results[0].Success)
	assert.Equal(t, "page-1", results[0].NotionPageID)
	assert.Equal(t, "task-3", store.calls[0].pageID)
}
