package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/notionplan/notionplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompletionClient struct {
	response string
	err      error
	lastReq  llm.CompletionRequest
}

func (f *fakeCompletionClient) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.lastReq = req
	return f.response, f.err
}

func testSchema() *domain.DatabaseSchema {
	return &domain.DatabaseSchema{
		Title: "Tasks",
		Fields: []domain.FieldSchema{
			{Name: "Name", Type: domain.FieldTitle, Description: "Main title/name of the task"},
			{Name: "Status", Type: domain.FieldSelect, Options: []string{"Not started", "In progress", "Done"},
				Description: "Single selection field with options: Not started, In progress, Done"},
			{Name: "Due", Type: domain.FieldDate, Description: "Date field (YYYY-MM-DD format)"},
		},
	}
}

func TestGeneratePlan_Success(t *testing.T) {
	client := &fakeCompletionClient{
		response: `{"plan": [{"kind": "create", "fields": {"name": "Ship release"}, "confidence": 90}], "reasoning": "one task"}`,
	}
	svc := NewService(client, 6000)

	plan, err := svc.GeneratePlan(context.Background(), testSchema(), "ship the release", nil)

	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, "Ship release", plan.Operations[0].Fields["name"])
	assert.Equal(t, "one task", plan.Reasoning)

	// The request carries the schema-derived rules and the user text.
	require.Len(t, client.lastReq.Messages, 2)
	system := client.lastReq.Messages[0].Text
	assert.Contains(t, system, "=== DATABASE STRUCTURE AND RULES ===")
	assert.Contains(t, system, "Status")
	assert.Equal(t, "ship the release", client.lastReq.Messages[1].Text)
	assert.Equal(t, 6000, client.lastReq.MaxCompletionTokens)
}

func TestGeneratePlan_ImageAttachmentsBecomeParts(t *testing.T) {
	client := &fakeCompletionClient{response: `{"plan": []}`}
	svc := NewService(client, 0)

	files := []domain.ProcessedFile{{
		Name: "board.png", Type: "image/png", Content: "[Image: board.png]",
		Metadata: domain.FileMetadata{DataURL: "data:image/png;base64,aGk="},
	}}

	_, err := svc.GeneratePlan(context.Background(), testSchema(), "import board", files)

	require.NoError(t, err)
	user := client.lastReq.Messages[1]
	require.Len(t, user.Parts, 2)
	assert.Contains(t, user.Parts[0].Text, "[Image: board.png]")
	assert.Equal(t, "data:image/png;base64,aGk=", user.Parts[1].ImageURL)
}

func TestGeneratePlan_ClientError(t *testing.T) {
	client := &fakeCompletionClient{err: llm.ErrProvider}
	svc := NewService(client, 0)

	_, err := svc.GeneratePlan(context.Background(), testSchema(), "x", nil)

	assert.ErrorIs(t, err, llm.ErrProvider)
}

func TestGeneratePlan_MalformedResponse(t *testing.T) {
	client := &fakeCompletionClient{response: "I cannot comply."}
	svc := NewService(client, 0)

	_, err := svc.GeneratePlan(context.Background(), testSchema(), "x", nil)

	assert.ErrorIs(t, err, ErrMalformedPlan)
}

func TestReviseOperations_Success(t *testing.T) {
	client := &fakeCompletionClient{
		response: `{"operations": [{"id": "op-1", "kind": "create", "fields": {"name": "Ship release", "priority": "High"}, "approved": true}]}`,
	}
	svc := NewService(client, 0)

	existing := []domain.Operation{{
		ID: "op-1", Kind: domain.OpCreate,
		Fields: domain.FieldValues{"name": "Ship release"},
	}}

	plan, err := svc.ReviseOperations(context.Background(), testSchema(), existing, "set priority high")

	require.NoError(t, err)
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, "High", plan.Operations[0].Fields["priority"])
	assert.True(t, plan.Operations[0].Edited)
	assert.True(t, plan.Operations[0].Approved)

	user := client.lastReq.Messages[1].Text
	assert.Contains(t, user, `"id": "op-1"`)
	assert.Contains(t, user, "User Request: set priority high")
}

func TestReviseOperations_ClientError(t *testing.T) {
	wantErr := errors.New("boom")
	client := &fakeCompletionClient{err: wantErr}
	svc := NewService(client, 0)

	_, err := svc.ReviseOperations(context.Background(), testSchema(), nil, "x")

	assert.ErrorIs(t, err, wantErr)
}
