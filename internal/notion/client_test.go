package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const databaseJSON = `{
	"object": "database",
	"title": [{"plain_text": "Team Tasks"}],
	"properties": {
		"Name": {"type": "title", "title": {}},
		"Status": {"type": "select", "select": {"options": [{"name": "Not started"}, {"name": "Done"}]}},
		"Tags": {"type": "multi_select", "multi_select": {"options": [{"name": "backend"}]}},
		"Due": {"type": "date", "date": {}}
	}
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("secret-token")
	client.SetBaseURL(srv.URL)
	return client
}

func TestRetrieveDatabase_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-1", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(databaseJSON))
	})

	db, err := client.RetrieveDatabase(context.Background(), "db-1")

	require.NoError(t, err)
	assert.Equal(t, "Team Tasks", db.Title[0].PlainText)
	assert.Len(t, db.Properties, 4)
	assert.Equal(t, "select", db.Properties["Status"].Type)
	require.NotNil(t, db.Properties["Status"].Select)
	assert.Equal(t, "Done", db.Properties["Status"].Select.Options[1].Name)
}

func TestRetrieveDatabase_PreservesPropertyOrder(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(databaseJSON))
	})

	db, err := client.RetrieveDatabase(context.Background(), "db-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Status", "Tags", "Due"}, db.PropertyOrder)
}

func TestQueryDatabase_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(10), body["page_size"])

		w.Write([]byte(`{"results": [
			{"id": "page-1", "properties": {"Name": {"type": "title", "title": [{"plain_text": "First"}]}}},
			{"id": "page-2", "properties": {}}
		]}`))
	})

	pages, err := client.QueryDatabase(context.Background(), "db-1", 10)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "page-1", pages[0].ID)
	assert.Equal(t, "First", pages[0].Properties["Name"].Title[0].PlainText)
}

func TestCreatePage_SendsParentAndProperties(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pages", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		parent := body["parent"].(map[string]interface{})
		assert.Equal(t, "db-1", parent["database_id"])
		assert.Contains(t, body["properties"], "Name")

		w.Write([]byte(`{"id": "new-page"}`))
	})

	id, err := client.CreatePage(context.Background(), "db-1", map[string]interface{}{
		"Name": map[string]interface{}{"title": []interface{}{}},
	})

	require.NoError(t, err)
	assert.Equal(t, "new-page", id)
}

func TestUpdatePage_Patch(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pages/page-9", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)
		w.Write([]byte(`{"id": "page-9"}`))
	})

	id, err := client.UpdatePage(context.Background(), "page-9", map[string]interface{}{})

	require.NoError(t, err)
	assert.Equal(t, "page-9", id)
}

func TestDo_ObjectNotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": "object_not_found", "message": "Could not find database"}`))
	})

	_, err := client.RetrieveDatabase(context.Background(), "db-1")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDo_Unauthorized(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code": "unauthorized", "message": "API token is invalid"}`))
	})

	_, err := client.RetrieveDatabase(context.Background(), "db-1")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_ConnectionRefused(t *testing.T) {
	client := NewClient("secret-token")
	client.SetBaseURL("http://127.0.0.1:1") // nothing listening

	_, err := client.RetrieveDatabase(context.Background(), "db-1")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_UnexpectedStatus(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code": "validation_error", "message": "body failed validation"}`))
	})

	_, err := client.RetrieveDatabase(context.Background(), "db-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "body failed validation")
}
