package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// RichTextRun is one segment of a Notion rich-text value.
type RichTextRun struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is one entry in a select/multi_select option list or
// value.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is a Notion date property value.
type DateValue struct {
	Start string `json:"start"`
}

// Property is the raw schema definition of one database property.
type Property struct {
	Type        string `json:"type"`
	Select      *struct {
		Options []SelectOption `json:"options"`
	} `json:"select,omitempty"`
	MultiSelect *struct {
		Options []SelectOption `json:"options"`
	} `json:"multi_select,omitempty"`
}

// Database is the raw response of a database retrieve call.
// PropertyOrder preserves the declaration order of the properties
// object, which a Go map cannot.
type Database struct {
	Title         []RichTextRun       `json:"title"`
	Properties    map[string]Property `json:"properties"`
	PropertyOrder []string            `json:"-"`
}

func (d *Database) UnmarshalJSON(data []byte) error {
	type databaseAlias Database
	var a databaseAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = Database(a)
	order, err := objectKeyOrder(data, "properties")
	if err != nil {
		return err
	}
	d.PropertyOrder = order
	return nil
}

// objectKeyOrder returns the keys of the named top-level object member
// in the order they appear in the JSON document.
func objectKeyOrder(data []byte, member string) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening {
		return nil, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		if key != member {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, nil
		}
		var keys []string
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := tok.(string)
			keys = append(keys, name)
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		return keys, nil
	}
	return nil, nil
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// PropertyValue is the raw value of one property on a queried page.
// Exactly one of the typed members is meaningful, selected by Type.
type PropertyValue struct {
	Type        string         `json:"type"`
	Title       []RichTextRun  `json:"title,omitempty"`
	RichText    []RichTextRun  `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Number      *float64       `json:"number,omitempty"`
}

// Page is one record returned by a database query.
type Page struct {
	ID         string                   `json:"id"`
	Properties map[string]PropertyValue `json:"properties"`
}

type queryResponse struct {
	Results []Page `json:"results"`
}

type pageResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client is a minimal Notion API client covering the four calls the
// pipeline needs. Auth and versioning headers are attached here;
// request semantics live in the callers.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Client authenticating with the given integration
// token.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// RetrieveDatabase fetches a database's metadata and property map.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	err := c.do(ctx, http.MethodGet, "/v1/databases/"+databaseID, nil, &db)
	if err != nil {
		return nil, err
	}
	return &db, nil
}

// QueryDatabase returns up to pageSize pages from the database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, pageSize int) ([]Page, error) {
	body := map[string]interface{}{"page_size": pageSize}
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// CreatePage creates a page in the database with the given encoded
// properties and returns its id.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]interface{}) (string, error) {
	body := map[string]interface{}{
		"parent":     map[string]interface{}{"database_id": databaseID},
		"properties": properties,
	}
	var resp pageResponse
	if err := c.do(ctx, http.MethodPost, "/v1/pages", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdatePage patches the given page's properties and returns its id.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]interface{}) (string, error) {
	body := map[string]interface{}{"properties": properties}
	var resp pageResponse
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			switch apiErr.Code {
			case "object_not_found":
				return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
			case "unauthorized", "restricted_resource":
				return fmt.Errorf("%w: %s", ErrUnavailable, apiErr.Message)
			}
			return fmt.Errorf("notion returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("notion returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
