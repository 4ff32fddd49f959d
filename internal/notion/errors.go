package notion

import "errors"

var (
	// ErrUnavailable indicates the Notion API could not be reached or
	// rejected the credentials.
	ErrUnavailable = errors.New("notion api unavailable")

	// ErrSchemaEmpty indicates the database exists but declares no
	// properties.
	ErrSchemaEmpty = errors.New("notion database has no properties")

	// ErrNotFound indicates the database or page does not exist or the
	// integration has no access to it.
	ErrNotFound = errors.New("notion object not found")
)
