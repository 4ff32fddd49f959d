package fileproc

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestProcess_CSV(t *testing.T) {
	path := writeTempFile(t, "tasks.csv", []byte(
		"Task,Status,Due\nWrite report,In progress,2026-09-05\nShip release,Not started,\n"))

	results := Process([]string{path})

	require.Len(t, results, 1)
	file := results[0]
	assert.Equal(t, "tasks.csv", file.Name)
	assert.Equal(t, "text/csv", file.Type)
	assert.False(t, file.Metadata.Error)
	assert.Equal(t, 2, file.Metadata.RowCount)
	assert.Equal(t, 3, file.Metadata.ColumnCount)
	assert.Equal(t, []string{"Task", "Status", "Due"}, file.Metadata.Headers)

	assert.Contains(t, file.Content, "[CSV Data: tasks.csv]")
	assert.Contains(t, file.Content, "Rows: 2, Columns: 3")
	assert.Contains(t, file.Content, "Headers: Task, Status, Due")
	assert.Contains(t, file.Content, "Sample data (first 2 rows):")
	assert.Contains(t, file.Content, `Row 1: {"Due":"2026-09-05","Status":"In progress","Task":"Write report"}`)
}

func TestProcess_CSVSampleCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("Task\n")
	for i := 0; i < 12; i++ {
		b.WriteString("row\n")
	}
	path := writeTempFile(t, "big.csv", []byte(b.String()))

	file := Process([]string{path})[0]

	assert.Equal(t, 12, file.Metadata.RowCount)
	assert.Contains(t, file.Content, "Sample data (first 5 rows):")
	assert.Contains(t, file.Content, "Row 5:")
	assert.NotContains(t, file.Content, "Row 6:")
}

func TestProcess_EmptyCSV(t *testing.T) {
	path := writeTempFile(t, "empty.csv", nil)

	file := Process([]string{path})[0]

	assert.True(t, file.Metadata.Error)
	assert.Contains(t, file.Content, "Error processing file:")
	assert.Contains(t, file.Content, "CSV file is empty")
}

func TestProcess_Image(t *testing.T) {
	path := writeTempFile(t, "board.png", pngBytes(t, 32, 24))

	file := Process([]string{path})[0]

	assert.Equal(t, "image/png", file.Type)
	assert.False(t, file.Metadata.Error)
	assert.Equal(t, 32, file.Metadata.Width)
	assert.Equal(t, 24, file.Metadata.Height)
	assert.True(t, strings.HasPrefix(file.Metadata.DataURL, "data:image/png;base64,"))
	assert.Contains(t, file.Content, "Dimensions: 32x24px")
}

func TestProcess_CorruptImage(t *testing.T) {
	path := writeTempFile(t, "broken.png", []byte("not a png"))

	file := Process([]string{path})[0]

	assert.True(t, file.Metadata.Error)
	assert.Contains(t, file.Content, "failed to decode image")
}

func TestProcess_PDFPlaceholder(t *testing.T) {
	path := writeTempFile(t, "notes.pdf", []byte("%PDF-1.4 fake"))

	file := Process([]string{path})[0]

	assert.Equal(t, "application/pdf", file.Type)
	assert.False(t, file.Metadata.Error)
	assert.Contains(t, file.Content, "[PDF Document: notes.pdf]")
}

func TestProcess_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "notes.docx", []byte("hello"))

	file := Process([]string{path})[0]

	assert.True(t, file.Metadata.Error)
	assert.Contains(t, file.Content, `file type ".docx" is not supported`)
	assert.Contains(t, file.Content, "JPG, PNG, PDF, or CSV")
}

func TestProcess_OversizedFile(t *testing.T) {
	path := writeTempFile(t, "huge.csv", make([]byte, maxFileSize+1))

	file := Process([]string{path})[0]

	assert.True(t, file.Metadata.Error)
	assert.Contains(t, file.Content, "exceeds the 10MB limit")
}

func TestProcess_MissingFile(t *testing.T) {
	file := Process([]string{filepath.Join(t.TempDir(), "gone.csv")})[0]

	assert.True(t, file.Metadata.Error)
	assert.Contains(t, file.Content, "Error processing file:")
}

func TestProcess_PreservesOrder(t *testing.T) {
	csvPath := writeTempFile(t, "a.csv", []byte("Task\nrow\n"))
	badPath := filepath.Join(t.TempDir(), "b.csv")

	results := Process([]string{csvPath, badPath})

	require.Len(t, results, 2)
	assert.Equal(t, "a.csv", results[0].Name)
	assert.Equal(t, "b.csv", results[1].Name)
	assert.False(t, results[0].Metadata.Error)
	assert.True(t, results[1].Metadata.Error)
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatFileSize(0))
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "10 MB", FormatFileSize(10*1024*1024))
}
