// Package fileproc turns local file attachments into model-ready text
// and inline image data. A file that fails validation or parsing still
// produces an entry, with the error captured in its content, so one
// bad attachment never sinks the whole request.
package fileproc

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notionplan/notionplan/internal/domain"
)

const maxFileSize = 10 * 1024 * 1024 // 10MB

const csvSampleRows = 5

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".csv":  "text/csv",
}

// Process reads and renders each attachment path. One entry is
// returned per path, in order; failures are captured per entry.
func Process(paths []string) []domain.ProcessedFile {
	results := make([]domain.ProcessedFile, 0, len(paths))
	for _, path := range paths {
		results = append(results, processOne(path))
	}
	return results
}

func processOne(path string) domain.ProcessedFile {
	name := filepath.Base(path)
	mimeType := mimeByExtension[strings.ToLower(filepath.Ext(path))]

	data, err := os.ReadFile(path)
	if err != nil {
		return errorFile(name, mimeType, 0, err)
	}

	size := int64(len(data))
	if mimeType == "" {
		return errorFile(name, mimeType, size,
			fmt.Errorf("file type %q is not supported. Please use JPG, PNG, PDF, or CSV files", filepath.Ext(path)))
	}
	if size > maxFileSize {
		return errorFile(name, mimeType, size,
			fmt.Errorf("file size %s exceeds the 10MB limit", FormatFileSize(size)))
	}

	var file domain.ProcessedFile
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		file, err = processImage(name, mimeType, data)
	case mimeType == "application/pdf":
		file = processPDF(name, mimeType, data)
	default:
		file, err = processCSV(name, mimeType, data)
	}
	if err != nil {
		return errorFile(name, mimeType, size, err)
	}
	return file
}

func processImage(name, mimeType string, data []byte) (domain.ProcessedFile, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.ProcessedFile{}, fmt.Errorf("failed to decode image: %w", err)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	return domain.ProcessedFile{
		Name: name,
		Type: mimeType,
		Content: fmt.Sprintf("[Image: %s] - Screenshot for task extraction analysis. Dimensions: %dx%dpx\n\n"+
			"Please analyze this image for task management information including task titles, due dates, status, priority, assignees, and any other structured data visible in the interface.",
			name, cfg.Width, cfg.Height),
		Metadata: domain.FileMetadata{
			Size:        int64(len(data)),
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
			Width:       cfg.Width,
			Height:      cfg.Height,
			DataURL:     dataURL,
		},
	}, nil
}

func processPDF(name, mimeType string, data []byte) domain.ProcessedFile {
	return domain.ProcessedFile{
		Name: name,
		Type: mimeType,
		Content: fmt.Sprintf("[PDF Document: %s] - This PDF document will be processed by the LLM to extract task-relevant information. Size: %s",
			name, FormatFileSize(int64(len(data)))),
		Metadata: domain.FileMetadata{
			Size:        int64(len(data)),
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func processCSV(name, mimeType string, data []byte) (domain.ProcessedFile, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return domain.ProcessedFile{}, fmt.Errorf("CSV parsing failed: %w", err)
	}
	if len(records) == 0 {
		return domain.ProcessedFile{}, fmt.Errorf("CSV file is empty")
	}

	headers := records[0]
	rows := records[1:]

	var b strings.Builder
	fmt.Fprintf(&b, "[CSV Data: %s]\n", name)
	fmt.Fprintf(&b, "Rows: %d, Columns: %d\n", len(rows), len(headers))
	fmt.Fprintf(&b, "Headers: %s\n\n", strings.Join(headers, ", "))

	sample := len(rows)
	if sample > csvSampleRows {
		sample = csvSampleRows
	}
	if sample > 0 {
		fmt.Fprintf(&b, "Sample data (first %d rows):\n", sample)
		for i := 0; i < sample; i++ {
			fmt.Fprintf(&b, "Row %d: %s\n", i+1, rowJSON(headers, rows[i]))
		}
	}

	return domain.ProcessedFile{
		Name:    name,
		Type:    mimeType,
		Content: b.String(),
		Metadata: domain.FileMetadata{
			Size:        int64(len(data)),
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
			RowCount:    len(rows),
			ColumnCount: len(headers),
			Headers:     headers,
		},
	}, nil
}

func rowJSON(headers, row []string) string {
	record := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			record[h] = row[i]
		}
	}
	encoded, _ := json.Marshal(record)
	return string(encoded)
}

func errorFile(name, mimeType string, size int64, err error) domain.ProcessedFile {
	return domain.ProcessedFile{
		Name:    name,
		Type:    mimeType,
		Content: fmt.Sprintf("Error processing file: %v", err),
		Metadata: domain.FileMetadata{
			Size:        size,
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
			Error:       true,
		},
	}
}

// FormatFileSize renders a byte count with a binary unit suffix.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	sizes := []string{"B", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%s %s", trimZero(value), sizes[i])
}

func trimZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
