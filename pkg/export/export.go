package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/limaJavier/fairtable/pkg/model"
	"github.com/limaJavier/fairtable/pkg/timetable"
)

// Document is everything a sink may render about one solved run
type Document struct {
	RunId     string
	Objective float64
	Lower     float64
	Upper     float64
	Optimal   bool
	Table     timetable.Table
	Summaries []model.DepartmentSummary
}

type Renderer interface {
	Render(document Document) ([]byte, error)
}

var renderers = map[string]func() Renderer{
	".csv":  func() Renderer { return NewCSVRenderer() },
	".json": func() Renderer { return NewJSONRenderer() },
	".pdf":  func() Renderer { return NewPDFRenderer() },
}

// RendererFor picks the renderer matching the output file's extension
func RendererFor(path string) (Renderer, error) {
	extension := strings.ToLower(filepath.Ext(path))
	newRenderer, ok := renderers[extension]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q: expected one of .csv, .json, .pdf", extension)
	}
	return newRenderer(), nil
}

// Write renders the document in memory and only then creates the file, so a failed render leaves nothing behind
func Write(path string, document Document) error {
	renderer, err := RendererFor(path)
	if err != nil {
		return err
	}
	content, err := renderer.Render(document)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0666); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
