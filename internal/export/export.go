// Package export writes a task list snapshot in a shareable format.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/task"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats returns every supported export format.
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatPDF}
}

// Exporter renders tasks into export formats.
type Exporter struct {
	title     string
	remaining int
	now       func() time.Time
	compress  bool
}

// NewExporter creates an Exporter. title heads the PDF document and remaining
// is the store-wide count of incomplete tasks, which does not depend on which
// tasks are exported.
func NewExporter(title string, remaining int) *Exporter {
	if title == "" {
		title = "Task List"
	}
	return &Exporter{title: title, remaining: remaining, now: time.Now, compress: true}
}

// Export encodes tasks in the given format.
func (e *Exporter) Export(tasks []task.Task, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return e.json(tasks)
	case FormatCSV:
		return e.csv(tasks)
	case FormatPDF:
		return e.pdf(tasks)
	default:
		return nil, todoerrors.UnknownFormatError{Format: format, Valid: Formats()}
	}
}

func (e *Exporter) json(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (e *Exporter) csv(tasks []task.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "title", "completed"})
	for _, t := range tasks {
		_ = w.Write([]string{strconv.FormatInt(t.ID, 10), t.Title, strconv.FormatBool(t.Completed)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) pdf(tasks []task.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(e.title))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, e.now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		pdf.MultiCell(0, 6, tr(box+" "+t.Title), "0", "L", false)
	}
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(40, 6, strconv.Itoa(e.remaining)+" tasks remaining")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
