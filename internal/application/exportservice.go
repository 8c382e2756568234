package application

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/notty/internal/domain/model"
	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// ExportFormat selects the file format written by ExportService.
type ExportFormat string

const (
	ExportHTML     ExportFormat = "html"
	ExportMarkdown ExportFormat = "markdown"
)

// ParseExportFormat validates a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case ExportHTML:
		return ExportHTML, nil
	case ExportMarkdown, "md":
		return ExportMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want html or markdown)", s)
	}
}

// uncategorized labels notes without a category.
const uncategorized = "Uncategorized"

// ExportResult summarizes a completed export.
type ExportResult struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"` // Paths relative to Dir, in write order.
}

// ExportService writes the user's notes to a local directory.
type ExportService struct {
	api    driven.NotesAPI
	logger *slog.Logger
}

// NewExportService creates a new ExportService with the required dependencies.
func NewExportService(api driven.NotesAPI, logger *slog.Logger) *ExportService {
	return &ExportService{api: api, logger: logger}
}

// renderWorkers bounds how many note bodies are rendered at once.
const renderWorkers = 4

// Export writes one file per note into dir. HTML exports also get an
// index.html grouped by category.
//
// Notes are listed first so an expired access token is refreshed before
// any other request goes out. Categories are then fetched while the note
// bodies are rendered.
func (s *ExportService) Export(ctx context.Context, dir string, format ExportFormat) (*ExportResult, error) {
	if format != ExportHTML && format != ExportMarkdown {
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	notes, err := s.api.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching notes for export: %w", err)
	}

	var categories []model.Category
	bodies := make([]template.HTML, len(notes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers + 1)
	g.Go(func() error {
		var err error
		categories, err = s.api.FetchCategories(gctx)
		if err != nil {
			return fmt.Errorf("fetching categories for export: %w", err)
		}
		return nil
	})
	if format == ExportHTML {
		for i, note := range notes {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				// RenderMarkdown output is sanitized by the note policy.
				bodies[i] = template.HTML(RenderMarkdown(note.Content)) //nolint:gosec // sanitized above
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	result := &ExportResult{Dir: dir}
	entries := make([]indexEntry, 0, len(notes))

	for i, note := range notes {
		category := categoryName(note, names)

		var (
			file string
			data []byte
			err  error
		)
		switch format {
		case ExportHTML:
			file = noteFileName(note, ".html")
			data, err = renderNotePage(note, category, bodies[i])
		case ExportMarkdown:
			file = noteFileName(note, ".md")
			data, err = renderNoteMarkdown(note, category)
		}
		if err != nil {
			return nil, fmt.Errorf("rendering note %d: %w", note.ID, err)
		}

		if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
			return nil, fmt.Errorf("writing note %d: %w", note.ID, err)
		}
		result.Files = append(result.Files, file)
		entries = append(entries, indexEntry{Title: note.Title, File: file, Category: category})
	}

	if format == ExportHTML {
		data, err := renderIndex(entries)
		if err != nil {
			return nil, fmt.Errorf("rendering index: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "index.html"), data, 0o644); err != nil {
			return nil, fmt.Errorf("writing index: %w", err)
		}
		result.Files = append(result.Files, "index.html")
	}

	s.logger.Info("notes exported", "dir", dir, "format", format, "notes", len(notes))
	return result, nil
}

func categoryName(note model.Note, names map[int64]string) string {
	if note.Category == nil {
		return uncategorized
	}
	if name, ok := names[*note.Category]; ok {
		return name
	}
	return fmt.Sprintf("Category %d", *note.Category)
}

// noteFileName builds "<id>-<slug><ext>" from the note title.
func noteFileName(note model.Note, ext string) string {
	return fmt.Sprintf("%d-%s%s", note.ID, slugify(note.Title), ext)
}

const maxSlugLen = 50

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(truncateUTF8(slug, maxSlugLen), "-")
	}
	if slug == "" {
		return "note"
	}
	return slug
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// frontMatter is the YAML header written above exported markdown notes.
type frontMatter struct {
	ID          int64     `yaml:"id"`
	Title       string    `yaml:"title"`
	Category    string    `yaml:"category"`
	Subcategory *int64    `yaml:"subcategory,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

func renderNoteMarkdown(note model.Note, category string) ([]byte, error) {
	header, err := yaml.Marshal(frontMatter{
		ID:          note.ID,
		Title:       note.Title,
		Category:    category,
		Subcategory: note.Subcategory,
		CreatedAt:   note.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(note.Content)
	if !strings.HasSuffix(note.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

var notePageTmpl = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<p><a href="index.html">All notes</a> &middot; {{.Category}}</p>
<h1>{{.Title}}</h1>
{{if not .CreatedAt.IsZero}}<p><time datetime="{{.CreatedAt.Format "2006-01-02T15:04:05Z07:00"}}">{{.CreatedAt.Format "2 Jan 2006 15:04"}}</time></p>{{end}}
<article>
{{.Body}}
</article>
</body>
</html>
`))

type notePage struct {
	Title     string
	Category  string
	CreatedAt time.Time
	Body      template.HTML
}

func renderNotePage(note model.Note, category string, body template.HTML) ([]byte, error) {
	var buf bytes.Buffer
	err := notePageTmpl.Execute(&buf, notePage{
		Title:     note.Title,
		Category:  category,
		CreatedAt: note.CreatedAt,
		Body:      body,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type indexEntry struct {
	Title    string
	File     string
	Category string
}

type indexGroup struct {
	Category string
	Entries  []indexEntry
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Notes</title></head>
<body>
<h1>Notes</h1>
{{range .}}<h2>{{.Category}}</h2>
<ul>
{{range .Entries}}<li><a href="{{.File}}">{{.Title}}</a></li>
{{end}}</ul>
{{end}}</body>
</html>
`))

// renderIndex groups entries by category, sorted by name with the
// uncategorized group last.
func renderIndex(entries []indexEntry) ([]byte, error) {
	byCategory := make(map[string][]indexEntry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	groups := make([]indexGroup, 0, len(byCategory))
	for category, list := range byCategory {
		groups = append(groups, indexGroup{Category: category, Entries: list})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Category == uncategorized {
			return false
		}
		if groups[j].Category == uncategorized {
			return true
		}
		return groups[i].Category < groups[j].Category
	})

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, groups); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
