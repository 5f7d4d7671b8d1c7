// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders journal entries into a file format.
type Exporter interface {
	// Export converts entries (oldest first) to the target format.
	Export(session string, entries []Entry) ([]byte, error)

	// FileExtension returns the extension including the dot.
	FileExtension() string
}

// ExporterFor returns the exporter for a format name ("md", "markdown" or "json").
func ExporterFor(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return MarkdownExporter{}, nil
	case "json":
		return JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want md or json)", format)
	}
}

// ExportToFile writes entries to dir and returns the file path. The file name
// is derived from the session and the current time.
func ExportToFile(dir, session string, entries []Entry, exporter Exporter) (string, error) {
	content, err := exporter.Export(session, entries)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("journal_%s_%s%s",
		sanitizeFilename(session),
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a table of executions with a YAML front matter.
type MarkdownExporter struct{}

func (MarkdownExporter) Export(session string, entries []Entry) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "session: %s\n", session)
	fmt.Fprintf(&sb, "entries: %d\n", len(entries))
	fmt.Fprintf(&sb, "exported: %s\n", time.Now().Format(time.RFC3339))
	sb.WriteString("generator: devconsole\n")
	sb.WriteString("---\n\n")

	sb.WriteString("# Console journal\n\n")
	if len(entries) == 0 {
		sb.WriteString("*No commands recorded.*\n")
		return []byte(sb.String()), nil
	}

	sb.WriteString("| Time | Line | Outcome | Duration | Error |\n")
	sb.WriteString("|------|------|---------|----------|-------|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | `%s` | %s | %s | %s |\n",
			e.Started.Format(time.TimeOnly),
			escapeCell(e.Line),
			e.Outcome,
			e.Duration,
			escapeCell(e.Error),
		)
	}
	return []byte(sb.String()), nil
}

func (MarkdownExporter) FileExtension() string { return ".md" }

// escapeCell keeps a value inside one markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "`", "'")
	return strings.ReplaceAll(s, "\n", " ")
}

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the complete entries so they can be re-read by tools.
type JSONExporter struct{}

type jsonEntry struct {
	ID         string   `json:"id"`
	Line       string   `json:"line"`
	Command    string   `json:"command"`
	Args       []string `json:"args"`
	Outcome    string   `json:"outcome"`
	Error      string   `json:"error,omitempty"`
	Started    string   `json:"started"`
	DurationUS int64    `json:"duration_us"`
}

type jsonDocument struct {
	Session  string      `json:"session"`
	Exported string      `json:"exported"`
	Entries  []jsonEntry `json:"entries"`
}

func (JSONExporter) Export(session string, entries []Entry) ([]byte, error) {
	doc := jsonDocument{
		Session:  session,
		Exported: time.Now().Format(time.RFC3339),
		Entries:  make([]jsonEntry, len(entries)),
	}
	for i, e := range entries {
		args := e.Args
		if args == nil {
			args = []string{}
		}
		doc.Entries[i] = jsonEntry{
			ID:         e.ID,
			Line:       e.Line,
			Command:    e.Command,
			Args:       args,
			Outcome:    e.Outcome,
			Error:      e.Error,
			Started:    e.Started.Format(time.RFC3339Nano),
			DurationUS: e.Duration.Microseconds(),
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (JSONExporter) FileExtension() string { return ".json" }

// =============================================================================
// HELPERS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in file names.
func sanitizeFilename(s string) string {
	const maxLen = 50
	if runes := []rune(s); len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "session"
	}
	return b.String()
}
