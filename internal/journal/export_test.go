// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/commands"
)

func sampleEntries() []Entry {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{ID: "1", Line: "heal 10", Command: "heal", Args: []string{"10"}, Outcome: "ok", Started: base, Duration: 2 * time.Millisecond},
		{ID: "2", Line: "warp a|b", Command: "warp", Outcome: "command_not_found", Error: "command [warp] not found", Started: base.Add(time.Second)},
	}
}

func TestExporterFor(t *testing.T) {
	for _, name := range []string{"md", "Markdown", "JSON"} {
		_, err := ExporterFor(name)
		assert.NoError(t, err, name)
	}
	_, err := ExporterFor("html")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestMarkdownExport(t *testing.T) {
	out, err := MarkdownExporter{}.Export("s-1", sampleEntries())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\nsession: s-1\nentries: 2\n"))
	assert.Contains(t, md, "| 12:00:00 | `heal 10` | ok | 2ms |  |")
	assert.Contains(t, md, "`warp a\\|b`")
	assert.Contains(t, md, "command [warp] not found")
}

func TestMarkdownExportEmpty(t *testing.T) {
	out, err := MarkdownExporter{}.Export("s", nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No commands recorded")
}

func TestJSONExport(t *testing.T) {
	out, err := JSONExporter{}.Export("s-1", sampleEntries())
	require.NoError(t, err)

	var doc jsonDocument
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "s-1", doc.Session)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, []string{"10"}, doc.Entries[0].Args)
	assert.Equal(t, int64(2000), doc.Entries[0].DurationUS)
	assert.Equal(t, []string{}, doc.Entries[1].Args)
	assert.Equal(t, "command_not_found", doc.Entries[1].Outcome)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a/b:c", "a-b-c"},
		{"two words", "two_words"},
		{"", "session"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}

func TestJournalExportCommand(t *testing.T) {
	j := openTestJournal(t)
	var out []string
	d := commands.NewDispatcher(commands.Scan([]commands.Source{j}),
		commands.OutputFunc(func(l string) { out = append(out, l) }),
		commands.WithObserver(j))

	_ = d.Execute("journal 1")
	_ = d.Execute("journal_stats")

	dir := t.TempDir()
	require.NoError(t, d.Execute("journal_export json "+dir))
	require.NotEmpty(t, out)
	assert.Contains(t, out[len(out)-1], "exported 2 entries")

	files, err := filepath.Glob(filepath.Join(dir, "journal_session-1_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var doc jsonDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "journal 1", doc.Entries[0].Line)
	assert.Equal(t, "journal_stats", doc.Entries[1].Line)

	err = d.Execute("journal_export pdf " + dir)
	assert.Error(t, err)
}
