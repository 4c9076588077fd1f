package docfill

import (
	"log/slog"

	"github.com/docfill/docfill/docx"
)

// Listener is notified of every mutation the engine performs. Implement it
// to collect an audit trail of replacements; the engine never changes its
// behaviour based on listener results.
type Listener interface {
	// Replaced is called after a paragraph's text was rewritten.
	Replaced(row Row, zone docx.Zone, oldText, newText string)

	// StyleSet is called after a paragraph's style was changed.
	StyleSet(row Row, zone docx.Zone, style string)

	// ParagraphAdded is called after a paragraph was appended to the body.
	ParagraphAdded(row Row, text, style string)

	// UnknownCommand is called for rows whose command cell holds no
	// recognized command token. The row is skipped.
	UnknownCommand(row Row)

	// FileWritten is called after an output document was persisted.
	FileWritten(configured, path string)
}

// slogListener logs mutations through log/slog.
type slogListener struct {
	log *slog.Logger
}

// NewSlogListener returns a Listener that records every mutation on l.
// A nil logger uses slog.Default.
func NewSlogListener(l *slog.Logger) Listener {
	if l == nil {
		l = slog.Default()
	}
	return &slogListener{log: l}
}

func (s *slogListener) Replaced(row Row, zone docx.Zone, oldText, newText string) {
	s.log.Info("replace_paragraph", "row", row.Index, "zone", zone.String(), "old", oldText, "new", newText)
}

func (s *slogListener) StyleSet(row Row, zone docx.Zone, style string) {
	s.log.Info("set style", "row", row.Index, "zone", zone.String(), "style", style)
}

func (s *slogListener) ParagraphAdded(row Row, text, style string) {
	s.log.Info("add_paragraph", "row", row.Index, "text", text, "style", style)
}

func (s *slogListener) UnknownCommand(row Row) {
	s.log.Warn("unknown command, row skipped", "row", row.Index, "command", row.RawCommand)
}

func (s *slogListener) FileWritten(configured, path string) {
	s.log.Info("output written", "configured", configured, "path", path)
}

// NopListener discards all notifications.
type NopListener struct{}

func (NopListener) Replaced(Row, docx.Zone, string, string) {}
func (NopListener) StyleSet(Row, docx.Zone, string)         {}
func (NopListener) ParagraphAdded(Row, string, string)      {}
func (NopListener) UnknownCommand(Row)                      {}
func (NopListener) FileWritten(string, string)              {}
