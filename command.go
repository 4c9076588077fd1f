// Package docfill generates DOCX documents from a DOCX template driven by
// the rows of an XLSX command sheet. Each configured content column yields
// one output document: rows are applied in order, replacing matching
// paragraphs or appending new ones.
package docfill

import "strings"

// Command identifies the operation a sheet row requests.
type Command int

const (
	CommandUnknown Command = iota
	CommandReplaceParagraph
	CommandAddParagraph
)

// String returns the command token as written in the sheet.
func (c Command) String() string {
	switch c {
	case CommandReplaceParagraph:
		return "replace_paragraph"
	case CommandAddParagraph:
		return "add_paragraph"
	}
	return "unknown"
}

// ParseCommand maps a raw command cell to a Command. The token may appear
// anywhere in the cell text; replace_paragraph wins when both tokens are
// present.
func ParseCommand(raw string) Command {
	switch {
	case strings.Contains(raw, "replace_paragraph"):
		return CommandReplaceParagraph
	case strings.Contains(raw, "add_paragraph"):
		return CommandAddParagraph
	}
	return CommandUnknown
}

// Row is one instruction read from the command sheet. It is built per row,
// applied once, and discarded.
type Row struct {
	Index      int    // 1-based sheet row
	RawCommand string // original command cell text, kept for diagnostics
	Command    Command
	Match      string // substring locating target paragraphs (replace only)
	Content    string // replacement or appended text; may be empty
	Style      string // style name; "" or "None" means no override
}

// StyleOverride returns the style name to apply, if any. The literal token
// "None" means keep the paragraph's style (replace) or use the template
// default (add).
func (r Row) StyleOverride() (string, bool) {
	if r.Style == "" || r.Style == "None" {
		return "", false
	}
	return r.Style, true
}
