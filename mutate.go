package docfill

import (
	"strings"

	"github.com/docfill/docfill/docx"
)

// ApplyRow applies one sheet row against the document. Unknown commands are
// reported to the listener and skipped; a missing style is an error that
// aborts the current output file.
func (g *Generator) ApplyRow(doc *docx.Document, row Row) error {
	switch row.Command {
	case CommandReplaceParagraph:
		return g.applyReplace(doc, row)
	case CommandAddParagraph:
		return g.applyAdd(doc, row)
	default:
		g.opts.listener.UnknownCommand(row)
		return nil
	}
}

// applyReplace rewrites every paragraph whose text contains the row's match
// string. The whole paragraph is replaced with the row's content; an empty
// content clears it. Traversal covers the body, body tables and every
// section's header and footer, including their tables.
func (g *Generator) applyReplace(doc *docx.Document, row Row) error {
	// An empty match string would match every paragraph.
	if row.Match == "" {
		return nil
	}
	styleID, err := g.resolveStyle(doc, row)
	if err != nil {
		return err
	}
	for _, p := range doc.Paragraphs() {
		old := p.Text()
		if !strings.Contains(old, row.Match) {
			continue
		}
		p.SetText(row.Content)
		g.opts.listener.Replaced(row, p.Zone(), old, row.Content)
		if styleID != "" {
			p.SetStyle(styleID)
			g.opts.listener.StyleSet(row, p.Zone(), row.Style)
		}
	}
	return nil
}

// applyAdd appends a paragraph with the row's content to the document body.
// Rows without content are a no-op.
func (g *Generator) applyAdd(doc *docx.Document, row Row) error {
	if row.Content == "" {
		return nil
	}
	styleID, err := g.resolveStyle(doc, row)
	if err != nil {
		return err
	}
	doc.AddParagraph(row.Content, styleID)
	g.opts.listener.ParagraphAdded(row, row.Content, row.Style)
	return nil
}

// resolveStyle maps the row's style override to a style ID. Resolution
// happens up front so a misspelled style fails the file even when no
// paragraph matches.
func (g *Generator) resolveStyle(doc *docx.Document, row Row) (string, error) {
	name, ok := row.StyleOverride()
	if !ok {
		return "", nil
	}
	return doc.StyleID(name)
}
