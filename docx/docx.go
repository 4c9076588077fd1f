// Package docx provides DOCX (Office Open XML) template loading, paragraph
// mutation and serialization.
//
// A Template holds the raw bytes of a .docx file. Each call to
// Template.Document parses a fresh, independent Document, so mutating one
// generated document never affects another or the template itself.
//
// Mutation works at the XML fragment level: each editable part
// (word/document.xml, word/headerN.xml, word/footerN.xml) is split once into
// verbatim byte chunks and paragraph fragments. Untouched content is written
// back byte-for-byte; only rewritten paragraphs are re-rendered.
package docx

import "fmt"

// Zone identifies which region of the document a paragraph belongs to.
type Zone int

const (
	ZoneBody Zone = iota
	ZoneBodyTable
	ZoneHeader
	ZoneHeaderTable
	ZoneFooter
	ZoneFooterTable
)

// String returns the zone tag used in diagnostics.
func (z Zone) String() string {
	switch z {
	case ZoneBody:
		return "body"
	case ZoneBodyTable:
		return "body.table"
	case ZoneHeader:
		return "header"
	case ZoneHeaderTable:
		return "header.table"
	case ZoneFooter:
		return "footer"
	case ZoneFooterTable:
		return "footer.table"
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// tableZone maps a zone to its table-cell counterpart.
func (z Zone) tableZone() Zone {
	switch z {
	case ZoneBody:
		return ZoneBodyTable
	case ZoneHeader:
		return ZoneHeaderTable
	case ZoneFooter:
		return ZoneFooterTable
	}
	return z
}

// StyleNotFoundError reports a paragraph style name that the template does
// not define.
type StyleNotFoundError struct {
	Style string
}

func (e *StyleNotFoundError) Error() string {
	return fmt.Sprintf("paragraph style %q not defined in template", e.Style)
}
