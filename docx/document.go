package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	corePart     = "docProps/core.xml"
)

var headerFooterRe = regexp.MustCompile(`^word/(header|footer)(\d*)\.xml$`)

// Template holds the raw bytes of a .docx file. It is immutable; call
// Document to obtain an independent, mutable copy.
type Template struct {
	data []byte
}

// OpenTemplate reads a .docx template from disk.
func OpenTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template %q: %w", path, err)
	}
	t := &Template{data: data}
	// Fail early on files that are not DOCX at all.
	if _, err := t.Document(); err != nil {
		return nil, fmt.Errorf("template %q: %w", path, err)
	}
	return t, nil
}

// NewTemplate creates a template from in-memory .docx bytes.
func NewTemplate(data []byte) *Template {
	return &Template{data: data}
}

// Document parses a fresh Document from the template. Each call returns an
// independent deep copy: mutations never leak between documents.
func (t *Template) Document() (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(t.data), int64(len(t.data)))
	if err != nil {
		return nil, fmt.Errorf("read docx container: %w", err)
	}
	d := &Document{parts: make(map[string]*part)}
	var headerNames, footerNames []string
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %q: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read entry %q: %w", f.Name, err)
		}
		d.entries = append(d.entries, zipEntry{name: f.Name, data: data})
		if m := headerFooterRe.FindStringSubmatch(f.Name); m != nil {
			if m[1] == "header" {
				headerNames = append(headerNames, f.Name)
			} else {
				footerNames = append(footerNames, f.Name)
			}
		}
	}
	body, ok := d.entry(documentPart)
	if !ok {
		return nil, fmt.Errorf("not a DOCX file: missing %s", documentPart)
	}
	if d.body, err = parsePart(documentPart, body, ZoneBody); err != nil {
		return nil, err
	}
	d.parts[documentPart] = d.body

	sortParts(headerNames)
	sortParts(footerNames)
	for _, name := range headerNames {
		data, _ := d.entry(name)
		p, err := parsePart(name, data, ZoneHeader)
		if err != nil {
			return nil, err
		}
		d.headers = append(d.headers, p)
		d.parts[name] = p
	}
	for _, name := range footerNames {
		data, _ := d.entry(name)
		p, err := parsePart(name, data, ZoneFooter)
		if err != nil {
			return nil, err
		}
		d.footers = append(d.footers, p)
		d.parts[name] = p
	}

	stylesData, _ := d.entry(stylesPart)
	if d.styles, err = parseStyles(stylesData); err != nil {
		return nil, fmt.Errorf("parse %s: %w", stylesPart, err)
	}
	return d, nil
}

// zipEntry is one file inside the DOCX container.
type zipEntry struct {
	name string
	data []byte
}

// Document is a mutable in-memory DOCX document, exclusively owned by one
// generation pass.
type Document struct {
	entries []zipEntry
	parts   map[string]*part
	body    *part
	headers []*part
	footers []*part
	styles  *styleSheet
	author  string
}

func (d *Document) entry(name string) ([]byte, bool) {
	for _, e := range d.entries {
		if e.name == name {
			return e.data, true
		}
	}
	return nil, false
}

// Paragraphs returns handles on every editable paragraph in traversal order:
// body paragraphs, body table-cell paragraphs, then per section the header
// paragraphs, header table-cell paragraphs, footer paragraphs and footer
// table-cell paragraphs. Handles stay valid while paragraphs are mutated.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	out = appendZoned(out, d.body, ZoneBody)
	out = append(out, d.body.appended...)
	out = appendZoned(out, d.body, ZoneBodyTable)
	sections := len(d.headers)
	if len(d.footers) > sections {
		sections = len(d.footers)
	}
	for i := 0; i < sections; i++ {
		if i < len(d.headers) {
			out = appendZoned(out, d.headers[i], ZoneHeader)
			out = appendZoned(out, d.headers[i], ZoneHeaderTable)
		}
		if i < len(d.footers) {
			out = appendZoned(out, d.footers[i], ZoneFooter)
			out = appendZoned(out, d.footers[i], ZoneFooterTable)
		}
	}
	return out
}

func appendZoned(dst []*Paragraph, p *part, zone Zone) []*Paragraph {
	for _, para := range p.paragraphs() {
		if para.zone == zone {
			dst = append(dst, para)
		}
	}
	return dst
}

// AddParagraph appends a paragraph with the given text to the end of the
// document body. styleID selects a paragraph style; empty means the
// template's default style.
func (d *Document) AddParagraph(text, styleID string) *Paragraph {
	p := newEmptyParagraph(text, styleID)
	d.body.appended = append(d.body.appended, p)
	return p
}

// StyleID resolves a paragraph style name to the style ID used on the wire.
// Returns a *StyleNotFoundError when the template does not define the style.
func (d *Document) StyleID(name string) (string, error) {
	return d.styles.resolve(name)
}

// SetAuthor sets the document author (dc:creator in docProps/core.xml).
func (d *Document) SetAuthor(name string) {
	d.author = name
}

// Save serializes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Write serializes the document. Entries that were never parsed or mutated
// are copied through byte-for-byte.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, e := range d.entries {
		data := e.data
		if p, ok := d.parts[e.name]; ok {
			data = p.render()
		} else if e.name == corePart && d.author != "" {
			data = setCreator(data, d.author)
		}
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("write entry %q: %w", e.name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write entry %q: %w", e.name, err)
		}
	}
	return zw.Close()
}

// setCreator replaces the dc:creator element in docProps/core.xml, adding
// one when the template has none.
func setCreator(data []byte, author string) []byte {
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(author))
	el := "<dc:creator>" + esc.String() + "</dc:creator>"

	start := bytes.Index(data, []byte("<dc:creator"))
	if start >= 0 {
		end := bytes.Index(data[start:], []byte("</dc:creator>"))
		if end < 0 {
			return data
		}
		end = start + end + len("</dc:creator>")
		out := make([]byte, 0, len(data)+len(el))
		out = append(out, data[:start]...)
		out = append(out, el...)
		out = append(out, data[end:]...)
		return out
	}
	close := bytes.LastIndex(data, []byte("</cp:coreProperties>"))
	if close < 0 {
		return data
	}
	out := make([]byte, 0, len(data)+len(el))
	out = append(out, data[:close]...)
	out = append(out, el...)
	out = append(out, data[close:]...)
	return out
}

// sortParts orders header/footer part names by their numeric suffix, so
// header2.xml sorts before header10.xml.
func sortParts(names []string) {
	sort.Slice(names, func(i, j int) bool {
		ni := partNumber(names[i])
		nj := partNumber(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
}

func partNumber(name string) int {
	m := headerFooterRe.FindStringSubmatch(name)
	if m == nil || m[2] == "" {
		return 0
	}
	n, _ := strconv.Atoi(m[2])
	return n
}
