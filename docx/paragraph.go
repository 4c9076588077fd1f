package docx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Paragraph is a stable handle on one <w:p> element. Handles stay valid
// across mutations of any paragraph in the document: rewriting text never
// moves or re-parses neighbouring fragments.
type Paragraph struct {
	zone     Zone
	startTag []byte // "<w:p>" or "<w:p attrs...>"
	pPr      []byte // original <w:pPr>...</w:pPr> block, nil if absent
	inner    []byte // run content following pPr
	raw      []byte // original bytes, written back verbatim when untouched

	text     string // extracted text, cached
	textOK   bool
	newText  *string
	newStyle string // style ID override, "" means keep
}

// newParagraph builds a handle from the raw bytes of a <w:p> element.
func newParagraph(raw []byte, zone Zone) *Paragraph {
	p := &Paragraph{zone: zone, raw: raw}
	if raw[len(raw)-2] == '/' { // self-closing <w:p/>
		p.startTag = append(append([]byte{}, raw[:len(raw)-2]...), '>')
		return p
	}
	gt := bytes.IndexByte(raw, '>')
	p.startTag = raw[:gt+1]
	body := raw[gt+1 : len(raw)-len("</w:p>")]
	if isOpenTag(body, "w:pPr") {
		end, selfClosing := startTagEnd(body, 0)
		if !selfClosing {
			if close := bytes.Index(body, []byte("</w:pPr>")); close >= 0 {
				end = close + len("</w:pPr>")
			}
		}
		if end > 0 {
			p.pPr = body[:end]
			body = body[end:]
		}
	}
	p.inner = body
	return p
}

// newEmptyParagraph builds a paragraph to be appended to the document body.
func newEmptyParagraph(text, styleID string) *Paragraph {
	p := &Paragraph{
		zone:     ZoneBody,
		startTag: []byte("<w:p>"),
		newStyle: styleID,
	}
	p.newText = &text
	return p
}

// Zone reports which document region the paragraph lives in.
func (p *Paragraph) Zone() Zone { return p.zone }

// Text returns the paragraph's current visible text: the concatenated run
// text with tabs as "\t" and line/page breaks as "\n".
func (p *Paragraph) Text() string {
	if p.newText != nil {
		return *p.newText
	}
	if !p.textOK {
		p.text = runText(p.inner)
		p.textOK = true
	}
	return p.text
}

// SetText replaces the paragraph's entire content with a single run holding
// text. Paragraph-level properties (style, numbering, spacing) are kept; run
// formatting from the original runs is dropped.
func (p *Paragraph) SetText(text string) {
	p.newText = &text
}

// SetStyle sets the paragraph style to the given style ID.
func (p *Paragraph) SetStyle(styleID string) {
	p.newStyle = styleID
}

// render produces the paragraph's final bytes.
func (p *Paragraph) render() []byte {
	if p.newText == nil && p.newStyle == "" {
		return p.raw
	}
	pPr := p.pPr
	if p.newStyle != "" {
		pPr = rewriteStyle(pPr, p.newStyle)
	}
	var buf bytes.Buffer
	buf.Write(p.startTag)
	buf.Write(pPr)
	if p.newText == nil {
		buf.Write(p.inner)
	} else if *p.newText != "" {
		buf.WriteString(`<w:r><w:t xml:space="preserve">`)
		xml.EscapeText(&buf, []byte(*p.newText))
		buf.WriteString(`</w:t></w:r>`)
	}
	buf.WriteString("</w:p>")
	return buf.Bytes()
}

// rewriteStyle returns a <w:pPr> block whose w:pStyle references styleID,
// preserving the other paragraph properties.
func rewriteStyle(pPr []byte, styleID string) []byte {
	var id bytes.Buffer
	xml.EscapeText(&id, []byte(styleID))
	el := `<w:pStyle w:val="` + id.String() + `"/>`

	if len(pPr) == 0 {
		return []byte("<w:pPr>" + el + "</w:pPr>")
	}
	if pPr[len(pPr)-2] == '/' && !bytes.Contains(pPr, []byte("</w:pPr>")) {
		// self-closing <w:pPr/>
		return []byte("<w:pPr>" + el + "</w:pPr>")
	}
	if start := bytes.Index(pPr, []byte("<w:pStyle")); start >= 0 {
		end := start + bytes.IndexByte(pPr[start:], '>') + 1
		out := make([]byte, 0, len(pPr)+len(el))
		out = append(out, pPr[:start]...)
		out = append(out, el...)
		out = append(out, pPr[end:]...)
		return out
	}
	// w:pStyle must be the first child of w:pPr
	gt := bytes.IndexByte(pPr, '>')
	out := make([]byte, 0, len(pPr)+len(el))
	out = append(out, pPr[:gt+1]...)
	out = append(out, el...)
	out = append(out, pPr[gt+1:]...)
	return out
}

// runText extracts visible text from run content: <w:t> values with XML
// entities resolved, <w:tab/> as "\t", <w:br/> and <w:cr/> as "\n".
func runText(inner []byte) string {
	var b strings.Builder
	i := 0
	for i < len(inner) {
		lt := bytes.IndexByte(inner[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		switch {
		case isOpenTag(inner[pos:], "w:t"):
			end, selfClosing := startTagEnd(inner, pos)
			if end < 0 {
				return b.String()
			}
			if selfClosing {
				i = end
				break
			}
			close := bytes.Index(inner[end:], []byte("</w:t>"))
			if close < 0 {
				return b.String()
			}
			b.WriteString(xmlUnescape(string(inner[end : end+close])))
			i = end + close + len("</w:t>")
		case isOpenTag(inner[pos:], "w:tab"):
			b.WriteByte('\t')
			if i, _ = startTagEnd(inner, pos); i < 0 {
				return b.String()
			}
		case isOpenTag(inner[pos:], "w:br"), isOpenTag(inner[pos:], "w:cr"):
			b.WriteByte('\n')
			if i, _ = startTagEnd(inner, pos); i < 0 {
				return b.String()
			}
		default:
			i = pos + 1
		}
	}
	return b.String()
}
