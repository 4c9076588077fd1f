package docx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// fragment is one piece of an editable XML part: either raw bytes copied
// through verbatim, or a paragraph that may be rewritten.
type fragment struct {
	raw  []byte
	para *Paragraph
}

// part is one editable XML file inside the DOCX container, decomposed into
// fragments. Reassembling an unmodified part reproduces the input bytes
// exactly.
type part struct {
	name     string
	frags    []fragment
	appended []*Paragraph // body only: paragraphs added at the end
}

// paragraphs returns the part's original paragraphs in document order.
func (p *part) paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, f := range p.frags {
		if f.para != nil {
			out = append(out, f.para)
		}
	}
	return out
}

// parsePart splits XML data into raw chunks and paragraph fragments.
// zone is the zone for paragraphs outside tables; paragraphs found inside a
// <w:tbl> element get the corresponding table zone. Paragraphs nested inside
// other paragraphs (text boxes) stay part of their enclosing paragraph.
func parsePart(name string, data []byte, zone Zone) (*part, error) {
	p := &part{name: name}
	tblDepth := 0
	last := 0
	i := 0
	for i < len(data) {
		lt := bytes.IndexByte(data[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		switch {
		case bytes.HasPrefix(data[pos:], []byte("</w:tbl>")):
			tblDepth--
			i = pos + len("</w:tbl>")
		case isOpenTag(data[pos:], "w:tbl"):
			end, selfClosing := startTagEnd(data, pos)
			if end < 0 {
				return nil, fmt.Errorf("%s: unterminated <w:tbl> tag", name)
			}
			if !selfClosing {
				tblDepth++
			}
			i = end
		case isOpenTag(data[pos:], "w:p"):
			end, err := paragraphEnd(data, pos)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			pz := zone
			if tblDepth > 0 {
				pz = zone.tableZone()
			}
			if last < pos {
				p.frags = append(p.frags, fragment{raw: data[last:pos]})
			}
			p.frags = append(p.frags, fragment{para: newParagraph(data[pos:end], pz)})
			last = end
			i = end
		default:
			i = pos + 1
		}
	}
	if last < len(data) {
		p.frags = append(p.frags, fragment{raw: data[last:]})
	}
	return p, nil
}

// render reassembles the part, inserting any appended paragraphs before the
// body-level <w:sectPr> (or before </w:body> when the template has none).
func (p *part) render() []byte {
	var buf bytes.Buffer
	for _, f := range p.frags {
		if f.para != nil {
			buf.Write(f.para.render())
			continue
		}
		buf.Write(f.raw)
	}
	if len(p.appended) == 0 {
		return buf.Bytes()
	}
	var add bytes.Buffer
	for _, para := range p.appended {
		add.Write(para.render())
	}
	out := buf.Bytes()
	insert := bytes.LastIndex(out, []byte("<w:sectPr"))
	if insert < 0 {
		insert = bytes.LastIndex(out, []byte("</w:body>"))
	}
	if insert < 0 {
		insert = len(out)
	}
	merged := make([]byte, 0, len(out)+add.Len())
	merged = append(merged, out[:insert]...)
	merged = append(merged, add.Bytes()...)
	merged = append(merged, out[insert:]...)
	return merged
}

// isOpenTag reports whether data starts with "<name" followed by a tag-name
// delimiter, so "<w:p" does not match "<w:pPr".
func isOpenTag(data []byte, name string) bool {
	if len(data) < len(name)+2 || data[0] != '<' {
		return false
	}
	if !bytes.HasPrefix(data[1:], []byte(name)) {
		return false
	}
	switch data[1+len(name)] {
	case '>', '/', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// startTagEnd returns the index just past the '>' closing the start tag that
// begins at pos, and whether the tag is self-closing. Returns -1 if the tag
// never closes.
func startTagEnd(data []byte, pos int) (int, bool) {
	gt := bytes.IndexByte(data[pos:], '>')
	if gt < 0 {
		return -1, false
	}
	end := pos + gt + 1
	return end, data[end-2] == '/'
}

// paragraphEnd returns the index just past the matching </w:p> for the
// paragraph starting at pos. Nested paragraphs (inside text box content) are
// tracked so the outer paragraph is treated as one unit.
func paragraphEnd(data []byte, pos int) (int, error) {
	end, selfClosing := startTagEnd(data, pos)
	if end < 0 {
		return 0, fmt.Errorf("unterminated <w:p> tag at offset %d", pos)
	}
	if selfClosing {
		return end, nil
	}
	depth := 1
	i := end
	for depth > 0 {
		lt := bytes.IndexByte(data[i:], '<')
		if lt < 0 {
			return 0, fmt.Errorf("missing </w:p> for paragraph at offset %d", pos)
		}
		p := i + lt
		switch {
		case bytes.HasPrefix(data[p:], []byte("</w:p>")):
			depth--
			i = p + len("</w:p>")
		case isOpenTag(data[p:], "w:p"):
			var sc bool
			i, sc = startTagEnd(data, p)
			if i < 0 {
				return 0, fmt.Errorf("unterminated nested <w:p> tag at offset %d", p)
			}
			if !sc {
				depth++
			}
		default:
			i = p + 1
		}
	}
	return i, nil
}

// xmlUnescape resolves the predefined XML entities and numeric character
// references found in w:t content.
func xmlUnescape(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 {
			b.WriteString(s[i:])
			break
		}
		entity := s[i+1 : i+semi]
		switch {
		case entity == "amp":
			b.WriteByte('&')
		case entity == "lt":
			b.WriteByte('<')
		case entity == "gt":
			b.WriteByte('>')
		case entity == "quot":
			b.WriteByte('"')
		case entity == "apos":
			b.WriteByte('\'')
		case strings.HasPrefix(entity, "#x") || strings.HasPrefix(entity, "#X"):
			if n, err := strconv.ParseInt(entity[2:], 16, 32); err == nil {
				b.WriteRune(rune(n))
			} else {
				b.WriteString(s[i : i+semi+1])
			}
		case strings.HasPrefix(entity, "#"):
			if n, err := strconv.ParseInt(entity[1:], 10, 32); err == nil {
				b.WriteRune(rune(n))
			} else {
				b.WriteString(s[i : i+semi+1])
			}
		default:
			b.WriteString(s[i : i+semi+1])
		}
		i += semi + 1
	}
	return b.String()
}
