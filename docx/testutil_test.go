package docx

import (
	"archive/zip"
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

const defaultStyles = xmlHeader +
	`<w:styles ` + wordNS + `>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Signature"><w:name w:val="Signature"/></w:style>` +
	`<w:style w:type="character" w:styleId="Emphasis"><w:name w:val="Emphasis"/></w:style>` +
	`</w:styles>`

const defaultCore = xmlHeader +
	`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/">` +
	`<dc:title>Fixture</dc:title><dc:creator>template author</dc:creator>` +
	`</cp:coreProperties>`

// para renders a plain paragraph with a single run.
func para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

// styledPara renders a paragraph carrying a pStyle.
func styledPara(styleID, text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

// table renders a one-row table with one paragraph per cell.
func table(cellTexts ...string) string {
	var b bytes.Buffer
	b.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/></w:tblPr><w:tr>`)
	for _, text := range cellTexts {
		b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>`)
		b.WriteString(para(text))
		b.WriteString(`</w:tc>`)
	}
	b.WriteString(`</w:tr></w:tbl>`)
	return b.String()
}

// documentXML wraps body content in the document/body envelope with a
// trailing body-level sectPr.
func documentXML(body string) string {
	return xmlHeader +
		`<w:document ` + wordNS + `><w:body>` + body +
		`<w:sectPr><w:headerReference w:type="default" r:id="rId6" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/></w:sectPr>` +
		`</w:body></w:document>`
}

func headerXML(content string) string {
	return xmlHeader + `<w:hdr ` + wordNS + `>` + content + `</w:hdr>`
}

func footerXML(content string) string {
	return xmlHeader + `<w:ftr ` + wordNS + `>` + content + `</w:ftr>`
}

// buildDocx assembles a minimal DOCX container from part contents.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	if parts == nil {
		parts = make(map[string]string)
	}
	if _, ok := parts[documentPart]; !ok {
		parts[documentPart] = documentXML(para("fixture"))
	}
	if _, ok := parts["[Content_Types].xml"]; !ok {
		parts["[Content_Types].xml"] = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`
	}
	if _, ok := parts[stylesPart]; !ok {
		parts[stylesPart] = defaultStyles
	}
	if _, ok := parts[corePart]; !ok {
		parts[corePart] = defaultCore
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// [Content_Types].xml first, then deterministic order for the rest.
	names := []string{"[Content_Types].xml"}
	for name := range parts {
		if name != "[Content_Types].xml" {
			names = append(names, name)
		}
	}
	sort.Strings(names[1:])
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(parts[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// openFixture builds a template and parses a document from it.
func openFixture(t *testing.T, parts map[string]string) *Document {
	t.Helper()
	doc, err := NewTemplate(buildDocx(t, parts)).Document()
	require.NoError(t, err)
	return doc
}

// texts returns the visible text of every paragraph in traversal order.
func texts(doc *Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}
