package docfill

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/docx"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

const fixtureStyles = `<w:styles ` + wordNS + `>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Signature"><w:name w:val="Signature"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>` +
	`</w:styles>`

const fixtureCore = `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:creator>template author</dc:creator></cp:coreProperties>`

func para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func table(cellTexts ...string) string {
	var b bytes.Buffer
	b.WriteString(`<w:tbl><w:tr>`)
	for _, text := range cellTexts {
		b.WriteString(`<w:tc>` + para(text) + `</w:tc>`)
	}
	b.WriteString(`</w:tr></w:tbl>`)
	return b.String()
}

// makeTemplate builds an in-memory DOCX template whose body holds the given
// content, plus one header and footer section.
func makeTemplate(t *testing.T, body, header, footer string) *docx.Template {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   `<w:document ` + wordNS + `><w:body>` + body + `<w:sectPr/></w:body></w:document>`,
		"word/styles.xml":     fixtureStyles,
		"docProps/core.xml":   fixtureCore,
	}
	if header != "" {
		parts["word/header1.xml"] = `<w:hdr ` + wordNS + `>` + header + `</w:hdr>`
	}
	if footer != "" {
		parts["word/footer1.xml"] = `<w:ftr ` + wordNS + `>` + footer + `</w:ftr>`
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/styles.xml", "word/header1.xml", "word/footer1.xml", "docProps/core.xml"} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return docx.NewTemplate(buf.Bytes())
}

// newDoc parses a fresh document from a one-off template.
func newDoc(t *testing.T, body string) *docx.Document {
	t.Helper()
	doc, err := makeTemplate(t, body, "", "").Document()
	require.NoError(t, err)
	return doc
}

func docTexts(doc *docx.Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

// readZipPart returns one entry of a serialized DOCX file as a string.
func readZipPart(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found in %s", name, path)
	return ""
}

// recordingListener captures every notification for assertions.
type recordingListener struct {
	replaced []replacement
	styled   []string
	added    []string
	unknown  []string
	written  []string
}

type replacement struct {
	zone    docx.Zone
	old     string
	new     string
	rowIdx  int
}

func (r *recordingListener) Replaced(row Row, zone docx.Zone, oldText, newText string) {
	r.replaced = append(r.replaced, replacement{zone: zone, old: oldText, new: newText, rowIdx: row.Index})
}

func (r *recordingListener) StyleSet(row Row, zone docx.Zone, style string) {
	r.styled = append(r.styled, style)
}

func (r *recordingListener) ParagraphAdded(row Row, text, style string) {
	r.added = append(r.added, text)
}

func (r *recordingListener) UnknownCommand(row Row) {
	r.unknown = append(r.unknown, row.RawCommand)
}

func (r *recordingListener) FileWritten(configured, path string) {
	r.written = append(r.written, path)
}
