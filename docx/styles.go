package docx

import "encoding/xml"

// stylesXML represents the parts of word/styles.xml needed to resolve
// user-facing style names to style IDs.
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a single style definition.
type styleDefXML struct {
	Type    string       `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string       `xml:"styleId,attr"`
	Default string       `xml:"default,attr"`
	Name    styleNameXML `xml:"name"`
}

// styleNameXML represents a style name.
type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// styleSheet resolves paragraph style names to style IDs.
type styleSheet struct {
	byName map[string]string
	byID   map[string]bool
}

// parseStyles reads word/styles.xml. A template without a styles part yields
// an empty sheet: every lookup then fails with StyleNotFoundError.
func parseStyles(data []byte) (*styleSheet, error) {
	s := &styleSheet{
		byName: make(map[string]string),
		byID:   make(map[string]bool),
	}
	if len(data) == 0 {
		return s, nil
	}
	var parsed stylesXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	for _, def := range parsed.Styles {
		if def.Type != "" && def.Type != "paragraph" {
			continue
		}
		if def.Name.Val != "" {
			s.byName[def.Name.Val] = def.StyleID
		}
		s.byID[def.StyleID] = true
	}
	return s, nil
}

// resolve maps a style name to its style ID. Style IDs are accepted as a
// fallback for templates whose display names were localized.
func (s *styleSheet) resolve(name string) (string, error) {
	if id, ok := s.byName[name]; ok {
		return id, nil
	}
	if s.byID[name] {
		return name, nil
	}
	return "", &StyleNotFoundError{Style: name}
}
