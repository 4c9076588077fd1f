// Package config loads the TOML configuration that drives a generation run.
// When the configuration file does not exist, a commented default is written
// in its place so a first run bootstraps a working example to edit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFilename is the conventional configuration filename looked up in
// the working directory.
const DefaultFilename = "docfill.toml"

// ErrDefaultWritten signals that no configuration existed and a commented
// default was written for the user to edit. The run cannot continue.
var ErrDefaultWritten = errors.New("default configuration written")

// Config is the full configuration document.
type Config struct {
	SourceData    SourceData    `toml:"sourceData"`
	Template      Template      `toml:"template"`
	GeneratedData GeneratedData `toml:"generatedData"`
}

// SourceData locates the command sheet and its fixed columns.
type SourceData struct {
	Filename         string `toml:"filename"`
	ContentSheetname string `toml:"contentSheetname"`
	ContentStartRow  int    `toml:"contentStartRow"`
	CommandColumn    int    `toml:"commandColumn"`
	StyleColumn      int    `toml:"styleColumn"`
	ReplaceColumn    int    `toml:"replaceColumn"`
	ContentColumns   []int  `toml:"contentColumns"`
}

// Template names the DOCX template file.
type Template struct {
	Filename string `toml:"filename"`
}

// GeneratedData names the output files, one per content column, in the same
// order.
type GeneratedData struct {
	Filenames []string `toml:"filenames"`
}

// Load reads the configuration at path. A missing file triggers the
// first-run bootstrap: the default configuration is written there and the
// returned error wraps ErrDefaultWritten.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if werr := WriteDefault(path); werr != nil {
				return Config{}, fmt.Errorf("write default configuration %q: %w", path, werr)
			}
			return Config{}, fmt.Errorf("%w to %q: edit it and run again", ErrDefaultWritten, path)
		}
		return Config{}, fmt.Errorf("read configuration %q: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("configuration %q: line %d column %d: %w", path, row, col, err)
		}
		return Config{}, fmt.Errorf("configuration %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for fatal structural problems before
// any file is touched.
func (c Config) Validate() error {
	var errs []error
	if c.SourceData.Filename == "" {
		errs = append(errs, errors.New("sourceData.filename is required"))
	}
	if c.SourceData.ContentSheetname == "" {
		errs = append(errs, errors.New("sourceData.contentSheetname is required"))
	}
	if c.Template.Filename == "" {
		errs = append(errs, errors.New("template.filename is required"))
	}
	if c.SourceData.ContentStartRow < 1 {
		errs = append(errs, fmt.Errorf("sourceData.contentStartRow must be >= 1, got %d", c.SourceData.ContentStartRow))
	}
	for _, col := range []struct {
		name string
		val  int
	}{
		{"commandColumn", c.SourceData.CommandColumn},
		{"styleColumn", c.SourceData.StyleColumn},
		{"replaceColumn", c.SourceData.ReplaceColumn},
	} {
		if col.val < 1 {
			errs = append(errs, fmt.Errorf("sourceData.%s must be >= 1, got %d", col.name, col.val))
		}
	}
	for i, col := range c.SourceData.ContentColumns {
		if col < 1 {
			errs = append(errs, fmt.Errorf("sourceData.contentColumns[%d] must be >= 1, got %d", i, col))
		}
	}
	if len(c.SourceData.ContentColumns) == 0 {
		errs = append(errs, errors.New("sourceData.contentColumns must not be empty"))
	}
	// Columns and filenames are paired positionally; a length mismatch
	// would silently drop outputs.
	if len(c.SourceData.ContentColumns) != len(c.GeneratedData.Filenames) {
		errs = append(errs, fmt.Errorf(
			"sourceData.contentColumns (%d entries) and generatedData.filenames (%d entries) must have the same length and order",
			len(c.SourceData.ContentColumns), len(c.GeneratedData.Filenames)))
	}
	return errors.Join(errs...)
}

// WriteDefault writes the commented default configuration to path, creating
// parent directories as needed. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}

// defaultConfig mirrors the shape users are expected to adapt on first run.
const defaultConfig = `# This is the TOML formatted configuration file for docfill.
# Please use these autogenerated defaults as an example and adapt them to
# your needs.

[sourceData]
filename         = 'sourceDataExample.xlsx'
contentSheetname = "Content"
contentStartRow  = 2
commandColumn    = 1
styleColumn      = 2
replaceColumn    = 3

# "contentColumns" must correspond to "generatedData.filenames":
# identical number of elements, same order.
contentColumns = [
    4,
    5,
    6,
]

[template]
filename = "templateExample.docx"

[generatedData]
# "filenames" must correspond to "sourceData.contentColumns":
# identical number of elements, same order.
filenames = [
    "generatedDataFile1.docx",
    "generatedDataFile2.docx",
    "generatedDataFile3.docx",
]
`
