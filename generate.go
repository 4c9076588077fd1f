package docfill

import (
	"errors"
	"fmt"

	"github.com/docfill/docfill/docx"
)

// Output pairs one configured output filename with the sheet column holding
// its content.
type Output struct {
	Filename      string
	ContentColumn int
}

// Plan describes one generation run: where the fixed command columns live
// and which outputs to produce.
type Plan struct {
	ContentStartRow int
	CommandColumn   int
	StyleColumn     int
	ReplaceColumn   int
	Outputs         []Output
}

// Generator applies command rows from a sheet against copies of a DOCX
// template. A Generator is stateless across runs and safe to reuse.
type Generator struct {
	opts *Options
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.expressions && o.evaluator == nil {
		o.evaluator = NewExpressionEvaluator()
	}
	return &Generator{opts: o}
}

// Generate produces one document per planned output. Each output gets its
// own deep copy of the template, so outputs never observe each other's
// mutations. A failing output does not stop the others; all failures are
// joined into the returned error.
func (g *Generator) Generate(tpl *docx.Template, sheet Sheet, plan Plan) error {
	var errs []error
	for _, out := range plan.Outputs {
		if err := g.generateOne(tpl, sheet, plan, out); err != nil {
			errs = append(errs, fmt.Errorf("generate %q: %w", out.Filename, err))
		}
	}
	return errors.Join(errs...)
}

// generateOne runs all command rows, in row order, against a fresh copy of
// the template and persists the result under a timestamped filename. Row
// order matters: later rows may match text written by earlier rows.
func (g *Generator) generateOne(tpl *docx.Template, sheet Sheet, plan Plan, out Output) error {
	doc, err := tpl.Document()
	if err != nil {
		return err
	}
	doc.SetAuthor(g.opts.identity())

	for r := plan.ContentStartRow; r <= sheet.MaxRow(); r++ {
		rawCommand := sheet.Cell(r, plan.CommandColumn)
		if rawCommand == "" {
			continue
		}
		row := Row{
			Index:      r,
			RawCommand: rawCommand,
			Command:    ParseCommand(rawCommand),
			Match:      sheet.Cell(r, plan.ReplaceColumn),
			Style:      sheet.Cell(r, plan.StyleColumn),
			Content:    sheet.Cell(r, out.ContentColumn),
		}
		if g.opts.expressions {
			content, err := g.expandContent(row, out)
			if err != nil {
				return fmt.Errorf("row %d: %w", r, err)
			}
			row.Content = content
		}
		if err := g.ApplyRow(doc, row); err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
	}

	path := TimestampFilename(out.Filename, g.opts.now())
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := doc.Save(path); err != nil {
		return err
	}
	g.opts.listener.FileWritten(out.Filename, path)
	return nil
}
