// Command docfill generates DOCX files from XLSX content columns.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/docfill/docfill"
	"github.com/docfill/docfill/config"
	"github.com/docfill/docfill/docx"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var expressions bool

var rootCmd = &cobra.Command{
	Use:   "docfill [config.toml]",
	Short: "Generate DOCX files from XLSX content columns",
	Long: `docfill reads an XLSX sheet whose rows describe document edits
(replace_paragraph, add_paragraph) and applies them to copies of a DOCX
template, producing one timestamped output file per configured content
column.

Without arguments the configuration is read from ` + config.DefaultFilename + ` in the
working directory. On the first run a commented default configuration is
written there for you to edit.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&expressions, "expressions", false,
		"evaluate ${...} expressions in content cells (env: user, file, row, now)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	configPath := config.DefaultFilename
	if len(args) == 1 {
		configPath = args[0]
		fmt.Fprintf(out, "Using alternate configuration file %q\n", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrDefaultWritten) {
			fmt.Fprintf(out, "A default configuration was written to %q.\n", configPath)
			fmt.Fprintln(out, "Adapt it to your needs and run docfill again.")
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration %q: %w", configPath, err)
	}

	printConfig(out, cfg)

	wb, err := docfill.OpenWorkbook(cfg.SourceData.Filename)
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := printInventory(out, wb, cfg.SourceData.ContentSheetname); err != nil {
		return err
	}

	sheet, err := wb.Sheet(cfg.SourceData.ContentSheetname)
	if err != nil {
		return err
	}

	tpl, err := docx.OpenTemplate(cfg.Template.Filename)
	if err != nil {
		return err
	}

	plan := docfill.Plan{
		ContentStartRow: cfg.SourceData.ContentStartRow,
		CommandColumn:   cfg.SourceData.CommandColumn,
		StyleColumn:     cfg.SourceData.StyleColumn,
		ReplaceColumn:   cfg.SourceData.ReplaceColumn,
	}
	for i, col := range cfg.SourceData.ContentColumns {
		plan.Outputs = append(plan.Outputs, docfill.Output{
			Filename:      cfg.GeneratedData.Filenames[i],
			ContentColumn: col,
		})
	}

	gen := docfill.NewGenerator(docfill.WithExpressions(expressions))
	return gen.Generate(tpl, sheet, plan)
}

func printConfig(out io.Writer, cfg config.Config) {
	fmt.Fprintf(out, "Configuration:\n")
	fmt.Fprintf(out, "  source data file          %q\n", cfg.SourceData.Filename)
	fmt.Fprintf(out, "  from sheet                %q\n", cfg.SourceData.ContentSheetname)
	fmt.Fprintf(out, "  starting at row           %d\n", cfg.SourceData.ContentStartRow)
	fmt.Fprintf(out, "  using command from column %d\n", cfg.SourceData.CommandColumn)
	fmt.Fprintf(out, "  using style from column   %d\n", cfg.SourceData.StyleColumn)
	fmt.Fprintf(out, "  using replace from column %d\n", cfg.SourceData.ReplaceColumn)
	fmt.Fprintf(out, "  using content columns     %v\n", cfg.SourceData.ContentColumns)
	fmt.Fprintf(out, "  using template file       %q\n", cfg.Template.Filename)
	fmt.Fprintf(out, "  to generate files         %v\n", cfg.GeneratedData.Filenames)
}

func printInventory(out io.Writer, wb *docfill.Workbook, contentSheet string) error {
	infos, err := wb.Describe()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Available worksheets:")
	for _, info := range infos {
		marker := ""
		if info.Name == contentSheet {
			marker = "  <- content sheet"
		}
		fmt.Fprintf(out, "  %s\tmax_row: %d\tmax_column: %d%s\n", info.Name, info.MaxRow, info.MaxCol, marker)
	}
	return nil
}
