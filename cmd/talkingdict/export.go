package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/export"
)

func newExportCommand() *cobra.Command {
	var formatName string
	var output string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export the sorted dictionary as csv, json, yaml or pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			idx, err := loadIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			entries := idx.SortedEntries()
			siteConfig := idx.Snapshot().SiteConfig

			if format == export.FormatPDF {
				if output == "" {
					output = filepath.Join(cfg.Export.OutputDir,
						dictionary.Slug(siteConfig.L1.Name)+".pdf")
				}
				path, err := export.WritePDF(output, cfg.Export.TemplateFile, siteConfig, entries)
				if err != nil {
					return fmt.Errorf("export.WritePDF() > %w", err)
				}
				fmt.Printf("wrote %s\n", path)
				return nil
			}

			out := os.Stdout
			if output != "" {
				if dir := filepath.Dir(output); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
					}
				}
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", output, err)
				}
				defer func() {
					_ = file.Close()
				}()
				out = file
			}

			switch format {
			case export.FormatCSV:
				err = export.WriteCSV(out, entries)
			case export.FormatJSON:
				err = export.WriteJSON(out, entries)
			case export.FormatYAML:
				err = export.WriteYAML(out, entries)
			}
			if err != nil {
				return fmt.Errorf("export %s > %w", format, err)
			}
			return nil
		},
	}
	command.Flags().StringVar(&formatName, "format", "csv", "export format: csv, json, yaml or pdf")
	command.Flags().StringVar(&output, "output", "", "output file (default stdout, or the export directory for pdf)")

	return command
}
