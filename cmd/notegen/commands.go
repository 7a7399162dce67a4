package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/locvowork/erp_office_note/internal/checklist"
	"github.com/locvowork/erp_office_note/internal/config"
	"github.com/locvowork/erp_office_note/internal/logger"
	"github.com/locvowork/erp_office_note/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "notegen",
		Short:        "Check ERP checklist workbooks and generate office notes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvConfig(); err != nil {
				return err
			}
			logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
			return nil
		},
	}
	root.AddCommand(newCheckCmd(), newRenderCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	var layoutPath string
	cmd := &cobra.Command{
		Use:   "check <workbook.xlsx>",
		Short: "Print the deficiencies listed in a checklist workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService("", layoutPath)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			list, err := svc.Deficiencies(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			return printDeficiencies(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&layoutPath, "layout", "", "workbook layout YAML (default: built-in layout)")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var templatePath, outPath, layoutPath string
	cmd := &cobra.Command{
		Use:   "render <workbook.xlsx>",
		Short: "Generate the office note of a checklist workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if templatePath == "" {
				templatePath = config.DefaultEnvConfig.TEMPLATE_PATH
			}
			if outPath == "" {
				outPath = config.DefaultEnvConfig.OUTPUT_FILENAME
			}
			svc, err := newService(templatePath, layoutPath)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			data, err := svc.Generate(cmd.Context(), f)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Office note written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "office note template (default: TEMPLATE_PATH)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: OUTPUT_FILENAME)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "workbook layout YAML (default: built-in layout)")
	return cmd
}

func newService(templatePath, layoutPath string) (service.OfficeNoteService, error) {
	if layoutPath == "" {
		layoutPath = config.DefaultEnvConfig.LAYOUT_PATH
	}
	layout, err := checklist.LoadLayout(layoutPath)
	if err != nil {
		return nil, err
	}
	return service.NewOfficeNoteService(service.Options{
		TemplatePath: templatePath,
		Filename:     config.DefaultEnvConfig.OUTPUT_FILENAME,
		Layout:       layout,
	}), nil
}

func printDeficiencies(w io.Writer, list []string) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No compliance issues detected!")
		return err
	}
	if _, err := fmt.Fprintf(w, "Deficiencies and Non-compliances found (%d)\n", len(list)); err != nil {
		return err
	}
	for i, d := range list {
		if _, err := fmt.Fprintf(w, "%3d. %s\n", i+1, d); err != nil {
			return err
		}
	}
	return nil
}
