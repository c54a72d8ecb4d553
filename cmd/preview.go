package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/satyammistari/sql2migration/internal/reporter"
	"github.com/satyammistari/sql2migration/internal/schema"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.sql>",
	Short: "Show the operations a SQL dump converts to (nothing is written)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("format", "f", "text", "output format: text, json or yaml")
	previewCmd.Flags().Bool("render", false, "also print the rendered migrations (text format)")
}

type previewDoc struct {
	Source      string               `json:"source" yaml:"source"`
	Set         *schema.OperationSet `json:"set" yaml:"set"`
	Diagnostics []schema.Diagnostic  `json:"diagnostics" yaml:"diagnostics"`
	Files       []string             `json:"files" yaml:"files"`
}

func runPreview(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	render, _ := cmd.Flags().GetBool("render")

	conv, err := convertFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch format {
	case "json", "yaml":
		doc := previewDoc{Source: conv.Path, Set: conv.Result.Set, Diagnostics: conv.Result.Diagnostics}
		for _, f := range conv.Files {
			doc.Files = append(doc.Files, f.Name)
		}
		return encodePreview(out, format, doc)
	case "text":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}

	reporter.Diagnostics(conv.Result.Diagnostics)
	rows := make([][]string, 0, len(conv.Result.Set.Operations))
	for i, op := range conv.Result.Set.Operations {
		rows = append(rows, []string{strconv.Itoa(i + 1), op.Kind.String(), op.Subject(), describe(op), conv.Files[i].Name})
	}
	reporter.Table([]string{"#", "kind", "subject", "details", "file"}, rows)
	if render {
		for _, f := range conv.Files {
			fmt.Fprintf(out, "\n// %s\n%s", f.Name, f.Content)
		}
	}
	reporter.Info("\n  Preview only → nothing was written.")
	return nil
}

func encodePreview(w io.Writer, format string, doc previewDoc) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// describe summarizes an operation for the text table.
func describe(op schema.Operation) string {
	switch op.Kind {
	case schema.OpCreateTable:
		s := fmt.Sprintf("%d columns", len(op.Table.Columns))
		if op.Table.PrimaryKey != "" {
			s += ", pk " + op.Table.PrimaryKey
		}
		return s
	case schema.OpAddForeignKeys:
		parts := make([]string, len(op.ForeignKeys))
		for i, fk := range op.ForeignKeys {
			parts[i] = fmt.Sprintf("%s.%s→%s.%s", fk.Table, fk.Column, fk.ReferencedTable, fk.ReferencedColumn)
		}
		return strings.Join(parts, " ")
	case schema.OpCreateTrigger:
		return fmt.Sprintf("%s %s ON %s", op.Trigger.Timing, op.Trigger.Event, op.Trigger.Table)
	}
	return ""
}
