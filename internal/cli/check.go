package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/reoring/typeschema"
)

type checkParams struct {
	schema        *schemaParams
	format        *enumFlag
	failFast      bool
	duplicateKeys *enumFlag
	maxDepth      int
	maxBytes      int64
}

func (p *checkParams) decodeOpt() typeschema.DecodeOpt {
	opt := typeschema.DecodeOpt{MaxDepth: p.maxDepth, MaxBytes: p.maxBytes}
	switch p.duplicateKeys.String() {
	case "warn":
		opt.OnDuplicateKey = typeschema.Warn
	case "error":
		opt.OnDuplicateKey = typeschema.Error
	}
	return opt
}

func newCheckCommand(e *env) *cobra.Command {
	params := &checkParams{
		schema:        newSchemaParams(),
		format:        newEnumFlag("pretty", []string{"pretty", "json"}),
		duplicateKeys: newEnumFlag("warn", []string{"ignore", "warn", "error"}),
	}
	cmd := &cobra.Command{
		Use:   "check <schema> <instance>",
		Short: "Check that a JSON instance belongs to a schema's domain",
		Long: `Check a JSON instance ("-" reads it from stdin) against the domain derived from a schema.

The command exits non-zero when the instance is not a member. Issues are
reported with their JSON Pointer, code and message.`,
		Args: cobra.MatchAll(cobra.ExactArgs(2), func(_ *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return errors.New("schema and instance cannot both be read from stdin")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := params.schema.derive(e, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			in, err := openInput(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			v, warnings, err := typeschema.DecodeJSONReader(in, params.decodeOpt())
			for _, w := range warnings {
				e.logger.Warn("instance: %s at %s", w.Message, w.Path)
			}
			if err == nil {
				ctx := typeschema.WithFailFast(context.Background(), params.failFast)
				err = typeschema.Check(ctx, d, v)
			}
			iss, isIssues := typeschema.AsIssues(err)
			if err != nil && !isIssues {
				return err
			}
			if err := render(e.out, params.format.String(), iss); err != nil {
				return err
			}
			if len(iss) > 0 {
				return ErrCheckFailed
			}
			return nil
		},
	}
	params.schema.addFlags(cmd)
	cmd.Flags().VarP(params.format, "format", "f", "set output format: "+params.format.allowed())
	cmd.Flags().BoolVar(&params.failFast, "fail-fast", false, "stop at the first issue")
	cmd.Flags().Var(params.duplicateKeys, "duplicate-keys", "handling of duplicate object keys in the instance: "+params.duplicateKeys.allowed())
	cmd.Flags().IntVar(&params.maxDepth, "max-depth", 0, "reject instances nested deeper than this (0 means unlimited)")
	cmd.Flags().Int64Var(&params.maxBytes, "max-bytes", 0, "reject instances larger than this many bytes (0 means unlimited)")
	return cmd
}

type checkResult struct {
	Valid  bool              `json:"valid"`
	Issues typeschema.Issues `json:"issues"`
}

func render(w io.Writer, format string, iss typeschema.Issues) error {
	if format == "json" {
		if iss == nil {
			iss = typeschema.Issues{}
		}
		bs, err := json.MarshalIndent(checkResult{Valid: len(iss) == 0, Issues: iss}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(bs))
		return nil
	}
	if len(iss) == 0 {
		fmt.Fprintln(w, "ok")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Code", "Message"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, it := range iss {
		table.Append([]string{it.Path, it.Code, it.Message})
	}
	table.Render()
	fmt.Fprintf(w, "%d issue(s)\n", len(iss))
	return nil
}
