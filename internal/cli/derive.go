package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/typeschema/domain"
)

type deriveParams struct {
	schema *schemaParams
	format *enumFlag
}

func newDeriveCommand(e *env) *cobra.Command {
	params := &deriveParams{
		schema: newSchemaParams(),
		format: newEnumFlag("text", []string{"text", "json"}),
	}
	cmd := &cobra.Command{
		Use:   "derive <schema>",
		Short: "Print the domain of values a schema admits",
		Long: `Derive the domain of a JSON Schema document (.json, .yaml or .yml, or "-" for JSON on stdin).

The text format prints the compact rendering, for example:

    object<id: string, tags?: array[string]>[any]

The json format prints the structural description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := params.schema.derive(e, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if params.format.String() == "json" {
				bs, err := domain.MarshalIndent(d, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, string(bs))
				return nil
			}
			fmt.Fprintln(e.out, d.String())
			return nil
		},
	}
	params.schema.addFlags(cmd)
	cmd.Flags().VarP(params.format, "format", "f", "set output format: "+params.format.allowed())
	return cmd
}
