package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/typeschema/sample"
)

type sampleParams struct {
	schema *schemaParams
	seed   int64
	count  int
}

func newSampleCommand(e *env) *cobra.Command {
	params := &sampleParams{schema: newSchemaParams()}
	cmd := &cobra.Command{
		Use:   "sample <schema>",
		Short: "Print example values drawn from a schema's domain",
		Long:  "Print example values, one JSON document per line, drawn from the domain derived from a schema.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.count < 0 {
				return fmt.Errorf("count must not be negative, got %d", params.count)
			}
			d, err := params.schema.derive(e, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			g := sample.New(params.seed)
			for i := 0; i < params.count; i++ {
				v, err := g.Generate(d)
				if err != nil {
					return err
				}
				bs, err := json.Marshal(v)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, string(bs))
			}
			return nil
		},
	}
	params.schema.addFlags(cmd)
	cmd.Flags().Int64Var(&params.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVarP(&params.count, "count", "n", 1, "number of values to print")
	return cmd
}
