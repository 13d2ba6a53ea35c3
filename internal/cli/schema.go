package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/typeschema"
	"github.com/reoring/typeschema/domain"
	"github.com/reoring/typeschema/loader"
)

// schemaParams are shared by every command that reads a schema.
type schemaParams struct {
	additional   *enumFlag
	resolveRefs  bool
	metaValidate bool
}

func newSchemaParams() *schemaParams {
	return &schemaParams{
		additional: newEnumFlag(typeschema.AdditionalPropertiesPrecise.String(), []string{
			typeschema.AdditionalPropertiesPrecise.String(),
			typeschema.AdditionalPropertiesWidened.String(),
		}),
	}
}

func (p *schemaParams) addFlags(cmd *cobra.Command) {
	cmd.Flags().Var(p.additional, "additional-properties", "derive additionalProperties schemas as: "+p.additional.allowed())
	cmd.Flags().BoolVar(&p.resolveRefs, "resolve-refs", false, "inline local $ref before deriving")
	cmd.Flags().BoolVar(&p.metaValidate, "meta-validate", false, "reject documents that are not valid draft-07 JSON Schema")
}

// derive loads the schema at path ("-" reads JSON from stdin) and derives
// its domain. Load and derivation warnings are logged.
func (p *schemaParams) derive(e *env, path string, stdin io.Reader) (domain.Domain, error) {
	opt := loader.Options{ResolveRefs: p.resolveRefs, MetaValidate: p.metaValidate, Logger: e.logger}
	var (
		doc *loader.Document
		err error
	)
	if path == "-" {
		var data []byte
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		doc, err = loader.FromJSON(data, opt)
	} else {
		doc, err = loader.FromFile(path, opt)
	}
	if err != nil {
		return nil, err
	}

	mode := typeschema.AdditionalPropertiesPrecise
	if p.additional.String() == typeschema.AdditionalPropertiesWidened.String() {
		mode = typeschema.AdditionalPropertiesWidened
	}
	d, diag := typeschema.NewDeriver(typeschema.DeriveOpt{AdditionalProperties: mode, Logger: e.logger}).DeriveWithDiag(doc.Schema)
	for _, w := range diag.Warnings() {
		e.logger.Warn("derive: %s", w)
	}
	return d, nil
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}
