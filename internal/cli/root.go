// Package cli implements the typeschema command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/reoring/typeschema/logging"
)

const envPrefix = "typeschema"

// ErrCheckFailed is returned by the check command when the instance is not a
// member of the schema's domain. The issues have already been printed.
var ErrCheckFailed = errors.New("check failed")

type rootParams struct {
	configFile string
	logLevel   *enumFlag
	logFormat  *enumFlag
}

// env carries what every subcommand needs.
type env struct {
	out    io.Writer
	errOut io.Writer
	logger logging.Logger
}

// NewRootCommand builds the command tree writing results to out and
// diagnostics to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	params := &rootParams{
		logLevel:  newEnumFlag("warn", []string{"debug", "info", "warn", "error"}),
		logFormat: newEnumFlag("text", []string{"text", "json", "json-pretty"}),
	}
	e := &env{out: out, errOut: errOut, logger: logging.NewNoOpLogger()}

	root := &cobra.Command{
		Use:           "typeschema",
		Short:         "Derive and check JSON Schema value domains",
		Long:          "Derive the set of JSON values a JSON Schema admits, check instances for membership and draw sample values.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyConfig(cmd, params.configFile); err != nil {
				return err
			}
			logger, err := newLogger(errOut, params)
			if err != nil {
				return err
			}
			e.logger = logger
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&params.configFile, "config", "", "config file (default $HOME/.typeschema.yaml)")
	root.PersistentFlags().Var(params.logLevel, "log-level", "set log level: "+params.logLevel.allowed())
	root.PersistentFlags().Var(params.logFormat, "log-format", "set log format: "+params.logFormat.allowed())

	root.AddCommand(
		newDeriveCommand(e),
		newCheckCommand(e),
		newSampleCommand(e),
		newVersionCommand(e),
	)
	return root
}

func newLogger(w io.Writer, params *rootParams) (logging.Logger, error) {
	level, err := logging.ParseLevel(params.logLevel.String())
	if err != nil {
		return nil, err
	}
	logger := logging.New()
	logger.SetOutput(w)
	logger.SetFormatter(logging.GetFormatter(params.logFormat.String()))
	logger.SetLevel(level)
	return logger, nil
}

// applyConfig fills flags the user did not set from TYPESCHEMA_* environment
// variables and the config file, in that order of precedence.
func applyConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := configFile != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			configFile = filepath.Join(home, "."+envPrefix+".yaml")
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
				return fmt.Errorf("reading config %s: %w", configFile, err)
			}
		}
	}

	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			errs = append(errs, err.Error())
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("error mapping configuration to command flags: %s", strings.Join(errs, "; "))
	}
	return nil
}
