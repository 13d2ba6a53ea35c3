package cli

import (
	"fmt"
	"strings"
)

// enumFlag is a pflag.Value restricted to a fixed set of strings.
type enumFlag struct {
	value string
	vs    []string
}

func newEnumFlag(defaultValue string, vs []string) *enumFlag {
	return &enumFlag{value: defaultValue, vs: vs}
}

func (f *enumFlag) Type() string { return "{" + strings.Join(f.vs, ",") + "}" }

func (f *enumFlag) String() string { return f.value }

func (f *enumFlag) Set(s string) error {
	for _, v := range f.vs {
		if v == s {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", f.allowed())
}

func (f *enumFlag) allowed() string { return strings.Join(f.vs, ", ") }
