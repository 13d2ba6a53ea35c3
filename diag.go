package typeschema

import "fmt"

// Diag carries non-fatal warnings produced during derivation. Each warning is
// prefixed with the JSON Pointer of the schema location it concerns.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool  { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(at PathRef, f string, a ...any) {
	d.ws = append(d.ws, at.Pointer()+": "+fmt.Sprintf(f, a...))
}
