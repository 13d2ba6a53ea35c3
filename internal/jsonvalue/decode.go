// Package jsonvalue decodes JSON text into the generic value tree used by the
// membership checker, walking the go-json token stream so that duplicate
// object keys, nesting depth and input size can be enforced on the way.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Options configures Decode.
type Options struct {
	OnDuplicateKey DuplicateStrictness
	// MaxDepth limits how many containers a value may be nested in. 0 means
	// unlimited.
	MaxDepth int
	// MaxBytes limits the input size. 0 means unlimited.
	MaxBytes int64
}

// SimpleIssue is a minimal issue representation surfaced to the root package.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

const (
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
	CodeTooLarge     = "too_large"
)

var (
	// ErrDuplicateKey is returned when a duplicate key is found under DupError.
	ErrDuplicateKey = errors.New("jsonvalue: duplicate key")
	// ErrTooDeep is returned when nesting exceeds Options.MaxDepth.
	ErrTooDeep = errors.New("jsonvalue: nesting too deep")
	// ErrTooLarge is returned when the input exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("jsonvalue: input too large")
	// ErrTrailingData is returned when more than one value is present.
	ErrTrailingData = errors.New("jsonvalue: trailing data after value")
)

// Decode parses data as a single JSON value. Numbers are returned as
// json.Number, objects as map[string]any and arrays as []any. Duplicate keys
// reported under DupWarn keep the last occurrence.
func Decode(data []byte, opt Options) (any, []SimpleIssue, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, []SimpleIssue{tooLarge(opt.MaxBytes)}, ErrTooLarge
	}
	return DecodeReader(bytes.NewReader(data), opt)
}

// DecodeReader is like Decode but reads from r.
func DecodeReader(r io.Reader, opt Options) (any, []SimpleIssue, error) {
	lim := &limitedReader{r: r, max: opt.MaxBytes}
	dec := j.NewDecoder(lim)
	dec.UseNumber()
	d := &decoder{dec: dec, opt: opt}
	v, err := d.value()
	if err == nil {
		if _, terr := dec.Token(); terr != io.EOF {
			err = ErrTrailingData
			if terr != nil {
				err = fmt.Errorf("%w: %v", ErrTrailingData, terr)
			}
		}
	}
	if lim.exceeded {
		return nil, append(d.issues, tooLarge(opt.MaxBytes)), ErrTooLarge
	}
	if err != nil {
		return nil, d.issues, err
	}
	return v, d.issues, nil
}

func tooLarge(max int64) SimpleIssue {
	return SimpleIssue{Code: CodeTooLarge, Path: "/", Message: "input exceeds " + strconv.FormatInt(max, 10) + " bytes"}
}

type decoder struct {
	dec    *j.Decoder
	opt    Options
	path   []string
	issues []SimpleIssue
}

func (d *decoder) pointer() string {
	if len(d.path) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range d.path {
		b.WriteByte('/')
		b.WriteString(escape(seg))
	}
	return b.String()
}

func escape(seg string) string {
	if !strings.ContainsAny(seg, "~/") {
		return seg
	}
	seg = strings.ReplaceAll(seg, "~", "~0")
	return strings.ReplaceAll(seg, "/", "~1")
}

func (d *decoder) value() (any, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return d.fromToken(tok)
}

func (d *decoder) fromToken(tok any) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object()
		case '[':
			return d.array()
		}
		return nil, fmt.Errorf("jsonvalue: unexpected delimiter %q at %s", rune(v), d.pointer())
	case j.Number:
		return json.Number(string(v)), nil
	case float64:
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string, bool, nil:
		return v, nil
	}
	return nil, fmt.Errorf("jsonvalue: unexpected token %T at %s", tok, d.pointer())
}

func (d *decoder) enter() error {
	if d.opt.MaxDepth > 0 && len(d.path) >= d.opt.MaxDepth {
		d.issues = append(d.issues, SimpleIssue{
			Code:    CodeTooDeep,
			Path:    d.pointer(),
			Message: "nesting exceeds depth " + strconv.Itoa(d.opt.MaxDepth),
		})
		return ErrTooDeep
	}
	return nil
}

func (d *decoder) object() (any, error) {
	out := map[string]any{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonvalue: expected object key at %s, got %T", d.pointer(), tok)
		}
		if _, dup := out[key]; dup && d.opt.OnDuplicateKey != DupIgnore {
			d.path = append(d.path, key)
			d.issues = append(d.issues, SimpleIssue{
				Code:    CodeDuplicateKey,
				Path:    d.pointer(),
				Message: "key '" + key + "' duplicated",
			})
			d.path = d.path[:len(d.path)-1]
			if d.opt.OnDuplicateKey == DupError {
				return nil, ErrDuplicateKey
			}
		}
		if err := d.enter(); err != nil {
			return nil, err
		}
		d.path = append(d.path, key)
		v, err := d.value()
		d.path = d.path[:len(d.path)-1]
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) array() (any, error) {
	out := []any{}
	for i := 0; d.dec.More(); i++ {
		if err := d.enter(); err != nil {
			return nil, err
		}
		d.path = append(d.path, strconv.Itoa(i))
		v, err := d.value()
		d.path = d.path[:len(d.path)-1]
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// limitedReader fails once more than max bytes have been read.
type limitedReader struct {
	r        io.Reader
	max      int64
	n        int64
	exceeded bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.max <= 0 {
		return l.r.Read(p)
	}
	if l.n >= l.max {
		// Probe for one more byte to tell EOF from overflow.
		var one [1]byte
		n, err := l.r.Read(one[:])
		if n > 0 {
			l.exceeded = true
			return 0, ErrTooLarge
		}
		return 0, err
	}
	if rem := l.max - l.n; int64(len(p)) > rem {
		p = p[:rem]
	}
	n, err := l.r.Read(p)
	l.n += int64(n)
	return n, err
}
