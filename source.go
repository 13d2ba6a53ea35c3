package typeschema

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/reoring/typeschema/internal/jsonvalue"
)

// DecodeJSON parses one JSON instance into the generic value tree accepted by
// Check. Non-fatal findings (duplicate keys under Warn) are returned as
// warnings. Failures are returned as an Issues error.
func DecodeJSON(data []byte, opt DecodeOpt) (any, Issues, error) {
	return DecodeJSONReader(bytes.NewReader(data), opt)
}

// DecodeJSONReader is like DecodeJSON but reads from r.
func DecodeJSONReader(r io.Reader, opt DecodeOpt) (any, Issues, error) {
	v, si, err := jsonvalue.DecodeReader(r, jsonvalue.Options{
		OnDuplicateKey: toDuplicateStrictness(opt.OnDuplicateKey),
		MaxDepth:       opt.MaxDepth,
		MaxBytes:       opt.MaxBytes,
	})
	iss := fromSimpleIssues(si)
	if err != nil {
		if !errors.Is(err, jsonvalue.ErrDuplicateKey) && !errors.Is(err, jsonvalue.ErrTooDeep) && !errors.Is(err, jsonvalue.ErrTooLarge) {
			iss = AppendIssues(iss, IssueAt(Root(), CodeParseError, map[string]any{"error": err.Error()}))
		}
		return nil, nil, iss
	}
	return v, iss, nil
}

func toDuplicateStrictness(s Severity) jsonvalue.DuplicateStrictness {
	switch s {
	case Error:
		return jsonvalue.DupError
	case Warn:
		return jsonvalue.DupWarn
	default:
		return jsonvalue.DupIgnore
	}
}

func fromSimpleIssues(si []jsonvalue.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		params := map[string]any{}
		switch s.Code {
		case CodeDuplicateKey:
			params["key"] = lastSegment(s.Path)
		}
		it := IssueAt(At(s.Path), s.Code, params)
		if len(params) == 0 {
			it.Message = s.Message
		}
		iss = AppendIssues(iss, it)
	}
	return iss
}

func lastSegment(pointer string) string {
	seg := pointer[strings.LastIndexByte(pointer, '/')+1:]
	return strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
}
