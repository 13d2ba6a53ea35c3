package typeschema

import (
	"fmt"

	"github.com/reoring/typeschema/i18n"
)

// IssueAt creates an Issue at the given path with a translated message. params
// feed both Issue.Params and the translator.
func IssueAt(p PathRef, code string, params map[string]any) Issue {
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, v := range params {
			data[k] = fmt.Sprint(v)
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Params: params}
}
