package dsl_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/typeschema"
	g "github.com/reoring/typeschema/dsl"
	"github.com/reoring/typeschema/jsonschema"
)

func TestHelpers_Derive(t *testing.T) {
	tests := []struct {
		note   string
		schema *jsonschema.Schema
		want   string
	}{
		{"boolean", g.Boolean(), "boolean"},
		{"integer", g.Integer(), "number"},
		{"format", g.UUID(), "string"},
		{"nullable", g.OrNull(g.String()), "string | null"},
		{"ip", g.IP(), "string"},
		{"const", g.Const("x"), `"x"`},
		{"empty enum", g.Enum(), "never"},
		{"enum", g.Enum(1, "a"), `1 | "a"`},
		{"all of", g.AllOf(g.NonEmptyString(), g.Email()), "string"},
		{"one of", g.OneOf(g.Number(), g.Null()), "number | null"},
		{"array", g.Array(g.ArrayParams{Items: g.Boolean(), MinItems: g.Ptr(1)}), "array[boolean]"},
		{"tuple", g.Array(g.ArrayParams{Tuple: []*jsonschema.Schema{g.String(), g.IntegerPositive()}}), "array<string, number>"},
		{"untyped array", g.Array(g.ArrayParams{}), "array[any]"},
		{
			"object",
			g.Object(g.ObjectParams{
				Properties:           map[string]*jsonschema.Schema{"id": g.UUID(), "at": g.DateTime()},
				Required:             []string{"id"},
				AdditionalProperties: jsonschema.False(),
			}),
			"object<at?: string, id: string>",
		},
		{"map", g.Object(g.ObjectParams{PatternProperties: map[string]*jsonschema.Schema{"^x": g.Number()}}), "object[number]"},
		{"range", g.NumberRange(g.RangeParams{Minimum: g.Ptr(1.0), ExclusiveMaximum: g.Ptr(5.0)}, ""), "number"},
		{"pattern", g.StringPattern("^a", g.LengthParams{MaxLength: g.Ptr(3)}), "string"},
	}
	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			if got := typeschema.Derive(tc.schema).String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHelpers_KeywordsSurviveEncoding(t *testing.T) {
	s := g.Object(g.ObjectParams{
		Properties: map[string]*jsonschema.Schema{
			"n": g.NumberMultipleOf(0.5, g.TypeInteger),
			"s": g.StringPattern("^[a-z]+$", g.LengthParams{MinLength: g.Ptr(1)}),
		},
		Required: []string{"n"},
	})
	bs, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"properties":{"n":{"multipleOf":0.5,"type":"integer"},"s":{"minLength":1,"pattern":"^[a-z]+$","type":"string"}},"required":["n"],"type":"object"}`
	if diff := cmp.Diff(want, string(bs)); diff != "" {
		t.Fatalf("encoding (-want +got):\n%s", diff)
	}
}

func TestHelpers_CopyInputs(t *testing.T) {
	props := map[string]*jsonschema.Schema{"a": g.String()}
	required := []string{"a"}
	s := g.Object(g.ObjectParams{Properties: props, Required: required})
	props["b"] = g.Number()
	required[0] = "z"
	if len(s.Properties) != 1 || s.Required[0] != "a" {
		t.Fatalf("Object must not alias its inputs: %+v", s)
	}
}
