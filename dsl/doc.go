// Package dsl provides factory helpers that build JSON Schema values.
//
// The helpers are purely structural: they assemble *jsonschema.Schema records
// and perform no validation of their inputs. Every call returns a fresh
// schema, so results can be modified without affecting other callers.
//
// Entry points
//   - Combinators: AllOf, AnyOf, OneOf, OrNull.
//   - Defined values: Const, Enum.
//   - Containers: Array(ArrayParams), Object(ObjectParams).
//   - Numbers: NumberMultipleOf, NumberRange.
//   - Strings: StringFormat, StringLength, StringPattern.
//   - Common schemas: Boolean, Integer, Email, UUID, IP, ... (common.go).
//
// Example
//
//	user := dsl.Object(dsl.ObjectParams{
//		Properties: map[string]*jsonschema.Schema{
//			"id":    dsl.UUID(),
//			"email": dsl.Email(),
//			"age":   dsl.IntegerPositive(),
//			"tags":  dsl.Array(dsl.ArrayParams{Items: dsl.NonEmptyString()}),
//			"note":  dsl.OrNull(dsl.String()),
//		},
//		Required:             []string{"id", "email"},
//		AdditionalProperties: jsonschema.False(),
//	})
//	d := typeschema.Derive(user)
//	// object<age?: number, email: string, id: string, note?: string | null, tags?: array[string]>
package dsl
