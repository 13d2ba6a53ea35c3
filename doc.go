// Package typeschema derives, from a JSON Schema, a description of the set of
// JSON values that validate against it, and checks values for membership in
// such a description.
//
//   - Derivation turns a *jsonschema.Schema into an immutable domain.Domain
//     (Boolean, Null, Number, String, Literal, Union, Not, Array, Object, Top,
//     Never). It never fails: unrecognized shapes derive to Top and are
//     reported through Diag.
//   - Checking decides whether a decoded JSON value belongs to a domain and
//     reports failures as Issues (JSON Pointer, code, message).
//   - Instances are decoded with duplicate-key, depth and size enforcement via
//     DecodeJSON.
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations under internal/.
//   - Schema construction helpers live in dsl/, document loading in loader/,
//     OpenAPI import in openapi/, example generation in sample/ and the CLI
//     under cmd/typeschema.
//   - Derivation looks only at structural keywords. Value-level constraints
//     such as minLength, pattern or format are carried but never evaluated.
//
// Typical usage:
//
//	s := dsl.Object(dsl.ObjectParams{
//		Properties: map[string]*jsonschema.Schema{"id": dsl.UUID()},
//		Required:   []string{"id"},
//	})
//	d := typeschema.Derive(s)
//	fmt.Println(d) // object<id: string>[any]
//	err := typeschema.Check(ctx, d, value)
package typeschema
