package dsl

import "github.com/reoring/typeschema/jsonschema"

// Common schemas. Formats follow
// https://json-schema.org/understanding-json-schema/reference/string.html#format

func Boolean() *jsonschema.Schema { return &jsonschema.Schema{Type: "boolean"} }
func Null() *jsonschema.Schema { return &jsonschema.Schema{Type: "null"} }
func Number() *jsonschema.Schema { return &jsonschema.Schema{Type: "number"} }
func Integer() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} }
func String() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }

func Byte() *jsonschema.Schema { return StringFormat("byte") }
func Date() *jsonschema.Schema { return StringFormat("date") }
func DateTime() *jsonschema.Schema { return StringFormat("date-time") }
func Duration() *jsonschema.Schema { return StringFormat("duration") }
func Email() *jsonschema.Schema { return StringFormat("email") }
func Hostname() *jsonschema.Schema { return StringFormat("hostname") }
func IPv4() *jsonschema.Schema { return StringFormat("ipv4") }
func IPv6() *jsonschema.Schema { return StringFormat("ipv6") }
func Regex() *jsonschema.Schema { return StringFormat("regex") }
func Time() *jsonschema.Schema { return StringFormat("time") }
func URI() *jsonschema.Schema { return StringFormat("uri") }
func URIReference() *jsonschema.Schema { return StringFormat("uri-reference") }
func UUID() *jsonschema.Schema { return StringFormat("uuid") }

// NonEmptyString is a string of at least one character.
func NonEmptyString() *jsonschema.Schema {
	return StringLength(LengthParams{MinLength: Ptr(1)})
}

// IntegerNegative is an integer with maximum 0.
func IntegerNegative() *jsonschema.Schema {
	return NumberRange(RangeParams{Maximum: Ptr(0.0)}, TypeInteger)
}

// IntegerPositive is an integer with minimum 0.
func IntegerPositive() *jsonschema.Schema {
	return NumberRange(RangeParams{Minimum: Ptr(0.0)}, TypeInteger)
}

// NumberNegative is a number with maximum 0.
func NumberNegative() *jsonschema.Schema {
	return NumberRange(RangeParams{Maximum: Ptr(0.0)}, TypeNumber)
}

// NumberPositive is a number with minimum 0.
func NumberPositive() *jsonschema.Schema {
	return NumberRange(RangeParams{Minimum: Ptr(0.0)}, TypeNumber)
}

// IP accepts an IPv4 or IPv6 address.
func IP() *jsonschema.Schema { return AnyOf(IPv4(), IPv6()) }

// IPOrHostname accepts an IPv4 or IPv6 address or a hostname.
func IPOrHostname() *jsonschema.Schema { return AnyOf(IPv4(), IPv6(), Hostname()) }
