// Package hostvalue represents the opaque host-language values that flow
// through a sysir constant pool. The real host (a scripting environment
// embedding sysir) owns garbage collection, symbol interning, and printed
// representations for its own value types; this package stands in for
// that collaborator with the minimal surface the assembler and C lowerer
// need: identity for deduplication and a C-literal rendering.
package hostvalue

import (
	"fmt"
	"strconv"
)

// Kind discriminates the representable host value shapes. A real host
// embedding would have many more (tables, arrays, closures, ...); sysir
// only ever reads a constant pool entry, so only the kinds that can
// appear as a `constant` payload or a `callk` callee name are modeled.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Value is one constant pool entry. Values are comparable so they can be
// used as map keys by the assembler's intern cache.
type Value struct {
	Kind Kind
	Int  int64
	Flt  float64
	Str  string // holds string contents for KindString, the bare name for KindSymbol
}

// Int64 builds an integer constant.
func Int64(v int64) Value { return Value{Kind: KindInt, Int: v} }

// Float64 builds a floating point constant.
func Float64(v float64) Value { return Value{Kind: KindFloat, Flt: v} }

// String builds a string constant.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// Symbol builds a symbol constant, used for `callk` targets and for any
// value that should render as a bare C identifier rather than a literal.
func Symbol(v string) Value { return Value{Kind: KindSymbol, Str: v} }

// CLiteral renders the value the way the C lowerer embeds it: numbers as
// numeric literals, strings as quoted C string literals, and symbols as
// bare identifiers (a named function or global).
func (v Value) CLiteral() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.Str)
	case KindSymbol:
		return v.Str
	default:
		return fmt.Sprintf("/* unknown constant kind %d */", v.Kind)
	}
}

// Identifier returns the bare identifier for a symbol value and reports
// whether v is actually a symbol. Used when lowering `callk`, whose
// constant must name a callable C function rather than a literal.
func (v Value) Identifier() (string, bool) {
	if v.Kind != KindSymbol {
		return "", false
	}
	return v.Str, true
}
