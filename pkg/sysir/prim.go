package sysir

import "sort"

// PrimTag is one of the thirteen primitive type tags a type slot can
// carry. struct is itself a tag; its payload lives in a module's field
// definition array rather than in the tag.
type PrimTag uint8

const (
	PrimU8 PrimTag = iota
	PrimS8
	PrimU16
	PrimS16
	PrimU32
	PrimS32
	PrimU64
	PrimS64
	PrimF32
	PrimF64
	PrimPointer
	PrimBoolean
	PrimStruct
)

func (p PrimTag) String() string {
	if int(p) < len(primNameByTag) {
		return primNameByTag[p]
	}
	return "unknown-prim"
}

// primCNames is indexed by PrimTag, mirroring sysir.c's c_prim_names
// table, which is indexed directly by the JanetPrim enum rather than
// looked up by name. PrimStruct has no entry: struct lowering emits an
// anonymous typedef instead of naming a scalar C type.
var primCNames = [...]string{
	PrimU8:      "uint8_t",
	PrimS8:      "int8_t",
	PrimU16:     "uint16_t",
	PrimS16:     "int16_t",
	PrimU32:     "uint32_t",
	PrimS32:     "int32_t",
	PrimU64:     "uint64_t",
	PrimS64:     "int64_t",
	PrimF32:     "float",
	PrimF64:     "double",
	PrimPointer: "char *",
	PrimBoolean: "bool",
}

var primNameByTag = [...]string{
	PrimU8:      "u8",
	PrimS8:      "s8",
	PrimU16:     "u16",
	PrimS16:     "s16",
	PrimU32:     "u32",
	PrimS32:     "s32",
	PrimU64:     "u64",
	PrimS64:     "s64",
	PrimF32:     "f32",
	PrimF64:     "f64",
	PrimPointer: "pointer",
	PrimBoolean: "boolean",
	PrimStruct:  "struct",
}

// CName returns the C type name for a scalar primitive tag. It must not
// be called with PrimStruct; struct types are named by type slot instead
// (see clower, which emits `_t<slot>` typedefs).
func (p PrimTag) CName() string {
	return primCNames[p]
}

// IsInteger reports whether p is one of the eight signed/unsigned
// fixed-width integer tags, the "integer" classification used by the
// verifier's band/bor/bxor/shl/shr/bnot rules.
func (p PrimTag) IsInteger() bool {
	switch p {
	case PrimU8, PrimS8, PrimU16, PrimS16, PrimU32, PrimS32, PrimU64, PrimS64:
		return true
	default:
		return false
	}
}

type primName struct {
	name string
	tag  PrimTag
}

// primNames is the static sorted table of primitive type mnemonics, kept
// in the order sysir.c declares them so the parser's binary search
// matches the reference lookup exactly.
var primNames = []primName{
	{"boolean", PrimBoolean},
	{"f32", PrimF32},
	{"f64", PrimF64},
	{"pointer", PrimPointer},
	{"s16", PrimS16},
	{"s32", PrimS32},
	{"s64", PrimS64},
	{"s8", PrimS8},
	{"struct", PrimStruct},
	{"u16", PrimU16},
	{"u32", PrimU32},
	{"u64", PrimU64},
	{"u8", PrimU8},
}

// LookupPrim resolves a textual primitive mnemonic via binary search
// against the static sorted table.
func LookupPrim(name string) (PrimTag, bool) {
	i := sort.Search(len(primNames), func(i int) bool { return primNames[i].name >= name })
	if i < len(primNames) && primNames[i].name == name {
		return primNames[i].tag, true
	}
	return 0, false
}
