// Package sysir defines the typed, register-based intermediate
// representation at the core of the pipeline: opcode and primitive
// tables (§4.1 tables), the instruction and module data model (§3), the
// type resolver (§4.2), and the verifier (§4.3). Assembly front-ends
// live in sysasm; C code generation lives in clower.
package sysir

import "github.com/CFiggers/sysir/pkg/hostvalue"

// TypeDef describes one entry in a module's type-definition array: a
// primitive tag, and for struct types, the field count and the starting
// index into the module's field-definition array.
type TypeDef struct {
	Prim       PrimTag
	FieldCount uint32
	FieldStart uint32
}

// FieldDef is a single struct field: the type slot of that field.
// Fields for a given struct are stored contiguously, in declaration
// order, starting at TypeDef.FieldStart.
type FieldDef struct {
	Type uint32
}

// Module is the root IR artifact produced by the assembler, mutated
// only by the type resolver and verifier, and read-only thereafter. The
// zero value is not usable; construct with NewModule.
type Module struct {
	LinkName       string
	ParameterCount uint32

	// RegisterCount is one plus the maximum register index referenced
	// by any decoded operand (invariant from spec.md §8). Registers are
	// never pre-declared; this count grows as the assembler decodes
	// operands.
	RegisterCount uint32

	Instructions []Instruction
	Constants    []hostvalue.Value

	TypeDefs  []TypeDef
	FieldDefs []FieldDef

	// Types maps register index to type slot. Filled by ResolveTypes.
	// Any register never touched by a TypeBind keeps its zero value,
	// which is type slot 0 (primitive s32) by construction.
	Types []uint32

	// ReturnType is the type slot shared by every Return instruction,
	// derived by Verify.
	ReturnType uint32
}

// NewModule creates an empty module ready to receive instructions from
// an assembler front-end. Type slot 0 is pre-seeded as primitive s32,
// matching sysir.c's janet_sysir_init_types, which is the default type
// for any register never explicitly bound.
func NewModule(linkName string, parameterCount uint32) *Module {
	return &Module{
		LinkName:       linkName,
		ParameterCount: parameterCount,
		TypeDefs:       []TypeDef{{Prim: PrimS32}},
	}
}

// WidenRegisters grows RegisterCount so it covers operand, the
// max-index-plus-one rule every operand that names a register applies
// as a side effect of being decoded.
func (m *Module) WidenRegisters(operand uint32) {
	if operand+1 > m.RegisterCount {
		m.RegisterCount = operand + 1
	}
}

// WidenTypeDefs grows the type-definition array so slot operand exists,
// the type-slot analog of WidenRegisters.
func (m *Module) WidenTypeDefs(slot uint32) {
	for uint32(len(m.TypeDefs)) <= slot {
		m.TypeDefs = append(m.TypeDefs, TypeDef{})
	}
}

// InternConstant deduplicates v against the module's constant pool,
// returning its index. cache is the assembler's symbol/constant→index
// table; InternConstant itself does not own that cache since the same
// cache is shared between `constant` interning and call promotion.
func InternConstant(constants *[]hostvalue.Value, cache map[hostvalue.Value]uint32, v hostvalue.Value) uint32 {
	if idx, ok := cache[v]; ok {
		return idx
	}
	idx := uint32(len(*constants))
	*constants = append(*constants, v)
	cache[v] = idx
	return idx
}
