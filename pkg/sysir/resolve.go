package sysir

// ResolveTypes is the type resolver's single linear pass (§4.2). It
// walks the already-assembled instruction stream once, materializing
// type definitions (primitives and structs) and register-to-type
// bindings. It must run before Verify, which depends on m.Types and
// m.TypeDefs being populated.
//
// This mirrors janet_sysir_init_types: slot 0 is seeded as primitive
// s32 before the walk (NewModule already did that), every register
// starts at type slot 0, and only TypeBind instructions change that.
func ResolveTypes(m *Module) error {
	m.Types = make([]uint32, m.RegisterCount)

	for i := 0; i < len(m.Instructions); i++ {
		switch instr := m.Instructions[i].(type) {
		case TypePrim:
			m.WidenTypeDefs(instr.DestType)
			m.TypeDefs[instr.DestType] = TypeDef{Prim: instr.Prim}

		case TypeStruct:
			m.WidenTypeDefs(instr.DestType)
			fieldStart := uint32(len(m.FieldDefs))
			args := ArgsAt(m.Instructions, uint32(i), instr.ArgCount)
			for _, fieldType := range args {
				m.FieldDefs = append(m.FieldDefs, FieldDef{Type: fieldType})
			}
			m.TypeDefs[instr.DestType] = TypeDef{
				Prim:       PrimStruct,
				FieldCount: instr.ArgCount,
				FieldStart: fieldStart,
			}

		case TypeBind:
			m.Types[instr.Dest] = instr.Type

		default:
			// Every other opcode, including the Arg continuations
			// belonging to a TypeStruct (already consumed above via
			// ArgsAt) and to Call/CallK (irrelevant here), is ignored
			// in this pass.
		}
	}

	return nil
}
