package sysir

// Verify is the verifier's second linear pass (§4.3). It must run after
// ResolveTypes. Every rule violation is fatal and reported via an
// *AssemblyError naming the offending type-slot ids; there is no
// partial recovery. On success, m.ReturnType holds the type shared by
// every Return instruction.
func Verify(m *Module) error {
	foundReturn := false

	for _, raw := range m.Instructions {
		switch instr := raw.(type) {
		case TypePrim, TypeStruct, TypeBind, Arg, Jump:
			// No verification rule.

		case Return:
			retType := m.Types[instr.Src]
			if foundReturn {
				if m.ReturnType != retType {
					return newError("verify", "multiple return types are not allowed: type-id:%d and type-id:%d", retType, m.ReturnType)
				}
			} else {
				m.ReturnType = retType
			}
			foundReturn = true

		case TwoOp:
			switch instr.Op {
			case OpMove:
				if err := m.checkEqual(instr.Dest, instr.Src); err != nil {
					return err
				}
			case OpCast:
				// No rule in this version: any cast is accepted
				// (spec.md §9 — intended casting lattice unspecified).
			case OpBnot:
				if err := m.checkInteger(instr.Src); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Dest, instr.Src); err != nil {
					return err
				}
			case OpLoad:
				if err := m.checkPointer(instr.Src); err != nil {
					return err
				}
			case OpStore:
				if err := m.checkPointer(instr.Dest); err != nil {
					return err
				}
			case OpAddress:
				if err := m.checkPointer(instr.Dest); err != nil {
					return err
				}
			}

		case ThreeOp:
			switch instr.Op {
			case OpAdd, OpSubtract, OpMultiply, OpDivide:
				if err := m.checkEqual(instr.Lhs, instr.Rhs); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Dest, instr.Lhs); err != nil {
					return err
				}
			case OpBand, OpBor, OpBxor:
				if err := m.checkInteger(instr.Lhs); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Lhs, instr.Rhs); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Dest, instr.Lhs); err != nil {
					return err
				}
			case OpShl, OpShr:
				if err := m.checkInteger(instr.Lhs); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Lhs, instr.Rhs); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Dest, instr.Lhs); err != nil {
					return err
				}
			case OpGt, OpGte, OpLt, OpLte, OpEq, OpNeq:
				if err := m.checkEqual(instr.Lhs, instr.Rhs); err != nil {
					return err
				}
				if err := m.checkEqual(instr.Dest, instr.Lhs); err != nil {
					return err
				}
				if err := m.checkBoolean(instr.Dest); err != nil {
					return err
				}
			}

		case Branch:
			if err := m.checkBoolean(instr.Cond); err != nil {
				return err
			}

		case Constant:
			// No rule in this version: the constant value is not
			// checked against the destination register's type
			// (spec.md §9).

		case Call:
			if err := m.checkPointer(instr.Callee); err != nil {
				return err
			}

		case CallK:
			// No rule in this version: callee signature and return
			// type are not checked (spec.md §9).

		case Field:
			if err := m.checkStruct(instr.St); err != nil {
				return err
			}
			structType := m.Types[instr.St]
			def := m.TypeDefs[structType]
			if instr.FieldIdx >= def.FieldCount {
				return newError("verify", "invalid field index %d", instr.FieldIdx)
			}
			fieldSlot := def.FieldStart + instr.FieldIdx
			fieldType := m.FieldDefs[fieldSlot].Type
			destType := m.Types[instr.R]
			if fieldType != destType {
				return newError("verify", "field of type type-id:%d does not match type-id:%d", fieldType, destType)
			}
		}
	}

	return nil
}

func (m *Module) checkBoolean(reg uint32) error {
	t := m.Types[reg]
	if m.TypeDefs[t].Prim != PrimBoolean {
		return newError("verify", "type failure, expected boolean, got type-id:%d", t)
	}
	return nil
}

func (m *Module) checkInteger(reg uint32) error {
	t := m.TypeDefs[m.Types[reg]].Prim
	if !t.IsInteger() {
		return newError("verify", "type failure, expected integer, got type-id:%d", m.Types[reg])
	}
	return nil
}

func (m *Module) checkPointer(reg uint32) error {
	t := m.Types[reg]
	if m.TypeDefs[t].Prim != PrimPointer {
		return newError("verify", "type failure, expected pointer, got type-id:%d", t)
	}
	return nil
}

func (m *Module) checkStruct(reg uint32) error {
	t := m.Types[reg]
	if m.TypeDefs[t].Prim != PrimStruct {
		return newError("verify", "type failure, expected struct, got type-id:%d", t)
	}
	return nil
}

func (m *Module) checkEqual(reg1, reg2 uint32) error {
	t1, t2 := m.Types[reg1], m.Types[reg2]
	if t1 != t2 {
		return newError("verify", "type failure, type-id:%d does not match type-id:%d", t1, t2)
	}
	return nil
}
