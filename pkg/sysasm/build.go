package sysasm

import (
	"strconv"

	"github.com/CFiggers/sysir/pkg/hostvalue"
	"github.com/CFiggers/sysir/pkg/sysir"
)

// pendingFixup records a jump/branch whose target was a forward keyword
// label reference at parse time; it is patched once the full label
// table is known, letting labels be declared before or after their use
// — spec.md §4.1's described design, which sysir.c's own TODO notes is
// not yet wired up for keyword targets in the reference implementation.
type pendingFixup struct {
	pc    uint32
	label string
}

// assembleInstruction decodes one parsed tuple into a sysir.Instruction
// (or, for call/struct, a head instruction plus trailing Arg
// continuations) and appends it to p.mod.Instructions. This is the Go
// analog of the big switch in janet_sysir_init_instructions.
func (p *Parser) assembleInstruction(tuple []Token) error {
	head := tuple[0]
	opcode, ok := sysir.LookupOpcode(head.Literal)
	if !ok {
		return newParseError(head, "unknown instruction %s", head.Literal)
	}
	pos := sysir.Position{Line: int32(head.Line), Column: int32(head.Column)}

	switch opcode {
	case sysir.OpAdd, sysir.OpSubtract, sysir.OpMultiply, sysir.OpDivide,
		sysir.OpBand, sysir.OpBor, sysir.OpBxor, sysir.OpShl, sysir.OpShr,
		sysir.OpGt, sysir.OpGte, sysir.OpLt, sysir.OpLte, sysir.OpEq, sysir.OpNeq:
		if err := p.assertLen(tuple, 4, head); err != nil {
			return err
		}
		dest := p.readOperand(tuple[1])
		lhs := p.readOperand(tuple[2])
		rhs := p.readOperand(tuple[3])
		p.emit(sysir.ThreeOp{Position: pos, Op: opcode, Dest: dest, Lhs: lhs, Rhs: rhs})

	case sysir.OpMove, sysir.OpCast, sysir.OpBnot, sysir.OpLoad, sysir.OpStore, sysir.OpAddress:
		if err := p.assertLen(tuple, 3, head); err != nil {
			return err
		}
		dest := p.readOperand(tuple[1])
		src := p.readOperand(tuple[2])
		p.emit(sysir.TwoOp{Position: pos, Op: opcode, Dest: dest, Src: src})

	case sysir.OpFieldGet, sysir.OpFieldSet:
		if err := p.assertLen(tuple, 4, head); err != nil {
			return err
		}
		r := p.readOperand(tuple[1])
		st := p.readOperand(tuple[2])
		field, err := p.readField(tuple[3])
		if err != nil {
			return err
		}
		p.emit(sysir.Field{Position: pos, Op: opcode, R: r, St: st, FieldIdx: field})

	case sysir.OpReturn:
		if err := p.assertLen(tuple, 2, head); err != nil {
			return err
		}
		p.emit(sysir.Return{Position: pos, Src: p.readOperand(tuple[1])})

	case sysir.OpBranch:
		if err := p.assertLen(tuple, 3, head); err != nil {
			return err
		}
		cond := p.readOperand(tuple[1])
		pc := uint32(len(p.mod.Instructions))
		target, pending := p.readLabel(tuple[2])
		p.emit(sysir.Branch{Position: pos, Cond: cond, Target: target})
		if pending != "" {
			p.fixups = append(p.fixups, pendingFixup{pc: pc, label: pending})
		}

	case sysir.OpJump:
		if err := p.assertLen(tuple, 2, head); err != nil {
			return err
		}
		pc := uint32(len(p.mod.Instructions))
		target, pending := p.readLabel(tuple[1])
		p.emit(sysir.Jump{Position: pos, Target: target})
		if pending != "" {
			p.fixups = append(p.fixups, pendingFixup{pc: pc, label: pending})
		}

	case sysir.OpConstant:
		if err := p.assertLen(tuple, 3, head); err != nil {
			return err
		}
		dest := p.readOperand(tuple[1])
		val, err := p.readHostValue(tuple[2])
		if err != nil {
			return err
		}
		idx := sysir.InternConstant(&p.mod.Constants, p.constCache, val)
		p.emit(sysir.Constant{Position: pos, Dest: dest, ConstIdx: idx})

	case sysir.OpCall:
		if err := p.assertMinLen(tuple, 3, head); err != nil {
			return err
		}
		dest := p.readOperand(tuple[1])
		callee := tuple[2]
		argToks := tuple[3:]
		if callee.Type == TokenSymbol {
			idx := sysir.InternConstant(&p.mod.Constants, p.constCache, hostvalue.Symbol(callee.Literal))
			p.emit(sysir.CallK{Position: pos, Dest: dest, ConstIdx: idx, ArgCount: uint32(len(argToks))})
		} else {
			calleeReg := p.readOperand(callee)
			p.emit(sysir.Call{Position: pos, Dest: dest, Callee: calleeReg, ArgCount: uint32(len(argToks))})
		}
		p.emitArgContinuations(argToks, pos, p.readOperand)

	case sysir.OpTypePrimitive:
		if err := p.assertLen(tuple, 3, head); err != nil {
			return err
		}
		destType := p.readTypeOperand(tuple[1])
		prim, err := p.readPrim(tuple[2])
		if err != nil {
			return err
		}
		p.emit(sysir.TypePrim{Position: pos, DestType: destType, Prim: prim})

	case sysir.OpTypeStruct:
		if err := p.assertMinLen(tuple, 2, head); err != nil {
			return err
		}
		destType := p.readTypeOperand(tuple[1])
		fieldToks := tuple[2:]
		p.emit(sysir.TypeStruct{Position: pos, DestType: destType, ArgCount: uint32(len(fieldToks))})
		p.emitArgContinuations(fieldToks, pos, p.readTypeOperand)

	case sysir.OpTypeBind:
		if err := p.assertLen(tuple, 3, head); err != nil {
			return err
		}
		dest := p.readOperand(tuple[1])
		typ := p.readTypeOperand(tuple[2])
		p.emit(sysir.TypeBind{Position: pos, Dest: dest, Type: typ})

	default:
		return newParseError(head, "invalid instruction %s", head.Literal)
	}

	return nil
}

func (p *Parser) emit(instr sysir.Instruction) {
	p.mod.Instructions = append(p.mod.Instructions, instr)
}

// emitArgContinuations packs toks, three per Arg record, immediately
// after the variable-arity head instruction just emitted — the same
// layout the verifier and lowerer expect (ArgsAt in pkg/sysir).
func (p *Parser) emitArgContinuations(toks []Token, pos sysir.Position, read func(Token) uint32) {
	for j := 0; j < len(toks); j += 3 {
		var slots [3]uint32
		remaining := len(toks) - j
		if remaining > 3 {
			remaining = 3
		}
		for k := 0; k < remaining; k++ {
			slots[k] = read(toks[j+k])
		}
		p.emit(sysir.Arg{Position: pos, Slots: slots})
	}
}

func (p *Parser) assertLen(tuple []Token, n int, head Token) error {
	if len(tuple) != n {
		return newParseError(head, "expected instruction of length %d, got %d", n, len(tuple))
	}
	return nil
}

func (p *Parser) assertMinLen(tuple []Token, n int, head Token) error {
	if len(tuple) < n {
		return newParseError(head, "expected instruction of at least length %d, got %d", n, len(tuple))
	}
	return nil
}

// readOperand parses a register index, widening the module's register
// count as a side effect (spec.md's max-index-plus-one rule).
func (p *Parser) readOperand(t Token) uint32 {
	n, _ := strconv.ParseUint(t.Literal, 10, 32)
	p.mod.WidenRegisters(uint32(n))
	return uint32(n)
}

// readTypeOperand parses a type-slot index, widening the module's
// type-definition array the same way readOperand widens registers.
func (p *Parser) readTypeOperand(t Token) uint32 {
	n, _ := strconv.ParseUint(t.Literal, 10, 32)
	p.mod.WidenTypeDefs(uint32(n))
	return uint32(n)
}

func (p *Parser) readField(t Token) (uint32, error) {
	if t.Type != TokenInt {
		return 0, newParseError(t, "expected non-negative field index, got %s", t.Literal)
	}
	n, _ := strconv.ParseUint(t.Literal, 10, 32)
	return uint32(n), nil
}

func (p *Parser) readPrim(t Token) (sysir.PrimTag, error) {
	if t.Type != TokenSymbol {
		return 0, newParseError(t, "expected primitive type, got %s", t.Literal)
	}
	prim, ok := sysir.LookupPrim(t.Literal)
	if !ok {
		return 0, newParseError(t, "unknown type %s", t.Literal)
	}
	return prim, nil
}

// readLabel resolves a jump/branch target: a keyword label (possibly a
// forward reference, returned as a pending fixup) or a literal integer
// instruction index used verbatim.
func (p *Parser) readLabel(t Token) (target uint32, pendingLabel string) {
	if t.Type == TokenKeyword {
		if idx, ok := p.labels[t.Literal]; ok {
			return idx, ""
		}
		return 0, t.Literal
	}
	n, _ := strconv.ParseUint(t.Literal, 10, 32)
	return uint32(n), ""
}

// readHostValue parses a constant payload: an integer, float, string,
// or bare symbol (rendered as an identifier reference in lowered C).
func (p *Parser) readHostValue(t Token) (hostvalue.Value, error) {
	switch t.Type {
	case TokenInt:
		n, _ := strconv.ParseInt(t.Literal, 10, 64)
		return hostvalue.Int64(n), nil
	case TokenFloat:
		f, _ := strconv.ParseFloat(t.Literal, 64)
		return hostvalue.Float64(f), nil
	case TokenString:
		return hostvalue.String(t.Literal), nil
	case TokenSymbol:
		return hostvalue.Symbol(t.Literal), nil
	default:
		return hostvalue.Value{}, newParseError(t, "invalid constant operand %s", t.Literal)
	}
}
