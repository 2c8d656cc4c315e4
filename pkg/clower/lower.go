// Package clower implements the C back-end (spec.md §4.4, Component 4):
// lowering a verified sysir.Module to a self-contained C translation
// unit. Lowering is a pure read of the module — it never mutates it and
// never produces a new diagnostic for a module the verifier accepted
// (spec.md §8's universal property).
//
// The emission style mirrors the teacher's own lowering printers
// (pkg/mach/printer.go, pkg/ltl/printer.go): a small Printer type
// wrapping an io.Writer, one method per emission phase, and a switch
// over concrete instruction types for the per-instruction statement.
package clower

import (
	"fmt"
	"io"

	"github.com/CFiggers/sysir/pkg/sysir"
)

// Printer lowers one sysir.Module to C source, writing to w.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer over w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Lower is the sysir `to_c` entry point (spec.md §6): append the C
// lowering of m to buffer-like writer w.
func Lower(m *sysir.Module, w io.Writer) error {
	return NewPrinter(w).PrintModule(m)
}

// PrintModule emits the four phases from spec.md §4.4 in order:
// headers, type declarations, function header and locals, then body.
func (p *Printer) PrintModule(m *sysir.Module) error {
	p.printHeaders()
	if err := p.printTypeDecls(m); err != nil {
		return err
	}
	if err := p.printFunctionHeader(m); err != nil {
		return err
	}
	if err := p.printBody(m); err != nil {
		return err
	}
	fmt.Fprint(p.w, "}\n")
	return nil
}

func (p *Printer) printHeaders() {
	fmt.Fprint(p.w, "#include <stdint.h>\n#include <tgmath.h>\n\n")
}

// printTypeDecls emits one typedef per TypePrim/TypeStruct instruction,
// in stream order, with #line directives where a source line is known.
func (p *Printer) printTypeDecls(m *sysir.Module) error {
	for i, raw := range m.Instructions {
		switch instr := raw.(type) {
		case sysir.TypePrim:
			p.printLine(instr.Pos())
			fmt.Fprintf(p.w, "typedef %s _t%d;\n", instr.Prim.CName(), instr.DestType)

		case sysir.TypeStruct:
			p.printLine(instr.Pos())
			fmt.Fprint(p.w, "typedef struct {\n")
			fields := sysir.ArgsAt(m.Instructions, uint32(i), instr.ArgCount)
			for j, fieldType := range fields {
				fmt.Fprintf(p.w, "  _t%d _f%d;\n", fieldType, j)
			}
			fmt.Fprintf(p.w, "} _t%d;\n", instr.DestType)
		}
	}
	return nil
}

// printFunctionHeader emits the function signature (return type and
// parameters derived from the link name and return type) followed by
// local declarations for every non-parameter register.
func (p *Printer) printFunctionHeader(m *sysir.Module) error {
	linkName := m.LinkName
	if linkName == "" {
		linkName = "_thunk"
	}
	fmt.Fprintf(p.w, "_t%d %s(", m.ReturnType, linkName)
	for i := uint32(0); i < m.ParameterCount; i++ {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		fmt.Fprintf(p.w, "_t%d _r%d", m.Types[i], i)
	}
	fmt.Fprint(p.w, ")\n{\n")
	for i := m.ParameterCount; i < m.RegisterCount; i++ {
		fmt.Fprintf(p.w, "  _t%d _r%d;\n", m.Types[i], i)
	}
	fmt.Fprint(p.w, "\n")
	return nil
}

// printBody emits one labelled C statement per non-skipped instruction.
// TypePrim, TypeBind, TypeStruct, and Arg carry no runtime behavior and
// are skipped, matching spec.md §4.4's dispatch table.
func (p *Printer) printBody(m *sysir.Module) error {
	for pc, raw := range m.Instructions {
		switch raw.(type) {
		case sysir.TypePrim, sysir.TypeBind, sysir.TypeStruct, sysir.Arg:
			continue
		}

		fmt.Fprintf(p.w, "_i%d:\n", pc)
		p.printLineIndented(raw.Pos())
		fmt.Fprint(p.w, "  ")

		if err := p.printInstruction(m, uint32(pc), raw); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printInstruction(m *sysir.Module, pc uint32, raw sysir.Instruction) error {
	switch instr := raw.(type) {
	case sysir.Constant:
		destType := m.Types[instr.Dest]
		fmt.Fprintf(p.w, "_r%d = (_t%d) %s;\n", instr.Dest, destType, m.Constants[instr.ConstIdx].CLiteral())

	case sysir.Jump:
		fmt.Fprintf(p.w, "goto _i%d;\n", instr.Target)

	case sysir.Branch:
		fmt.Fprintf(p.w, "if (_r%d) goto _i%d;\n", instr.Cond, instr.Target)

	case sysir.Return:
		fmt.Fprintf(p.w, "return _r%d;\n", instr.Src)

	case sysir.ThreeOp:
		op, err := binOpSymbol(instr.Op)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.w, "_r%d = _r%d %s _r%d;\n", instr.Dest, instr.Lhs, op, instr.Rhs)

	case sysir.TwoOp:
		return p.printTwoOp(m, instr)

	case sysir.Call:
		args := sysir.ArgsAt(m.Instructions, pc, instr.ArgCount)
		fmt.Fprintf(p.w, "_r%d = _r%d(%s);\n", instr.Dest, instr.Callee, formatArgs(args))

	case sysir.CallK:
		args := sysir.ArgsAt(m.Instructions, pc, instr.ArgCount)
		name, _ := m.Constants[instr.ConstIdx].Identifier()
		fmt.Fprintf(p.w, "_r%d = %s(%s);\n", instr.Dest, name, formatArgs(args))

	case sysir.Field:
		switch instr.Op {
		case sysir.OpFieldGet:
			fmt.Fprintf(p.w, "_r%d = _r%d._f%d;\n", instr.R, instr.St, instr.FieldIdx)
		case sysir.OpFieldSet:
			fmt.Fprintf(p.w, "_r%d._f%d = _r%d;\n", instr.St, instr.FieldIdx, instr.R)
		}

	default:
		return sysir.NewAssemblyError("lower", "unexpected instruction at pc %d", pc)
	}
	return nil
}

func (p *Printer) printTwoOp(m *sysir.Module, instr sysir.TwoOp) error {
	switch instr.Op {
	case sysir.OpAddress:
		fmt.Fprintf(p.w, "_r%d = (char *) &_r%d;\n", instr.Dest, instr.Src)
	case sysir.OpCast:
		// spec.md §9: casting follows C's own rules; no explicit lattice.
		fmt.Fprintf(p.w, "_r%d = (_t%d) _r%d;\n", instr.Dest, m.Types[instr.Dest], instr.Src)
	case sysir.OpMove:
		fmt.Fprintf(p.w, "_r%d = _r%d;\n", instr.Dest, instr.Src)
	case sysir.OpBnot:
		fmt.Fprintf(p.w, "_r%d = ~_r%d;\n", instr.Dest, instr.Src)
	case sysir.OpLoad:
		fmt.Fprintf(p.w, "_r%d = *((%s *) _r%d);\n", instr.Dest, primNameOf(m, instr.Dest), instr.Src)
	case sysir.OpStore:
		fmt.Fprintf(p.w, "*((%s *) _r%d) = _r%d;\n", primNameOf(m, instr.Src), instr.Dest, instr.Src)
	default:
		return sysir.NewAssemblyError("lower", "unexpected two-operand opcode %s", instr.Op)
	}
	return nil
}

// binOpSymbol maps a ThreeOp opcode to its C infix operator.
//
// gte intentionally lowers to C ">=", the standard meaning — spec.md
// §9 flags the original sysir.c as emitting ">" for gte (a likely copy
// bug from gt) and says implementers should note the divergence rather
// than copy it; SPEC_FULL.md's Open Questions section records this
// decision.
func binOpSymbol(op sysir.Opcode) (string, error) {
	switch op {
	case sysir.OpAdd:
		return "+", nil
	case sysir.OpSubtract:
		return "-", nil
	case sysir.OpMultiply:
		return "*", nil
	case sysir.OpDivide:
		return "/", nil
	case sysir.OpGt:
		return ">", nil
	case sysir.OpGte:
		return ">=", nil
	case sysir.OpLt:
		return "<", nil
	case sysir.OpLte:
		return "<=", nil
	case sysir.OpEq:
		return "==", nil
	case sysir.OpNeq:
		return "!=", nil
	case sysir.OpBand:
		return "&", nil
	case sysir.OpBor:
		return "|", nil
	case sysir.OpBxor:
		return "^", nil
	case sysir.OpShl:
		return "<<", nil
	case sysir.OpShr:
		return ">>", nil
	default:
		return "", sysir.NewAssemblyError("lower", "unexpected three-operand opcode %s", op)
	}
}

// primNameOf returns the C primitive name backing reg's bound type,
// used for the pointee cast in load/store (sysir.c's own c_prim_names
// lookup indexes the type slot directly rather than resolving through
// type_defs first; that shortcut only works when the slot number
// happens to equal the primitive's own enum value, so here the lookup
// goes through TypeDefs explicitly instead of reproducing the shortcut).
func primNameOf(m *sysir.Module, reg uint32) string {
	slot := m.Types[reg]
	return m.TypeDefs[slot].Prim.CName()
}

func formatArgs(args []uint32) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("_r%d", a)
	}
	return out
}

func (p *Printer) printLine(pos sysir.Position) {
	if pos.Line > 0 {
		fmt.Fprintf(p.w, "#line %d\n", pos.Line)
	}
}

func (p *Printer) printLineIndented(pos sysir.Position) {
	if pos.Line > 0 {
		fmt.Fprintf(p.w, "#line %d\n  ", pos.Line)
	}
}
