package sysasm

import (
	"strconv"

	"github.com/CFiggers/sysir/pkg/hostvalue"
	"github.com/CFiggers/sysir/pkg/sysir"
)

// Parser consumes the token stream produced by Lexer and builds a
// sysir.Module. It implements the arity rules, variable-arity packing,
// call promotion, constant interning, and terminator check from
// spec.md §4.1 — the Go analog of sysir.c's janet_sysir_init_instructions.
type Parser struct {
	toks []Token
	pos  int

	mod        *sysir.Module
	labels     map[string]uint32
	constCache map[hostvalue.Value]uint32
	fixups     []pendingFixup
}

// Parse lexes source (a bare sequence of instruction tuples and keyword
// labels, optionally preceded by `(link-name "...")` and
// `(parameter-count N)` metadata tuples) and assembles it into a
// sysir.Module. parameterCount and linkName are used only when the
// source does not itself supply the corresponding metadata tuple — the
// defaults from spec.md §6 (0 and "_thunk") are applied by the caller,
// not here.
func Parse(source string, parameterCount uint32, linkName string) (*sysir.Module, error) {
	l := New(source)
	var toks []Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == TokenEOF {
			break
		}
	}

	p := &Parser{
		toks:       toks,
		mod:        sysir.NewModule(linkName, parameterCount),
		labels:     map[string]uint32{},
		constCache: map[hostvalue.Value]uint32{},
	}
	return p.run()
}

func (p *Parser) run() (*sysir.Module, error) {
	for p.cur().Type != TokenEOF {
		switch p.cur().Type {
		case TokenKeyword:
			// A standalone keyword names a label: it resolves to the
			// instruction index that follows it in the stream.
			p.labels[p.cur().Literal] = uint32(len(p.mod.Instructions))
			p.advance()

		case TokenLParen:
			tuple, err := p.readTuple()
			if err != nil {
				return nil, err
			}
			if len(tuple) == 0 {
				return nil, newParseError(p.cur(), "invalid instruction, no opcode")
			}
			head := tuple[0]
			if head.Type != TokenSymbol {
				return nil, newParseError(head, "expected opcode symbol, found %s", head.Literal)
			}
			switch head.Literal {
			case "link-name":
				if len(tuple) != 2 || tuple[1].Type != TokenString {
					return nil, newParseError(head, "link-name expects a single string operand")
				}
				p.mod.LinkName = tuple[1].Literal
				continue
			case "parameter-count":
				if len(tuple) != 2 || tuple[1].Type != TokenInt {
					return nil, newParseError(head, "parameter-count expects a single integer operand")
				}
				n, _ := strconv.ParseUint(tuple[1].Literal, 10, 32)
				p.mod.ParameterCount = uint32(n)
				continue
			}
			if err := p.assembleInstruction(tuple); err != nil {
				return nil, err
			}

		default:
			return nil, newParseError(p.cur(), "expected instruction to be tuple, got %s", p.cur().Literal)
		}
	}

	if err := p.resolveFixups(); err != nil {
		return nil, err
	}

	if len(p.mod.Instructions) == 0 {
		return nil, newError("parse", "last instruction must be jump or return, got empty program")
	}
	switch p.mod.Instructions[len(p.mod.Instructions)-1].(type) {
	case sysir.Jump, sysir.Return:
	default:
		return nil, newError("parse", "last instruction must be jump or return")
	}

	if err := p.checkJumpTargets(); err != nil {
		return nil, err
	}

	return p.mod, nil
}

// resolveFixups patches forward keyword-label references now that the
// full label table has been built (spec.md §4.1's described design for
// labels declared anywhere in the stream, not just before their use).
func (p *Parser) resolveFixups() error {
	for _, fx := range p.fixups {
		target, ok := p.labels[fx.label]
		if !ok {
			return newError("parse", "unknown label %s", fx.label)
		}
		switch instr := p.mod.Instructions[fx.pc].(type) {
		case sysir.Jump:
			instr.Target = target
			p.mod.Instructions[fx.pc] = instr
		case sysir.Branch:
			instr.Target = target
			p.mod.Instructions[fx.pc] = instr
		}
	}
	return nil
}

// checkJumpTargets enforces spec.md §8's invariant that every
// jump/branch target is a valid instruction index within the module.
func (p *Parser) checkJumpTargets() error {
	n := uint32(len(p.mod.Instructions))
	for _, instr := range p.mod.Instructions {
		switch i := instr.(type) {
		case sysir.Jump:
			if i.Target >= n {
				return newError("parse", "jump target %d out of range", i.Target)
			}
		case sysir.Branch:
			if i.Target >= n {
				return newError("parse", "branch target %d out of range", i.Target)
			}
		}
	}
	return nil
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

// readTuple consumes a balanced "(" ... ")" and returns its contents,
// including the opening symbol, excluding the parens themselves.
func (p *Parser) readTuple() ([]Token, error) {
	if p.cur().Type != TokenLParen {
		return nil, newParseError(p.cur(), "expected '('")
	}
	p.advance()
	var out []Token
	for p.cur().Type != TokenRParen {
		if p.cur().Type == TokenEOF {
			return nil, newParseError(p.cur(), "unterminated instruction tuple")
		}
		out = append(out, p.cur())
		p.advance()
	}
	p.advance() // consume ')'
	return out, nil
}

func newParseError(t Token, format string, args ...any) error {
	args2 := append([]any{t.Line, t.Column}, args...)
	return sysir.NewAssemblyError("parse", "line %d col %d: "+format, args2...)
}

func newError(stage, format string, args ...any) error {
	return sysir.NewAssemblyError(stage, format, args...)
}
