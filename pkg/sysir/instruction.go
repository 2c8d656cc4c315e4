package sysir

// Position carries the optional source line/column for an instruction.
// Zero in either field means absent; sysir never synthesizes a position
// it was not given.
type Position struct {
	Line   int32
	Column int32
}

// Instruction is one entry in a module's flat instruction array. Each
// concrete type corresponds to exactly one payload shape from the
// opcode table; jump and branch targets are instruction indices into
// the same array, so instruction identity is index-stable from assembly
// through lowering.
type Instruction interface {
	Pos() Position
	implInstruction()
}

// ThreeOp covers arithmetic, bitwise, shift, and comparison opcodes:
// add, subtract, multiply, divide, band, bor, bxor, shl, shr, gt, gte,
// lt, lte, eq, neq. Op distinguishes which of those this instance is.
type ThreeOp struct {
	Position
	Op             Opcode
	Dest, Lhs, Rhs uint32
}

// TwoOp covers move, cast, bnot, load, store, and address.
type TwoOp struct {
	Position
	Op       Opcode
	Dest, Src uint32
}

// Return is the sole "one" shape: return src.
type Return struct {
	Position
	Src uint32
}

// Jump is an unconditional jump to an instruction index.
type Jump struct {
	Position
	Target uint32
}

// Branch is a conditional jump: if cond, go to target.
type Branch struct {
	Position
	Cond, Target uint32
}

// Constant loads a constant-pool entry into a register.
type Constant struct {
	Position
	Dest     uint32
	ConstIdx uint32
}

// Call is an indirect call through a register holding a callee.
// ArgCount trailing operands are carried in the Arg continuations that
// immediately follow this instruction in the module's instruction array.
type Call struct {
	Position
	Dest, Callee, ArgCount uint32
}

// CallK is a direct call to a named function, synthesized from Call by
// call promotion when the callee operand is a symbol rather than a
// register. ConstIdx indexes the constant pool entry holding the name.
type CallK struct {
	Position
	Dest, ConstIdx, ArgCount uint32
}

// TypePrim declares a primitive type in a type slot.
type TypePrim struct {
	Position
	DestType uint32
	Prim     PrimTag
}

// TypeStruct declares a struct type in a type slot. ArgCount field
// types follow in Arg continuations, packed three per continuation.
type TypeStruct struct {
	Position
	DestType uint32
	ArgCount uint32
}

// TypeBind binds a register to a type slot.
type TypeBind struct {
	Position
	Dest uint32
	Type uint32
}

// Arg is a synthetic continuation record carrying up to three packed
// operands for the immediately preceding variable-arity instruction
// (Call, CallK, or TypeStruct). Unused trailing slots are zero. Arg
// instructions are skipped by the verifier's and lowerer's main
// dispatch; they are only ever read by index from the head instruction.
type Arg struct {
	Position
	Slots [3]uint32
}

// Field covers struct field access: fget (r = st.field) and fset
// (st.field = r), distinguished by Op.
type Field struct {
	Position
	Op       Opcode
	R, St    uint32
	FieldIdx uint32
}

func (p Position) Pos() Position { return p }

func (ThreeOp) implInstruction()    {}
func (TwoOp) implInstruction()      {}
func (Return) implInstruction()     {}
func (Jump) implInstruction()       {}
func (Branch) implInstruction()     {}
func (Constant) implInstruction()   {}
func (Call) implInstruction()       {}
func (CallK) implInstruction()      {}
func (TypePrim) implInstruction()   {}
func (TypeStruct) implInstruction() {}
func (TypeBind) implInstruction()   {}
func (Arg) implInstruction()        {}
func (Field) implInstruction()      {}

// ArgsAt reconstructs the n packed operands for the variable-arity
// instruction at headPC (a Call, CallK, or TypeStruct), reading them
// from the Arg continuations that follow headPC in instrs. This is the
// same head_pc + 1 + j/3, slot j%3 addressing used throughout sysir.c.
func ArgsAt(instrs []Instruction, headPC uint32, n uint32) []uint32 {
	out := make([]uint32, n)
	for j := uint32(0); j < n; j++ {
		cont := instrs[headPC+1+j/3].(Arg)
		out[j] = cont.Slots[j%3]
	}
	return out
}
