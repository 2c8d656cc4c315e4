// Package sysasm is the assembler front-end (spec.md §4.1): a textual
// lexer/parser for the tuple-based IR assembly surface, plus a YAML
// front-end for hosts that prefer to emit the same three-key record
// (instructions, parameter-count, link-name) as structured data. Both
// front-ends build a sysir.Module and then run sysir.ResolveTypes and
// sysir.Verify, matching the single `asm(record) -> module` entry point
// from spec.md §6.
package sysasm

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenInt     // 42
	TokenFloat   // 3.14
	TokenString  // "hello"
	TokenSymbol  // add, s32, printf, _thunk
	TokenKeyword // :label

	TokenLParen // (
	TokenRParen // )
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenIllegal: "ILLEGAL",
	TokenInt:     "INT",
	TokenFloat:   "FLOAT",
	TokenString:  "STRING",
	TokenSymbol:  "SYMBOL",
	TokenKeyword: "KEYWORD",
	TokenLParen:  "(",
	TokenRParen:  ")",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one lexical token of the assembly surface.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}
