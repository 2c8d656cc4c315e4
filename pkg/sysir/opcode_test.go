package sysir

import "testing"

func TestLookupOpcodeKnown(t *testing.T) {
	for _, name := range []string{"add", "return", "jump", "branch", "fget", "fset", "prim", "struct", "bind"} {
		if _, ok := LookupOpcode(name); !ok {
			t.Errorf("expected %q to resolve", name)
		}
	}
}

func TestLookupOpcodeUnknown(t *testing.T) {
	if _, ok := LookupOpcode("nonsense"); ok {
		t.Error("expected unknown mnemonic to fail lookup")
	}
}

func TestLookupOpcodeExcludesSynthesizedOnly(t *testing.T) {
	for _, name := range []string{"callk", "arg"} {
		if _, ok := LookupOpcode(name); ok {
			t.Errorf("expected %q to be absent from the textual table", name)
		}
	}
}

func TestOpcodeStringRoundTrip(t *testing.T) {
	for _, entry := range opcodeTable {
		if entry.op.String() != entry.name {
			t.Errorf("Opcode(%d).String() = %q, want %q", entry.op, entry.op.String(), entry.name)
		}
	}
}
