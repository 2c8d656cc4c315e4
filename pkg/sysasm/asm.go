package sysasm

import "github.com/CFiggers/sysir/pkg/sysir"

// DefaultLinkName is used when a source record supplies no link-name,
// matching spec.md §6: "link-name defaults to the literal _thunk".
const DefaultLinkName = "_thunk"

// Assemble is the sysir `asm` entry point (spec.md §6): parse the
// textual assembly surface, resolve types, and verify, in one call.
// parameterCount and linkName seed the module before parsing; a
// `(parameter-count N)` or `(link-name "...")` metadata tuple in source
// overrides them.
func Assemble(source string, parameterCount uint32, linkName string) (*sysir.Module, error) {
	if linkName == "" {
		linkName = DefaultLinkName
	}
	mod, err := Parse(source, parameterCount, linkName)
	if err != nil {
		return nil, err
	}
	if err := sysir.ResolveTypes(mod); err != nil {
		return nil, err
	}
	if err := sysir.Verify(mod); err != nil {
		return nil, err
	}
	return mod, nil
}
