package sysasm

import "testing"

func TestAssembleYAMLAddTwo(t *testing.T) {
	doc := []byte(`
link-name: add_two
parameter-count: 2
instructions:
  - [prim, 1, s32]
  - [bind, 0, 1]
  - [bind, 1, 1]
  - [bind, 2, 1]
  - [add, 2, 0, 1]
  - [return, 2]
`)
	mod, err := AssembleYAML(doc)
	if err != nil {
		t.Fatalf("AssembleYAML: %v", err)
	}
	if mod.LinkName != "add_two" {
		t.Errorf("expected link name add_two, got %q", mod.LinkName)
	}
	if mod.ReturnType != 1 {
		t.Errorf("expected return type slot 1, got %d", mod.ReturnType)
	}
}

func TestAssembleYAMLLabels(t *testing.T) {
	doc := []byte(`
parameter-count: 1
instructions:
  - [prim, 1, s32]
  - [bind, 0, 1]
  - [jump, ":done"]
  - ":done"
  - [return, 0]
`)
	mod, err := AssembleYAML(doc)
	if err != nil {
		t.Fatalf("AssembleYAML: %v", err)
	}
	if len(mod.Instructions) != 4 {
		t.Fatalf("expected 4 resolved instructions (label is not itself one), got %d", len(mod.Instructions))
	}
}

func TestAssembleYAMLDefaultsLinkName(t *testing.T) {
	doc := []byte(`
parameter-count: 1
instructions:
  - [prim, 1, s32]
  - [bind, 0, 1]
  - [return, 0]
`)
	mod, err := AssembleYAML(doc)
	if err != nil {
		t.Fatalf("AssembleYAML: %v", err)
	}
	if mod.LinkName != DefaultLinkName {
		t.Errorf("expected default link name %q, got %q", DefaultLinkName, mod.LinkName)
	}
}

func TestAssembleYAMLInvalidDocument(t *testing.T) {
	if _, err := AssembleYAML([]byte("not: [valid")); err == nil {
		t.Fatal("expected an error for invalid YAML, got nil")
	}
}
