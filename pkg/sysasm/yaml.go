package sysasm

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CFiggers/sysir/pkg/sysir"
)

// yamlRecord mirrors the structured input record from spec.md §6 for
// hosts that prefer to emit sysir as data rather than text: the same
// three keys (instructions, parameter-count, link-name), with each
// instruction written as a YAML sequence whose first element is the
// opcode name.
type yamlRecord struct {
	LinkName       string      `yaml:"link-name"`
	ParameterCount uint32      `yaml:"parameter-count"`
	Instructions   []yaml.Node `yaml:"instructions"`
}

// AssembleYAML decodes doc as a yamlRecord and assembles it exactly as
// Assemble would a textual program: the YAML instruction sequence is
// rendered back into the tuple surface and fed through the same
// lexer/parser, so both front-ends share one assembler implementation.
func AssembleYAML(doc []byte) (*sysir.Module, error) {
	var rec yamlRecord
	if err := yaml.Unmarshal(doc, &rec); err != nil {
		return nil, sysir.NewAssemblyError("parse", "invalid yaml record: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "(link-name %q)\n", orDefault(rec.LinkName, DefaultLinkName))
	fmt.Fprintf(&b, "(parameter-count %d)\n", rec.ParameterCount)
	for _, node := range rec.Instructions {
		rendered, err := renderInstructionNode(&node)
		if err != nil {
			return nil, err
		}
		b.WriteString(rendered)
		b.WriteByte('\n')
	}

	return Assemble(b.String(), rec.ParameterCount, orDefault(rec.LinkName, DefaultLinkName))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// renderInstructionNode turns one YAML instruction entry — either a
// bare `:label` scalar or a `[opcode, operand, ...]` sequence — into
// the equivalent textual assembly token(s).
func renderInstructionNode(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode {
		if strings.HasPrefix(node.Value, ":") {
			return node.Value, nil
		}
		return "", sysir.NewAssemblyError("parse", "expected instruction sequence or label, got scalar %q", node.Value)
	}
	if node.Kind != yaml.SequenceNode {
		return "", sysir.NewAssemblyError("parse", "expected instruction to be a sequence, got %v", node.Kind)
	}

	var parts []string
	for _, operand := range node.Content {
		parts = append(parts, renderOperandNode(operand))
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

// renderOperandNode renders a single operand, preserving the
// int/float/string/symbol distinction the textual lexer relies on:
// YAML's own tag tells us which of those four a scalar was.
func renderOperandNode(n *yaml.Node) string {
	switch n.Tag {
	case "!!int":
		return n.Value
	case "!!float":
		if _, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return n.Value
		}
		return "0"
	case "!!str":
		if strings.HasPrefix(n.Value, ":") {
			return n.Value
		}
		if n.Style == yaml.DoubleQuotedStyle || n.Style == yaml.SingleQuotedStyle {
			return strconv.Quote(n.Value)
		}
		return n.Value
	default:
		return n.Value
	}
}
