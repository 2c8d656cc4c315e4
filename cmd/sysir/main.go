package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CFiggers/sysir/internal/pipeline"
	"github.com/CFiggers/sysir/pkg/sysir"
)

// version is set at build time via -ldflags; "dev" otherwise.
var version = "dev"

// ErrNotImplemented is returned for flags reserved for a stage this
// build does not provide, matching the cross-block optimizer stage
// spec.md's Non-goals explicitly excludes.
var ErrNotImplemented = errors.New("not yet implemented")

var (
	dAsm    bool
	dTypes  bool
	dVerify bool
	dC      bool
	dOptim  bool
	yamlIn  bool
	verbose bool
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sysir [file]",
		Short:   "Assemble and lower a typed register IR program to C",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], out, errOut)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.Flags().BoolVar(&dAsm, "dasm", false, "print the assembled instruction stream")
	cmd.Flags().BoolVar(&dTypes, "dtypes", false, "print the resolved type table")
	cmd.Flags().BoolVar(&dVerify, "dverify", false, "print verification result and stop")
	cmd.Flags().BoolVar(&dC, "dc", false, "print lowered C to stdout instead of writing a file")
	cmd.Flags().BoolVar(&dOptim, "doptim", false, "run cross-block optimization passes (reserved)")
	cmd.Flags().BoolVar(&yamlIn, "yaml", false, "treat the input file as a YAML assembly record")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline stage")

	return cmd
}

func run(path string, out, errOut io.Writer) error {
	if dOptim {
		fmt.Fprintln(errOut, "doptim: cross-block optimization passes are not yet implemented")
		return ErrNotImplemented
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(errOut)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	result, err := pipeline.Run(string(src), pipeline.Options{
		Log:  log,
		YAML: yamlIn,
	})
	if err != nil {
		return err
	}

	if dAsm {
		printAssembly(out, result.Module)
	}
	if dTypes {
		printTypes(out, result.Module)
	}
	if dVerify {
		fmt.Fprintln(out, "verify: ok")
		return nil
	}
	if dC {
		fmt.Fprint(out, result.C)
		return nil
	}
	if dAsm || dTypes {
		return nil
	}

	outPath := loweredOutputFilename(path)
	if err := os.WriteFile(outPath, []byte(result.C), 0644); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", outPath)
	return nil
}

// loweredOutputFilename derives the generated C file's name from the
// source path: foo.sysir becomes foo.lowered.c, matching the
// <name>.parsed.c convention for debug output files elsewhere in the
// pack's compiler front-ends.
func loweredOutputFilename(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + ".lowered.c"
}

// printAssembly lists each instruction by program counter and Go type,
// the same "_i<pc>: <shape>" shape the C lowerer uses for labels.
func printAssembly(out io.Writer, m *sysir.Module) {
	fmt.Fprintf(out, "; %s, %d parameter(s), %d register(s)\n", m.LinkName, m.ParameterCount, m.RegisterCount)
	for pc, instr := range m.Instructions {
		fmt.Fprintf(out, "_i%d: %T\n", pc, instr)
	}
}

// printTypes lists the resolved type-definition table: one line per
// slot, naming its primitive tag or, for structs, its field count.
func printTypes(out io.Writer, m *sysir.Module) {
	for slot, def := range m.TypeDefs {
		if def.Prim == sysir.PrimStruct {
			fmt.Fprintf(out, "_t%d: struct { %d field(s) }\n", slot, def.FieldCount)
			continue
		}
		fmt.Fprintf(out, "_t%d: %s\n", slot, def.Prim)
	}
}
