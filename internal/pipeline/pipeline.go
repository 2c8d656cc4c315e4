// Package pipeline wires the four sysir stages — assembly, type
// resolution, verification, and C lowering — into the single call
// cmd/sysir needs, logging one structured line for assembly (which
// covers type resolution and verification) and one for lowering, the way
// assembler-adjacent tools in the wider ecosystem do (grounded on the
// Kaweees-ViperASM manifest's logrus usage, since the teacher itself
// only ever writes straight to an io.Writer).
package pipeline

import (
	"bytes"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CFiggers/sysir/pkg/clower"
	"github.com/CFiggers/sysir/pkg/sysasm"
	"github.com/CFiggers/sysir/pkg/sysir"
)

// Result carries every artifact a caller might want to inspect at a
// given --d* debug flag: the assembled module and, once lowering runs,
// the generated C source.
type Result struct {
	Module *sysir.Module
	C      string
}

// Options selects the front-end, seeds the parameter count and link
// name for textual input, and names the logger that receives progress
// lines. Every stage always runs. A nil Log disables logging entirely.
type Options struct {
	Log            *logrus.Logger
	ParameterCount uint32
	LinkName       string
	YAML           bool
}

// Run assembles source through ResolveTypes and Verify, then lowers the
// result to C, returning once every stage has succeeded. Assembly and
// lowering are each logged with their own elapsed time, mirroring the
// per-pass progress reporting compilers in the pack emit for -d* flags.
func Run(source string, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(noopWriter{})
	}

	start := time.Now()
	var mod *sysir.Module
	var err error
	if opts.YAML {
		mod, err = sysasm.AssembleYAML([]byte(source))
	} else {
		mod, err = sysasm.Assemble(source, opts.ParameterCount, opts.LinkName)
	}
	if err != nil {
		log.WithError(err).Error("assemble")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"stage":        "assemble",
		"instructions": len(mod.Instructions),
		"elapsed":      time.Since(start),
	}).Debug("assembled module")

	lowerStart := time.Now()
	var buf bytes.Buffer
	if err := clower.Lower(mod, &buf); err != nil {
		log.WithError(err).Error("lower")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"stage":   "lower",
		"bytes":   buf.Len(),
		"elapsed": time.Since(lowerStart),
	}).Debug("lowered to C")

	return &Result{Module: mod, C: buf.String()}, nil
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
