package pipeline_test

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CFiggers/sysir/internal/pipeline"
)

const addTwoSource = `
(prim 1 s32)
(bind 0 1)
(bind 1 1)
(bind 2 1)
(add 2 0 1)
(return 2)
`

func TestRunProducesModuleAndC(t *testing.T) {
	result, err := pipeline.Run(addTwoSource, pipeline.Options{ParameterCount: 2, LinkName: "add_two"})
	require.NoError(t, err)
	require.NotNil(t, result.Module)

	assert.Equal(t, "add_two", result.Module.LinkName)
	assert.Contains(t, result.C, "_r2 = _r0 + _r1;")
}

func TestRunLogsStages(t *testing.T) {
	var logs strings.Builder
	log := logrus.New()
	log.SetOutput(&logs)
	log.SetLevel(logrus.DebugLevel)

	_, err := pipeline.Run(addTwoSource, pipeline.Options{ParameterCount: 2, LinkName: "add_two", Log: log})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "assembled module")
	assert.Contains(t, logs.String(), "lowered to C")
}

func TestRunPropagatesAssembleErrors(t *testing.T) {
	_, err := pipeline.Run("(add 0 1 2)", pipeline.Options{ParameterCount: 1, LinkName: "bad"})
	require.Error(t, err)
}

func TestRunYAMLFrontEnd(t *testing.T) {
	doc := `
link-name: add_two
parameter-count: 2
instructions:
  - [prim, 1, s32]
  - [bind, 0, 1]
  - [bind, 1, 1]
  - [bind, 2, 1]
  - [add, 2, 0, 1]
  - [return, 2]
`
	result, err := pipeline.Run(doc, pipeline.Options{YAML: true})
	require.NoError(t, err)
	assert.Equal(t, "add_two", result.Module.LinkName)
}
