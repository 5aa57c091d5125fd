package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phoneCall = `
initial: OffHook
states:
  - name: OffHook
    permit:
      - trigger: CallDialed
        to: Ringing
  - name: Ringing
    permit:
      - trigger: CallConnected
        to: Connected
  - name: Connected
    ignore: [Noise]
    permit:
      - trigger: HungUp
        to: OffHook
  - name: On Hold
    substate_of: Connected
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGraphDot(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	out, _, err := execute(t, "graph", path)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph {"))
	assert.Contains(t, out, `"OffHook" -> "Ringing" [style="solid", label="CallDialed"];`)
	assert.Contains(t, out, `subgraph "clusterConnected"`)
	assert.Contains(t, out, ` init -> "OffHook"`)
}

func TestGraphMermaid(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	out, _, err := execute(t, "graph", path, "--format", "mermaid", "--direction", "LR")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "stateDiagram-v2\n\tdirection LR"))
	assert.Contains(t, out, "\n\tOnHold : On Hold")
	assert.Contains(t, out, "\n[*] --> OffHook")
}

func TestGraphToFile(t *testing.T) {
	path := writeDefinition(t, phoneCall)
	output := filepath.Join(t.TempDir(), "machine.dot")

	out, _, err := execute(t, "graph", path, "-o", output)

	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph {"))
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	errClose := errors.New("disk full")
	wc := &failingCloser{closeErr: errClose}

	err := writeAndClose(wc, func(w io.Writer) error {
		_, err := io.WriteString(w, "digraph {}")
		return err
	})

	assert.ErrorIs(t, err, errClose)
	assert.True(t, wc.closed)
	assert.Equal(t, "digraph {}", wc.String())
}

func TestWriteAndCloseKeepsWriteError(t *testing.T) {
	errWrite := errors.New("render failed")
	wc := &failingCloser{closeErr: errors.New("disk full")}

	err := writeAndClose(wc, func(io.Writer) error { return errWrite })

	assert.ErrorIs(t, err, errWrite)
	assert.True(t, wc.closed)
}

func TestGraphRejectsBadFlags(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	_, _, err := execute(t, "graph", path, "--format", "svg")
	assert.ErrorContains(t, err, `unknown format "svg"`)

	_, _, err = execute(t, "graph", path, "--direction", "LR")
	assert.ErrorContains(t, err, "mermaid format only")

	_, _, err = execute(t, "graph", path, "--format", "mermaid", "--direction", "up")
	assert.ErrorContains(t, err, "unknown mermaid direction")
}

func TestValidate(t *testing.T) {
	good := writeDefinition(t, phoneCall)
	bad := writeDefinition(t, "initial: Missing\nstates:\n  - name: A\n")

	out, stderr, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)
	assert.Empty(t, stderr)

	out, stderr, err = execute(t, "validate", good, bad)
	require.EqualError(t, err, "1 definition failed validation")
	assert.Contains(t, out, bad+": invalid\n")
	assert.Contains(t, stderr, `initial state \"Missing\" is not declared`)
}

func TestValidateQuiet(t *testing.T) {
	bad := writeDefinition(t, "initial: A\nstates: []\n")

	_, stderr, err := execute(t, "validate", "-q", bad, bad)

	require.EqualError(t, err, "2 definitions failed validation")
	assert.Empty(t, stderr)
}

func TestSimulate(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	out, _, err := execute(t, "simulate", path, "CallDialed", "CallConnected", "Noise", "HungUp")

	require.NoError(t, err)
	assert.Equal(t, "initial state: OffHook\n"+
		"OffHook --CallDialed--> Ringing\n"+
		"Ringing --CallConnected--> Connected\n"+
		"Connected ignores Noise\n"+
		"Connected --HungUp--> OffHook\n"+
		"final state: OffHook\n", out)
}

func TestSimulateStopsOnUnhandledTrigger(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	out, _, err := execute(t, "simulate", path, "HungUp", "CallDialed")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `simulation stopped in state "OffHook"`)
	assert.Contains(t, out, "OffHook cannot fire HungUp")
	assert.NotContains(t, out, "final state")
}

func TestSimulateKeepGoing(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	out, _, err := execute(t, "simulate", "-k", path, "HungUp", "CallDialed")

	require.NoError(t, err)
	assert.Contains(t, out, "final state: Ringing\n")
}

func TestSimulateVerboseLogsFirings(t *testing.T) {
	path := writeDefinition(t, phoneCall)

	_, stderr, err := execute(t, "simulate", "-v", path, "CallDialed")

	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=\"firing trigger\"")
	assert.Contains(t, stderr, "fire_id=")
	assert.Contains(t, stderr, "trigger=CallDialed")
}
