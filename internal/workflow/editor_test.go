package workflow

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/samzong/gitai/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEditorScript creates a shell script that copies the file it is given to
// seen.txt, then runs body with the file path in $1.
func writeEditorScript(t *testing.T, body string) (script string, seen string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("editor scripts need a POSIX shell")
	}
	dir := t.TempDir()
	seen = filepath.Join(dir, "seen.txt")
	script = filepath.Join(dir, "editor.sh")
	content := "#!/bin/sh\ncp \"$1\" '" + seen + "'\n" + body + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0o755))
	return script, seen
}

func TestExternalEditor_Command(t *testing.T) {
	t.Setenv("EDITOR", "nano")

	cases := []struct {
		name    string
		command string
		want    string
	}{
		{name: "configured", command: "code --wait", want: "code --wait"},
		{name: "blank uses default", command: "  ", want: "vi"},
		{name: "empty uses default", command: "", want: "vi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &ExternalEditor{Command: tc.command}
			if got := e.command(); got != tc.want {
				t.Fatalf("command() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExternalEditor_ReplacesMessage(t *testing.T) {
	script, seen := writeEditorScript(t, `printf 'Fix the null pointer bug' > "$1"`)
	tmp := t.TempDir()

	e := &ExternalEditor{Command: script, TempDir: tmp, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	got, err := e.Edit("Fix bug")
	require.NoError(t, err)
	assert.Equal(t, "Fix the null pointer bug", got)

	before, err := os.ReadFile(seen)
	require.NoError(t, err)
	assert.Equal(t, "Fix bug", string(before), "editor must see the generated message")

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be removed")
}

func TestExternalEditor_ReturnsContentVerbatim(t *testing.T) {
	script, _ := writeEditorScript(t, `printf '  feat: x\n\nbody\n' > "$1"`)

	e := &ExternalEditor{Command: script, TempDir: t.TempDir()}
	got, err := e.Edit("Fix bug")
	require.NoError(t, err)
	assert.Equal(t, "  feat: x\n\nbody\n", got)
}

func TestExternalEditor_CommandWithArguments(t *testing.T) {
	script, _ := writeEditorScript(t, `printf 'edited' > "$1"`)

	e := &ExternalEditor{Command: "sh " + script, TempDir: t.TempDir()}
	got, err := e.Edit("Fix bug")
	require.NoError(t, err)
	assert.Equal(t, "edited", got)
}

func TestExternalEditor_EditorFails(t *testing.T) {
	script, _ := writeEditorScript(t, "exit 3")
	tmp := t.TempDir()

	e := &ExternalEditor{Command: script, TempDir: tmp}
	_, err := e.Edit("Fix bug")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSubprocessFailure)
	assert.Contains(t, err.Error(), "failed to run editor")

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be removed after editor failure")
}

func TestExternalEditor_EditorMissing(t *testing.T) {
	e := &ExternalEditor{Command: "gitai-no-such-editor", TempDir: t.TempDir()}

	_, err := e.Edit("Fix bug")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSubprocessFailure)
}

func TestExternalEditor_TempFileCreationFails(t *testing.T) {
	e := &ExternalEditor{Command: "true", TempDir: filepath.Join(t.TempDir(), "missing")}

	_, err := e.Edit("Fix bug")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSubprocessFailure)
	assert.Contains(t, err.Error(), "failed to create temporary file")
}
