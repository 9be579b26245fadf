package workflow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samzong/gitai/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	cases := []struct {
		input string
		want  Decision
	}{
		{input: "c\n", want: DecisionCommit},
		{input: "C\n", want: DecisionCommit},
		{input: "c\r\n", want: DecisionCommit},
		{input: "c", want: DecisionCommit},
		{input: "e\n", want: DecisionEdit},
		{input: "E\r\n", want: DecisionEdit},
		{input: "d\n", want: DecisionDiscard},
		{input: "D", want: DecisionDiscard},
		{input: "x\n", want: DecisionInvalid},
		{input: "", want: DecisionInvalid},
		{input: "\n", want: DecisionInvalid},
		{input: " c\n", want: DecisionInvalid},
		{input: "c \n", want: DecisionInvalid},
		{input: "c\n\n", want: DecisionInvalid},
		{input: "commit\n", want: DecisionInvalid},
	}

	for _, tc := range cases {
		t.Run(strings.ReplaceAll(strings.ReplaceAll(tc.input, "\n", `\n`), "\r", `\r`), func(t *testing.T) {
			assert.Equal(t, tc.want, ParseDecision(tc.input))
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "commit", DecisionCommit.String())
	assert.Equal(t, "edit", DecisionEdit.String())
	assert.Equal(t, "discard", DecisionDiscard.String())
	assert.Equal(t, "invalid", DecisionInvalid.String())
}

func TestInteractiveReviewer_CommitKeepsMessage(t *testing.T) {
	for _, input := range []string{"c\n", "C\n", "c\r\n"} {
		var out bytes.Buffer
		editor := &fakeEditor{}
		r := &InteractiveReviewer{In: strings.NewReader(input), Out: &out, Editor: editor}

		res, err := r.Review("Fix bug")
		require.NoError(t, err)
		assert.Equal(t, Resolution{Decision: DecisionCommit, Message: "Fix bug"}, res)
		assert.Empty(t, editor.received, "editor must not run on commit")
	}
}

func TestInteractiveReviewer_PresentsFramedMessage(t *testing.T) {
	var out bytes.Buffer
	r := &InteractiveReviewer{In: strings.NewReader("d\n"), Out: &out}

	_, err := r.Review("Fix bug")
	require.NoError(t, err)

	line := strings.Repeat("=", 61)
	assert.Contains(t, out.String(), "Commit message\n"+line+"\nFix bug\n"+line+"\n")
	assert.Contains(t, out.String(), "Proceed? (c)ommit, (e)dit, (d)iscard")
}

func TestInteractiveReviewer_Discard(t *testing.T) {
	r := &InteractiveReviewer{In: strings.NewReader("D\r\n"), Out: &bytes.Buffer{}}

	res, err := r.Review("Fix bug")
	require.NoError(t, err)
	assert.Equal(t, DecisionDiscard, res.Decision)
}

func TestInteractiveReviewer_InvalidChoice(t *testing.T) {
	for _, input := range []string{"x\n", "", "yes\n", " c\n"} {
		r := &InteractiveReviewer{In: strings.NewReader(input), Out: &bytes.Buffer{}}

		_, err := r.Review("Fix bug")
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, errs.ErrInvalidChoice)
		assert.Contains(t, err.Error(), "invalid option selected")
	}
}

func TestInteractiveReviewer_EditIsSinglePass(t *testing.T) {
	var out bytes.Buffer
	editor := &fakeEditor{edited: "Fix the null pointer bug"}
	// The trailing "d" would discard if the edited message were presented again.
	r := &InteractiveReviewer{In: strings.NewReader("e\nd\n"), Out: &out, Editor: editor}

	res, err := r.Review("Fix bug")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Decision: DecisionCommit, Message: "Fix the null pointer bug"}, res)
	assert.Equal(t, []string{"Fix bug"}, editor.received)
	assert.Equal(t, 1, strings.Count(out.String(), "Proceed?"))
	assert.Contains(t, out.String(), "Editing commit message")
}

func TestInteractiveReviewer_EditAcceptsEmptyText(t *testing.T) {
	editor := &fakeEditor{edited: ""}
	r := &InteractiveReviewer{In: strings.NewReader("e\n"), Out: &bytes.Buffer{}, Editor: editor}

	res, err := r.Review("Fix bug")
	require.NoError(t, err)
	assert.Equal(t, DecisionCommit, res.Decision)
	assert.Equal(t, "", res.Message)
}

func TestInteractiveReviewer_EditorFailure(t *testing.T) {
	editor := &fakeEditor{err: errs.New(errs.SubprocessFailure, "failed to run editor", errBoom)}
	r := &InteractiveReviewer{In: strings.NewReader("e\n"), Out: &bytes.Buffer{}, Editor: editor}

	_, err := r.Review("Fix bug")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrSubprocessFailure)
	assert.NotErrorIs(t, err, errs.ErrInvalidChoice)
}
