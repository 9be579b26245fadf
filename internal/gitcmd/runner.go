package gitcmd

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultBinary is the version-control executable gitai drives.
const DefaultBinary = "git"

// Runner executes git commands with shared logging and output handling.
type Runner struct {
	Binary string
	Dir    string
	Env    []string
	Logger zerolog.Logger
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Result) StderrString(trim bool) string {
	output := string(r.Stderr)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// LookPath resolves the git executable on PATH.
func (r Runner) LookPath() (string, error) {
	return exec.LookPath(r.binary())
}

func (r Runner) command(args ...string) *exec.Cmd {
	cmd := exec.Command(r.binary(), args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func (r Runner) log(args []string) {
	r.Logger.Debug().Msgf("Running: %s %s", r.binary(), strings.Join(args, " "))
}

// Run executes a git command, logs it at debug level and captures stdout/stderr.
func (r Runner) Run(args ...string) (Result, error) {
	r.log(args)
	cmd := r.command(args...)
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}
