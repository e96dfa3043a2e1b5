package compiler

import (
	"io"
	"os"
	"os/exec"
)

// FileWriter is where generated crates are written.
type FileWriter interface {
	MkdirAll(path string) error
	WriteFile(path string, data []byte) error
}

// Runner runs external tools such as cargo.
type Runner interface {
	Run(dir, name string, args []string) error
}

// OSWriter writes to the local file system.
type OSWriter struct{}

// MkdirAll creates path and its parents.
func (OSWriter) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile writes data to path.
func (OSWriter) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run runs name with args in dir and waits for it.
func (r ExecRunner) Run(dir, name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}
