package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Command constants
const (
	ADBCommand     = "adb"
	ADBExecOut     = "exec-out"
	ADBSerialFlag  = "-s"
	PMCommand      = "pm"
	AMCommand      = "am"
	CmdCommand     = "cmd"
	DumpsysCommand = "dumpsys"
	CatCommand     = "cat"
)

// Output markers the package and activity managers print when access is refused
var permissionMarkers = []string{"SecurityException", "Permission Denial", "Permission denied"}

// Runner executes device shell tools
type Runner interface {
	// Output runs the command and returns its standard output
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream runs the command and returns its standard output as it is produced.
	// Close waits for the command and reports its exit status.
	Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error)
}

// NewRunner returns a local runner on Android and an adb runner elsewhere.
// adbPath and serial only apply to the adb runner; an empty adbPath uses
// "adb" from PATH.
func NewRunner(adbPath, serial string) Runner {
	return newRunner(runtime.GOOS, adbPath, serial)
}

func newRunner(goos, adbPath, serial string) Runner {
	if goos == OSAndroid {
		return ExecRunner{}
	}
	return ADBRunner{Path: adbPath, Serial: serial}
}

// ExecRunner runs commands on the local machine
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return runOutput(ctx, name, args...)
}

func (ExecRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	return runStream(ctx, name, args...)
}

// Local reports that file paths given to commands are readable by this process
func (ExecRunner) Local() bool { return true }

// ADBRunner runs commands on a connected device through adb exec-out
type ADBRunner struct {
	Path   string // adb binary, defaults to "adb" on PATH
	Serial string // device serial; empty selects the only connected device
}

func (r ADBRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return runOutput(ctx, r.binary(), r.argv(name, args)...)
}

func (r ADBRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	return runStream(ctx, r.binary(), r.argv(name, args)...)
}

func (r ADBRunner) binary() string {
	if r.Path == "" {
		return ADBCommand
	}
	return r.Path
}

// argv builds the adb arguments. exec-out joins everything after it into one
// device shell command line, so each word is quoted.
func (r ADBRunner) argv(name string, args []string) []string {
	argv := make([]string, 0, len(args)+4)
	if r.Serial != "" {
		argv = append(argv, ADBSerialFlag, r.Serial)
	}
	argv = append(argv, ADBExecOut, shellQuote(name))
	for _, a := range args {
		argv = append(argv, shellQuote(a))
	}
	return argv
}

func runOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if perr := permissionError(out, stderr.Bytes()); perr != nil {
		return out, perr
	}
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

func runStream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s: stdout pipe: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: start: %w", name, err)
	}
	return &commandStream{ReadCloser: stdout, cmd: cmd, stderr: &stderr, name: name}, nil
}

type commandStream struct {
	io.ReadCloser
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	name   string
}

func (s *commandStream) Close() error {
	// Drain so the process is never blocked on a full pipe while we wait.
	_, _ = io.Copy(io.Discard, s.ReadCloser)
	err := s.cmd.Wait()
	if perr := permissionError(nil, s.stderr.Bytes()); perr != nil {
		return perr
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %s", s.name, err, strings.TrimSpace(s.stderr.String()))
	}
	return nil
}

// permissionError wraps fs.ErrPermission when the tool output reports a refusal
func permissionError(outputs ...[]byte) error {
	for _, out := range outputs {
		for _, line := range strings.Split(string(out), "\n") {
			for _, marker := range permissionMarkers {
				if strings.Contains(line, marker) {
					return fmt.Errorf("%w: %s", fs.ErrPermission, strings.TrimSpace(line))
				}
			}
		}
	}
	return nil
}

// IsPermission reports whether err is a platform permission refusal
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,+@%", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
