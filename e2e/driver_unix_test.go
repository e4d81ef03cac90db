//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback
var binPath = "partsearch_e2e"

// Key sequences as a terminal sends them
const (
	KeyEnter  = "\r"
	KeyEsc    = "\x1b"
	KeyCtrlC  = "\x03"
	KeyCtrlK  = "\x0b"
	KeyCtrlO  = "\x0f"
	KeyDown   = "\x1b[B"
	KeyQuit   = "q"
	KeySearch = "/"
)

// ANSI escape sequence regex for normalization: CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?<>]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

const fixtureJSON = `{
  "cpu": [
    {"objectID": "c1", "name": "AMD Ryzen 5 5600X", "price": 199.99, "socket": "AM4"},
    {"objectID": "c2", "name": "AMD Ryzen 7 7800X3D", "price": 449, "socket": "AM5"},
    {"objectID": "c3", "name": "Intel Core i5-13600K", "price": 289}
  ],
  "motherboard": [
    {"objectID": "b1", "name": "MSI B550 Tomahawk", "price": 169}
  ],
  "video-card": [
    {"objectID": "g1", "name": "AMD Radeon RX 7800 XT", "price": 499.99},
    {"objectID": "g2", "name": "NVIDIA GeForce RTX 4070", "price": 549}
  ]
}`

// TUITestFramework drives the partsearch binary through a PTY
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewTUITest creates a new TUI test framework instance
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{
		t:   t,
		buf: make([]byte, ringSize),
	}
}

// CreateWorkspace writes a config and a fixture into a temp directory
func (tf *TUITestFramework) CreateWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "partsearch-e2e-")
	if err != nil {
		return "", err
	}
	tf.workspace = dir

	config := fmt.Sprintf(`[search]
categories = ["cpu", "motherboard", "video-card"]
debounce = "0s"

[build]
path = %q

[log]
level = "debug"
path = %q
`, filepath.Join(dir, "build.db"), filepath.Join(dir, "partsearch.log"))

	if err := os.WriteFile(tf.ConfigPath(), []byte(config), 0600); err != nil {
		return "", err
	}
	if err := os.WriteFile(tf.FixturePath(), []byte(fixtureJSON), 0600); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath is the workspace config file
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "config.toml")
}

// FixturePath is the workspace fixture file
func (tf *TUITestFramework) FixturePath() string {
	return filepath.Join(tf.workspace, "fixture.json")
}

func (tf *TUITestFramework) env() []string {
	return append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"LANG=C.UTF-8",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+tf.workspace,
		"ALGOLIA_APP_ID=",
		"ALGOLIA_SEARCH_API_KEY=",
	)
}

// baseArgs points the binary at the workspace
func (tf *TUITestFramework) baseArgs(args ...string) []string {
	return append([]string{"--config", tf.ConfigPath(), "--fixture", tf.FixturePath()}, args...)
}

// StartApp launches partsearch with the given extra arguments in a PTY
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, tf.baseArgs(args...)...)
	tf.cmd.Dir = tf.workspace
	tf.cmd.Env = tf.env()

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}

	tf.pty = ptyFile
	tf.tty = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stderr = tty

	ws := struct {
		Row uint16
		Col uint16
		X   uint16
		Y   uint16
	}{40, 120, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&ws)))

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	return nil
}

// RunCommand runs a non interactive subcommand and returns its output
func (tf *TUITestFramework) RunCommand(args ...string) (string, error) {
	cmd := exec.Command(binPath, tf.baseArgs(args...)...)
	cmd.Dir = tf.workspace
	cmd.Env = tf.env()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (tf *TUITestFramework) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Type sends text one rune at a time
func (tf *TUITestFramework) Type(text string) {
	tf.t.Helper()
	for _, r := range text {
		_ = tf.SendKeys(string(r))
		time.Sleep(15 * time.Millisecond)
	}
}

// OpenSearch presses the global search hotkey
func (tf *TUITestFramework) OpenSearch() error {
	tf.t.Helper()
	return tf.SendKeys(KeyCtrlK)
}

// Enter sends enter
func (tf *TUITestFramework) Enter() error {
	tf.t.Helper()
	return tf.SendKeys(KeyEnter)
}

// Escape sends a lone escape
func (tf *TUITestFramework) Escape() error {
	tf.t.Helper()
	return tf.SendKeys(KeyEsc)
}

// Down moves the cursor down
func (tf *TUITestFramework) Down() error {
	tf.t.Helper()
	return tf.SendKeys(KeyDown)
}

// Quit sends q
func (tf *TUITestFramework) Quit() error {
	tf.t.Helper()
	return tf.SendKeys(KeyQuit)
}

// SendCtrlC sends Ctrl+C
func (tf *TUITestFramework) SendCtrlC() error {
	tf.t.Helper()
	return tf.SendKeys(KeyCtrlC)
}

// Ready waits for the landing screen
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContainsPlain("PC Builder", 5*time.Second)
}

// SeePlain waits for specific plain text to appear
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// SeeAfter waits for text that shows up after the current snapshot
func (tf *TUITestFramework) SeeAfter(mark int, text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		if mark > len(s) {
			mark = 0
		}
		return strings.Contains(ansiRe.ReplaceAllString(s[mark:], ""), text)
	}, 3*time.Second)
}

// Mark returns the current output length for use with SeeAfter
func (tf *TUITestFramework) Mark() int {
	tf.t.Helper()
	return len(tf.Snapshot())
}

// OutputContainsPlain checks if the normalized output contains text within a timeout
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor waits for a predicate to be true in the output
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// WaitExit reports whether the process exited within timeout
func (tf *TUITestFramework) WaitExit(timeout time.Duration) bool {
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case <-done:
		tf.cmd = nil
		return true
	case <-time.After(timeout):
		return false
	}
}

// Snapshot returns the current contents of the ring buffer
func (tf *TUITestFramework) Snapshot() string {
	tf.t.Helper()
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// SnapshotPlain returns the ring buffer with ANSI sequences removed
func (tf *TUITestFramework) SnapshotPlain() string {
	tf.t.Helper()
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail logs the last n bytes of normalized output
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, n int) {
	if !t.Failed() {
		return
	}
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	t.Logf("--- tail ---\n%s", s)
}

// Cleanup closes the PTY, terminates the application and removes the workspace
func (tf *TUITestFramework) Cleanup() {
	tf.DumpTailOnFail(tf.t, 4096)
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.workspace != "" {
		_ = os.RemoveAll(tf.workspace)
		tf.workspace = ""
	}
}
