package tracker

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// Bridge implements Provider using an external hand-tracking service
// subprocess. The service speaks a line-oriented protocol: each poll
// request (a single newline on stdin) is answered with one JSON frame on
// stdout.
type Bridge struct {
	config    Config
	script    string
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewBridge creates a new tracking service bridge. The service process is
// started lazily on the first poll. An explicit script path overrides
// discovery; pass "" to search the usual locations. Zero-valued Config
// fields fall back to DefaultConfig.
func NewBridge(config Config, script string) (*Bridge, error) {
	def := DefaultConfig()
	if config.MaxHands <= 0 {
		config.MaxHands = def.MaxHands
	}
	if config.MinConfidence <= 0 {
		config.MinConfidence = def.MinConfidence
	}

	if script == "" {
		script = findTrackerScript()
	}
	if script == "" {
		return nil, fmt.Errorf("hand_tracking_service.py not found")
	}
	if _, err := os.Stat(script); err != nil {
		return nil, fmt.Errorf("tracker script: %w", err)
	}

	return &Bridge{
		config: config,
		script: script,
	}, nil
}

// NextFrame polls the tracking service for the latest anchor snapshot.
func (b *Bridge) NextFrame() (*Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureStarted(); err != nil {
		return nil, err
	}

	if _, err := b.stdin.Write([]byte("\n")); err != nil {
		return nil, fmt.Errorf("write poll: %w", err)
	}

	line, err := b.stdout.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}

	frame, err := ParseFrame(line)
	if err != nil {
		return nil, err
	}

	b.lastUsed = time.Now()
	b.resetIdleTimer()

	return frame, nil
}

// Close shuts down the tracking service process.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown()
}

func (b *Bridge) ensureStarted() error {
	if b.started {
		return nil
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	b.cmd = exec.Command(pythonPath, b.script,
		fmt.Sprintf("--max-hands=%d", b.config.MaxHands),
		fmt.Sprintf("--min-confidence=%.2f", b.config.MinConfidence),
	)

	stdin, err := b.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := b.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	b.cmd.Stderr = os.Stderr

	if err := b.cmd.Start(); err != nil {
		return fmt.Errorf("start tracking service: %w", err)
	}

	b.stdin = stdin
	b.stdout = bufio.NewReader(stdout)
	b.started = true
	b.lastUsed = time.Now()

	return nil
}

func (b *Bridge) shutdown() error {
	if !b.started {
		return nil
	}

	if b.idleTimer != nil {
		b.idleTimer.Stop()
		b.idleTimer = nil
	}

	if b.stdin != nil {
		b.stdin.Close()
	}

	err := b.cmd.Wait()
	b.started = false
	b.cmd = nil
	b.stdin = nil
	b.stdout = nil

	return err
}

func (b *Bridge) resetIdleTimer() {
	if b.idleTimer != nil {
		b.idleTimer.Stop()
	}
	b.idleTimer = time.AfterFunc(30*time.Second, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.shutdown()
	})
}

func findTrackerScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/hand_tracking_service.py",
		"../scripts/hand_tracking_service.py",
		filepath.Join(execDir, "scripts/hand_tracking_service.py"),
		filepath.Join(os.Getenv("HOME"), ".mudra/scripts/hand_tracking_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".mudra/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}
