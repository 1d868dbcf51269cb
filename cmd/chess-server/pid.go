package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// pidFile holds the server's PID on disk, optionally flock'ed so a second
// instance pointed at the same path refuses to start
type pidFile struct {
	path   string
	locked bool
	file   *os.File
}

// managePIDFile writes the PID and returns the matching cleanup
func managePIDFile(path string, lock bool) (func(), error) {
	p := &pidFile{path: path, locked: lock}
	if err := p.acquire(); err != nil {
		return nil, err
	}
	return p.release, nil
}

func (p *pidFile) acquire() error {
	file, err := os.OpenFile(p.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if os.IsExist(err) {
		if p.locked {
			if err := checkStalePID(p.path); err != nil {
				return err
			}
		}
		file, err = os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	}
	if err != nil {
		return fmt.Errorf("cannot open PID file: %w", err)
	}
	p.file = file

	if p.locked {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return fmt.Errorf("cannot acquire lock: another instance is running")
			}
			return fmt.Errorf("lock failed: %w", err)
		}
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		p.abandon()
		return fmt.Errorf("cannot write PID: %w", err)
	}
	if err := file.Sync(); err != nil {
		p.abandon()
		return fmt.Errorf("cannot sync PID file: %w", err)
	}
	return nil
}

func (p *pidFile) abandon() {
	p.file.Close()
	os.Remove(p.path)
}

func (p *pidFile) release() {
	if p.locked {
		syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN)
	}
	p.abandon()
}

// checkStalePID fails unless the recorded process is gone; a running
// owner that does not hold the lock is still treated as a conflict
func checkStalePID(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read existing PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("corrupted PID file (contains: %q)", string(data))
	}

	// FindProcess never fails on Unix, signal 0 probes for existence
	proc, _ := os.FindProcess(pid)
	err = proc.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return fmt.Errorf("PID file in use: process %d is running", pid)
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, syscall.ESRCH):
		return fmt.Errorf("stale PID file found for defunct process %d, remove %s", pid, path)
	default:
		return fmt.Errorf("process %d exists but cannot verify ownership: %v", pid, err)
	}
}
