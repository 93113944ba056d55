package logger

import (
	"fmt"
	"io"
	"os"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// Sink is the destination for trace lines: the console plus an optional
// append-only log file. It is opened once at startup and closed at shutdown.
type Sink struct {
	console io.Writer
	file    *os.File
	path    string
}

// OpenSink opens the log file at path in append mode and mirrors it with
// console. When the file cannot be opened the returned Sink still writes to
// console and the open error is returned alongside it. An empty path
// disables the file.
func OpenSink(console io.Writer, path string) (*Sink, error) {
	if console == nil {
		console = os.Stdout
	}
	s := &Sink{console: console}
	if path == "" {
		return s, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return s, fmt.Errorf("failed to open log file: %w", err)
	}
	s.file = file
	s.path = path
	return s, nil
}

// Write sends p to the log file, when attached, and then to the console.
// A failing destination does not keep p from the other one; the first
// error is returned.
func (s *Sink) Write(p []byte) (int, error) {
	var firstErr error
	if s.file != nil {
		if _, err := s.file.Write(p); err != nil {
			firstErr = fmt.Errorf("failed to write log file: %w", err)
		}
	}
	if _, err := s.console.Write(p); err != nil && firstErr == nil {
		firstErr = err
	}
	return len(p), firstErr
}

// HasFile reports whether lines are also written to the log file.
func (s *Sink) HasFile() bool {
	return s.file != nil
}

// Path returns the log file path, empty when no file is attached.
func (s *Sink) Path() string {
	return s.path
}

// Close detaches and closes the log file. Later writes reach the console only.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
