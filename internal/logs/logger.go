package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const logFileName = "remindr.log"

var (
	Logger  *log.Logger
	logFile *os.File
	mu      sync.Mutex
)

// Until Initialize is called, log lines go to the system temp dir so that the
// TUI never writes diagnostics over the alt screen.
func init() {
	f, err := os.OpenFile(filepath.Join(os.TempDir(), logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger = newLogger(io.Discard)
		return
	}
	logFile = f
	Logger = newLogger(f)
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[remindr] ", log.LstdFlags|log.Lshortfile)
}

// Initialize points the logger at remindr.log inside logDir.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, logFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Printf("Failed to open log file at %s: %v", logPath, err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = newLogger(f)
	Logger.Printf("Logging to %s", logPath)

	return nil
}

// SetOutput redirects the logger, e.g. to stderr for headless runs.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	Logger.SetOutput(w)
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
