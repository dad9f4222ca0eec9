package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Level is the minimum severity a Logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config value (debug, info, warn, error) into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
	}
}

// Logger writes component-tagged log lines to the run's log file and
// mirrors them to the console.
//
// Every process run gets one log file, ~/.prioritywatch/logs/<run-id>-prioritywatch.log.
// All component loggers write through the same open handle; call Close once
// at exit to release it.
type Logger struct {
	runID     string
	component string
	console   io.Writer
	mu        sync.Mutex
	logPath   string
}

var (
	runID     string
	runIDOnce sync.Once

	logDir   string
	initOnce sync.Once
	initErr  error

	// fileMu guards the run file shared by every component logger.
	fileMu  sync.Mutex
	runFile *os.File
	runLog  *log.Logger

	levelMu  sync.RWMutex
	minLevel = LevelInfo

	// console is where every entry is mirrored; tests swap it out.
	console io.Writer = os.Stderr

	levelStyles = map[Level]lipgloss.Style{
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

func initLogDirectory() error {
	initOnce.Do(func() {
		if logDir != "" {
			initErr = os.MkdirAll(logDir, 0750)
			return
		}

		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".prioritywatch", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
	})
	return initErr
}

// SetLevel sets the minimum level for all loggers.
func SetLevel(l Level) {
	levelMu.Lock()
	defer levelMu.Unlock()
	minLevel = l
}

func enabled(l Level) bool {
	levelMu.RLock()
	defer levelMu.RUnlock()
	return l >= minLevel
}

// NewLogger creates a logger for a component.
//
// If the log file cannot be opened, a console-only logger is returned along
// with the error so the caller can decide whether to warn about it.
func NewLogger(component string) (*Logger, error) {
	logPath, err := openRunFile()
	if err != nil {
		return newFallbackLogger(component), err
	}

	return &Logger{
		runID:     getRunID(),
		component: component,
		console:   console,
		logPath:   logPath,
	}, nil
}

// openRunFile opens the run's log file on first use and returns its path.
func openRunFile() (string, error) {
	dir, err := logDirectory()
	if err != nil {
		return "", err
	}
	logPath := filepath.Join(dir, fmt.Sprintf("%s-prioritywatch.log", getRunID()))

	fileMu.Lock()
	defer fileMu.Unlock()

	if runFile != nil {
		return logPath, nil
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	runFile = file
	runLog = log.New(file, "", 0)
	return logPath, nil
}

func newFallbackLogger(component string) *Logger {
	return &Logger{
		runID:     getRunID(),
		component: component,
		console:   console,
	}
}

// MustNew returns a component logger, falling back to console-only output
// when the log file is unavailable.
func MustNew(component string) *Logger {
	l, _ := NewLogger(component)
	return l
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if !enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, v...)
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	if l.logPath != "" {
		writeRunFile(fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, l.component, level, message))
	}
	if l.console != nil {
		tag := levelStyles[level].Render(fmt.Sprintf("%-5s", level))
		fmt.Fprintf(l.console, "%s %s [%s] %s\n", timestamp, tag, l.component, message)
	}
}

func writeRunFile(line string) {
	fileMu.Lock()
	defer fileMu.Unlock()
	if runLog != nil {
		runLog.Println(line)
	}
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.write(LevelDebug, format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.write(LevelInfo, format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.write(LevelWarn, format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
}

// RunID returns the id shared by every logger in this process.
func (l *Logger) RunID() string {
	return l.runID
}

// LogPath returns the path to the log file, or "" in fallback mode.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the run's log file. Loggers created earlier keep writing to
// the console only. Safe to call multiple times.
func Close() error {
	fileMu.Lock()
	defer fileMu.Unlock()

	if runFile == nil {
		return nil
	}
	err := runFile.Close()
	runFile = nil
	runLog = nil
	return err
}

func logDirectory() (string, error) {
	if err := initLogDirectory(); err != nil {
		return "", err
	}
	return logDir, nil
}
