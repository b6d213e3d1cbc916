// Package logger provides an asynchronous JSON-lines logger with daily and
// size-based file rotation.
package logger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogLevel represents the severity level of a log entry
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
	LevelFatal LogLevel = "FATAL"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

// Logger is what components accept; FileLogger and Nop implement it.
type Logger interface {
	Debug(message string, fields ...map[string]interface{})
	Info(message string, fields ...map[string]interface{})
	Warn(message string, fields ...map[string]interface{})
	Error(message string, err error, fields ...map[string]interface{})
}

// LogEntry is one JSON line in the log file
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"@timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`

	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Hostname    string `json:"hostname"`
	PID         int    `json:"pid"`
	ExecID      string `json:"exec_id"`

	Caller *CallerContext         `json:"caller,omitempty"`
	Error  *ErrorContext          `json:"error,omitempty"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// CallerContext locates the logging call site
type CallerContext struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// ErrorContext contains error information
type ErrorContext struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Config holds the logger configuration
type Config struct {
	Service       string        // Service name
	Version       string        // Application version
	Environment   string        // Environment (dev, staging, prod)
	LogDir        string        // Directory for log files
	FlushInterval time.Duration // How often pending entries are written
	BatchSize     int           // Entries written per batch
	BufferSize    int           // Channel buffer size
	LogLevel      LogLevel      // Minimum level written
	EnableCaller  bool          // Capture caller information
	ExecutionID   string        // Identifies this process run
	MaxFileSize   int64         // Rotate after this many bytes (default 10MB)
	WriteBuffer   int           // bufio size for the file writer (default 64KB)
}

// fileWriter manages the current log file with buffering
type fileWriter struct {
	mu           sync.Mutex
	file         *os.File
	writer       *bufio.Writer
	currentSize  int64
	currentDate  string
	currentIndex int
	maxSize      int64
	logDir       string
	bufferSize   int
}

// FileLogger writes entries from a background goroutine
type FileLogger struct {
	config      Config
	logChannel  chan LogEntry
	flushReq    chan chan struct{}
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	hostname    string
	pid         int
	ExecutionID string
	fileWriter  *fileWriter
}

// NewLogger creates a FileLogger and starts its writer goroutine
func NewLogger(config Config) *FileLogger {
	if config.LogDir == "" {
		config.LogDir = "./logs"
	}
	if config.FlushInterval == 0 {
		config.FlushInterval = time.Second
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	if config.BufferSize == 0 {
		config.BufferSize = 10000
	}
	if config.LogLevel == "" {
		config.LogLevel = LevelInfo
	}
	if config.MaxFileSize == 0 {
		config.MaxFileSize = 10 * 1024 * 1024
	}
	if config.WriteBuffer == 0 {
		config.WriteBuffer = 64 * 1024
	}
	if config.ExecutionID == "" {
		config.ExecutionID = uuid.New().String()[0:5]
	}

	hostname, _ := os.Hostname()
	ctx, cancel := context.WithCancel(context.Background())

	if err := os.MkdirAll(config.LogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
	}

	l := &FileLogger{
		config:      config,
		logChannel:  make(chan LogEntry, config.BufferSize),
		flushReq:    make(chan chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		hostname:    hostname,
		pid:         os.Getpid(),
		ExecutionID: config.ExecutionID,
		fileWriter: &fileWriter{
			maxSize:    config.MaxFileSize,
			logDir:     config.LogDir,
			bufferSize: config.WriteBuffer,
		},
	}

	l.wg.Add(1)
	go l.processLogs()

	return l
}

// ensureCurrentFile opens a new file on a new day or once the size limit is hit
func (fw *fileWriter) ensureCurrentFile() error {
	currentDate := time.Now().Format("2006-01-02")
	if fw.file == nil || fw.currentDate != currentDate || fw.currentSize >= fw.maxSize {
		return fw.rotateFile(currentDate)
	}
	return nil
}

func (fw *fileWriter) rotateFile(date string) error {
	if fw.writer != nil {
		_ = fw.writer.Flush()
		fw.writer = nil
	}
	if fw.file != nil {
		_ = fw.file.Close()
		fw.file = nil
	}

	if fw.currentDate != date {
		fw.currentIndex = 0
		fw.currentDate = date
	} else {
		fw.currentIndex++
	}

	filename := fmt.Sprintf("app-%s-%03d.log", date, fw.currentIndex)
	logFilePath := filepath.Join(fw.logDir, date, filename)

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create date directory: %w", err)
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	fw.file = file
	fw.writer = bufio.NewWriterSize(file, fw.bufferSize)
	fw.currentSize = stat.Size()
	return nil
}

func (fw *fileWriter) writeEntry(entry LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if err := fw.ensureCurrentFile(); err != nil {
		return err
	}

	n, err := fw.writer.Write(append(data, '\n'))
	if err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	fw.currentSize += int64(n)
	return nil
}

func (fw *fileWriter) flush() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.writer != nil {
		return fw.writer.Flush()
	}
	return nil
}

func (fw *fileWriter) close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	var err error
	if fw.writer != nil {
		err = fw.writer.Flush()
		fw.writer = nil
	}
	if fw.file != nil {
		if e := fw.file.Close(); e != nil && err == nil {
			err = e
		}
		fw.file = nil
	}
	return err
}

// processLogs batches entries and writes them to the current file
func (l *FileLogger) processLogs() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]LogEntry, 0, l.config.BatchSize)

	flush := func() {
		for _, entry := range batch {
			if err := l.fileWriter.writeEntry(entry); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write log entry: %v\n", err)
			}
		}
		batch = batch[:0]
		if err := l.fileWriter.flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to flush log buffer: %v\n", err)
		}
	}

	drain := func() {
		for {
			select {
			case entry := <-l.logChannel:
				batch = append(batch, entry)
			default:
				return
			}
		}
	}

	for {
		select {
		case entry := <-l.logChannel:
			batch = append(batch, entry)
			if len(batch) >= l.config.BatchSize {
				flush()
			}

		case done := <-l.flushReq:
			drain()
			flush()
			close(done)

		case <-ticker.C:
			flush()

		case <-l.ctx.Done():
			drain()
			flush()
			return
		}
	}
}

func (l *FileLogger) shouldLog(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.config.LogLevel]
}

func (l *FileLogger) createLogEntry(level LogLevel, message string, fields []map[string]interface{}) LogEntry {
	entry := LogEntry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Level:       level,
		Message:     message,
		Service:     l.config.Service,
		Version:     l.config.Version,
		Environment: l.config.Environment,
		Hostname:    l.hostname,
		PID:         l.pid,
		ExecID:      l.config.ExecutionID,
	}
	if len(fields) > 0 {
		entry.Fields = fields[0]
	}

	if l.config.EnableCaller {
		// createLogEntry <- Info/Error/... <- call site
		if pc, file, line, ok := runtime.Caller(2); ok {
			entry.Caller = &CallerContext{File: file, Line: line}
			if fn := runtime.FuncForPC(pc); fn != nil {
				entry.Caller.Function = fn.Name()
			}
		}
	}

	return entry
}

func (l *FileLogger) log(entry LogEntry) {
	select {
	case l.logChannel <- entry:
	default:
		fmt.Fprintf(os.Stderr, "Logger channel full, dropping log: %s\n", entry.Message)
	}
}

// Debug logs a debug message
func (l *FileLogger) Debug(message string, fields ...map[string]interface{}) {
	if !l.shouldLog(LevelDebug) {
		return
	}
	l.log(l.createLogEntry(LevelDebug, message, fields))
}

// Info logs an info message
func (l *FileLogger) Info(message string, fields ...map[string]interface{}) {
	if !l.shouldLog(LevelInfo) {
		return
	}
	l.log(l.createLogEntry(LevelInfo, message, fields))
}

// Warn logs a warning message
func (l *FileLogger) Warn(message string, fields ...map[string]interface{}) {
	if !l.shouldLog(LevelWarn) {
		return
	}
	l.log(l.createLogEntry(LevelWarn, message, fields))
}

// Error logs an error message
func (l *FileLogger) Error(message string, err error, fields ...map[string]interface{}) {
	if !l.shouldLog(LevelError) {
		return
	}
	entry := l.createLogEntry(LevelError, message, fields)
	if err != nil {
		entry.Error = &ErrorContext{Type: fmt.Sprintf("%T", err), Message: err.Error()}
	}
	l.log(entry)
}

// Fatal logs a fatal message. It does not exit.
func (l *FileLogger) Fatal(message string, err error, fields ...map[string]interface{}) {
	entry := l.createLogEntry(LevelFatal, message, fields)
	if err != nil {
		entry.Error = &ErrorContext{Type: fmt.Sprintf("%T", err), Message: err.Error()}
	}
	l.log(entry)
}

// Flush blocks until every entry queued so far has been written
func (l *FileLogger) Flush() error {
	done := make(chan struct{})
	select {
	case l.flushReq <- done:
		<-done
	case <-l.ctx.Done():
	}
	return nil
}

// Close writes pending entries and closes the file
func (l *FileLogger) Close() error {
	l.cancel()
	l.wg.Wait()
	return l.fileWriter.close()
}

type nop struct{}

func (nop) Debug(string, ...map[string]interface{})        {}
func (nop) Info(string, ...map[string]interface{})         {}
func (nop) Warn(string, ...map[string]interface{})         {}
func (nop) Error(string, error, ...map[string]interface{}) {}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return nop{}
}
