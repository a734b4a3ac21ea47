package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/installation/storage"
)

var defaultMaxEntries = 1000

// datadir is the base directory at which the log is saved
var datadir string

type entry struct {
	ctx     *MessageContext
	message string
	args    []interface{}
}

type safeBool struct {
	mu sync.Mutex
	v  bool
}

func (s *safeBool) value() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

func (s *safeBool) setValue(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
}

type fileHandler struct {
	formatter Formatter
	file      *os.File
	verbose   safeBool
	wg        *sync.WaitGroup
	queue     chan entry
	quit      chan struct{}
}

func newFileHandler() *fileHandler {
	handler := fileHandler{
		formatter: DefaultFormatter,
		wg:        &sync.WaitGroup{},
		queue:     make(chan entry, defaultMaxEntries),
		quit:      make(chan struct{}),
	}
	handler.wg.Add(1)
	go func() {
		defer handler.wg.Done()
		handler.start()
	}()
	return &handler
}

func (l *fileHandler) start() {
	defer handlePanics(recover())
	for {
		select {
		case entry := <-l.queue:
			l.emit(entry.ctx, entry.message, entry.args...)
		case <-l.quit:
			close(l.queue)
			for entry := range l.queue {
				l.emit(entry.ctx, entry.message, entry.args...)
			}
			return
		}
	}
}

func (l *fileHandler) SetFormatter(f Formatter) {
	l.formatter = f
}

func (l *fileHandler) SetVerbose(v bool) {
	l.verbose.setValue(v)
}

func (l *fileHandler) Output() io.Writer {
	return l.file
}

func FileName() string {
	return FileNameFor(os.Getpid())
}

func FileNameFor(pid int) string {
	return fmt.Sprintf("%s-%d%s", FileNamePrefix(), pid, FileNameSuffix)
}

func FileNamePrefix() string {
	return constants.CommandName
}

func FilePath() string {
	if logfile := os.Getenv(constants.LogEnvVarName); logfile != "" {
		return logfile
	}
	return filepath.Join(datadir, FileName())
}

const FileNameSuffix = ".log"

func (l *fileHandler) Emit(ctx *MessageContext, message string, args ...interface{}) error {
	e := entry{
		ctx:     ctx,
		message: message,
		args:    args,
	}
	select {
	case <-l.quit:
		return nil
	default:
		l.queue <- e
	}
	return nil
}

func (l *fileHandler) emit(ctx *MessageContext, message string, args ...interface{}) {
	message = l.formatter.Format(ctx, message, args...)
	if l.verbose.value() {
		fmt.Fprintln(os.Stderr, fmt.Sprintf("(PID %d) %s", os.Getpid(), message))
	}

	if l.file == nil {
		if err := l.reopenLogfile(); err != nil {
			printLogError(fmt.Errorf("Failed to open log-file: %w", err), ctx, message, args...)
			return
		}
	}

	_, err := l.file.WriteString(message + "\n")
	if err != nil {
		// try to reopen the log file once
		if rerr := l.reopenLogfile(); rerr != nil {
			printLogError(fmt.Errorf("Failed to write log line and reopen failed with err: %v: %w", rerr, err), ctx, message, args...)
			return
		}
		if _, err2 := l.file.WriteString(message + "\n"); err2 != nil {
			printLogError(fmt.Errorf("Failed to write log line twice. First error was: %v: %w", err, err2), ctx, message, args...)
		}
	}
}

// Printf satisfies a Logger interface allowing us to funnel our
// logging handlers to 3rd party libraries
func (l *fileHandler) Printf(msg string, args ...interface{}) {
	logMsg := fmt.Sprintf("Third party log message: %s", msg)
	l.Emit(getContext("DEBUG", 1), logMsg, args...)
}

func (l *fileHandler) reopenLogfile() error {
	filename := FilePath()
	if err := os.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		return fmt.Errorf("could not ensure dir exists: %w", err)
	}
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not open log file for writing: %s: %w", filename, err)
	}
	l.file = f
	return nil
}

func (l *fileHandler) Close() {
	close(l.quit)
	l.wg.Wait()
}

func init() {
	var err error
	datadir, err = storage.AppDataPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not detect appdata dir: %v\n", err)
	}
	datadir = filepath.Join(datadir, "logs")

	SetHandler(newFileHandler())

	go cleanOldLogs()
}

// cleanOldLogs removes logs older than a week so dead sessions don't accumulate on disk
func cleanOldLogs() {
	defer handlePanics(recover())

	files, err := os.ReadDir(datadir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	for _, file := range files {
		if !strings.HasPrefix(file.Name(), FileNamePrefix()) || !strings.HasSuffix(file.Name(), FileNameSuffix) {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(datadir, file.Name()))
		}
	}
}
