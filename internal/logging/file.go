package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	golog "github.com/fclairamb/go-log"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
)

// Verbosity thresholds matching the debug_level config variable. A line
// is written iff its threshold is <= the configured level.
const (
	levelError = 10
	levelWarn  = 20
	levelInfo  = 20
	levelDebug = 40
	levelTrace = 50
)

// FileLogger appends whole, timestamped lines to the changer log file.
// The log is an append-only shared resource across invocations; every
// line carries the changer name, the job name (if any) and a per
// invocation ULID so interleaved invocations can be told apart.
type FileLogger struct {
	fs      afero.Fs
	path    string
	level   int
	changer string
	job     string
	id      string
}

func NewFileLogger(fs afero.Fs, path string, level int, changer string, job string) *FileLogger {
	return &FileLogger{
		fs:      fs,
		path:    path,
		level:   level,
		changer: changer,
		job:     job,
		id:      ulid.Make().String(),
	}
}

func (l *FileLogger) write(threshold int, level, event string, keyvals ...interface{}) {
	if threshold > l.level {
		return
	}

	var prefix strings.Builder
	prefix.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	prefix.WriteString(" - ")
	if l.changer != "" {
		prefix.WriteString(l.changer + " - ")
	}
	if l.job != "" && l.job != "*System*" {
		prefix.WriteString("Job: " + l.job + " - ")
	}
	prefix.WriteString(l.id + " - ")

	pairs := make([]string, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		pairs = append(pairs, fmt.Sprintf("%v=%v", keyvals[i], keyvals[i+1]))
	}

	line := prefix.String() + level + " " + event
	if len(pairs) > 0 {
		line += " " + strings.Join(pairs, " ")
	}

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(strings.TrimRight(line, "\n") + "\n")
}

func (l *FileLogger) Trace(event string, keyvals ...interface{}) {
	l.write(levelTrace, "TRACE", event, keyvals...)
}

func (l *FileLogger) Debug(event string, keyvals ...interface{}) {
	l.write(levelDebug, "DEBUG", event, keyvals...)
}

func (l *FileLogger) Info(event string, keyvals ...interface{}) {
	l.write(levelInfo, "INFO", event, keyvals...)
}

func (l *FileLogger) Warn(event string, keyvals ...interface{}) {
	l.write(levelWarn, "WARN", event, keyvals...)
}

func (l *FileLogger) Error(event string, keyvals ...interface{}) {
	l.write(levelError, "ERROR", event, keyvals...)
}

func (l *FileLogger) With(keyvals ...interface{}) golog.Logger {
	return l
}
