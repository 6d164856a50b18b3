package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	schemaVersion = 1
	logFileName   = "domaincheck.jsonl"
)

type Logger struct {
	mu     sync.Mutex
	writer io.WriteCloser
	seq    uint64

	toolName    string
	toolVersion string
	hostID      string
}

// Config describes where records go. An empty Dir yields a Logger that
// drops everything.
type Config struct {
	Dir         string
	MaxMB       int
	MaxFiles    int
	ToolName    string
	ToolVersion string
	HostID      string
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func New(cfg Config) (*Logger, error) {
	l := &Logger{
		toolName:    cfg.ToolName,
		toolVersion: cfg.ToolVersion,
		hostID:      cfg.HostID,
	}

	if cfg.Dir == "" {
		l.writer = nopCloser{io.Discard}
		return l, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	l.writer = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, logFileName),
		MaxSize:    cfg.MaxMB,
		MaxBackups: cfg.MaxFiles,
		Compress:   false,
	}

	return l, nil
}

func (l *Logger) Close() error {
	if l == nil || l.writer == nil {
		return nil
	}

	return l.writer.Close()
}

// Emit stamps the record's base fields and appends it as one JSON line.
func (l *Logger) Emit(record Emittable) error {
	if l == nil || l.writer == nil {
		return fmt.Errorf("logger not initialized")
	}

	now := time.Now().UTC()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	base := record.Base()
	base.TSUTC = now.Format(time.RFC3339Nano)
	base.TSUnixMS = now.UnixMilli()
	base.Seq = l.seq
	base.SchemaVersion = schemaVersion
	base.ToolName = l.toolName
	base.ToolVersion = l.toolVersion
	base.HostID = l.hostID

	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal log record: %w", err)
	}

	b = append(b, '\n')

	_, err = l.writer.Write(b)
	return err
}
