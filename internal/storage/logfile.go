package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

const DefaultLogFile = "depop.txt"

var ErrLogFile = errors.New("log file error")

// AppendLog is a plain-text file that is only ever appended to.
type AppendLog struct {
	mu       sync.Mutex
	filename string
}

func NewAppendLog(filename string) (*AppendLog, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrLogFile)
	}
	return &AppendLog{filename: filename}, nil
}

func (l *AppendLog) Filename() string {
	return l.filename
}

// Append writes data at the end of the file in a single write, creating the
// file if needed.
func (l *AppendLog) Append(data []byte) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrLogFile, l.filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrLogFile, l.filename, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrLogFile, l.filename, err)
	}

	return nil
}
