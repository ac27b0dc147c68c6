package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LogEntry is one audit record, serialized as a single JSON line.
// Entries are append-only and never mutated.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Response  []string  `json:"response"`
	Actions   []string  `json:"actions"`
	Updates   []string  `json:"updates"`
}

const maxJournalLine = 1024 * 1024

// AppendLog writes one entry to the end of the journal.
func (s *Store) AppendLog(entry LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}
	f, err := os.OpenFile(s.LogsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, storageFileMode)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// TailLogs returns the last n journal entries, oldest first. n <= 0
// returns everything. A malformed line is a fatal error.
func (s *Store) TailLogs(n int) ([]LogEntry, error) {
	f, err := os.Open(s.LogsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var entries []LogEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxJournalLine)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode journal line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// CountLogs returns the number of entries in the journal.
func (s *Store) CountLogs() (int, error) {
	entries, err := s.TailLogs(0)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
