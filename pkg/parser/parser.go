package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// MaxFileSize is the maximum allowed JSONL file size (100MB).
	// Files larger than this are rejected to prevent memory exhaustion.
	MaxFileSize = 100 * 1024 * 1024

	// MaxLineLength is the maximum allowed line length (1MB).
	MaxLineLength = 1024 * 1024
)

// Parser provides methods for parsing Claude Code JSONL files.
type Parser interface {
	// ParseFile reads a JSONL file and returns the usage records it
	// contains, in file order.
	//
	// Parameters:
	//   - path: Path to the JSONL file
	//
	// Returns:
	//   - Slice of successfully parsed entries
	//   - Count of malformed lines that were skipped
	//   - Error if the file cannot be opened, read, or is too large
	//
	// Blank lines and lines without a usage block are skipped without
	// counting as malformed. A returned error means the whole file
	// should be treated as unreadable; callers skip it.
	//
	// Thread-safety: safe to call concurrently with different files.
	ParseFile(path string) ([]UsageEntry, int, error)

	// ParseLine parses a single JSONL line.
	//
	// Parameters:
	//   - line: A single line of JSONL (without newline character)
	//
	// Returns one of three outcomes:
	//   - (entry, nil): the line carried a non-empty usage block
	//   - (nil, nil): structurally fine but no usage to report
	//     (blank line, or missing/empty usage object)
	//   - (nil, err): the line is malformed and should be counted as
	//     skipped (bad JSON, unparseable timestamp, negative counter)
	//
	// Thread-safety: this method is thread-safe.
	ParseLine(line string) (*UsageEntry, error)
}

// jsonlParser implements the Parser interface.
type jsonlParser struct{}

// New creates a new Parser instance.
func New() Parser {
	return &jsonlParser{}
}

// rawLine mirrors the wire shape of one Claude Code log line. Usage is
// kept raw so that an absent or empty object can be told apart from an
// all-zero one.
type rawLine struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"sessionId"`
	Message   struct {
		Model string          `json:"model"`
		Usage json.RawMessage `json:"usage"`
	} `json:"message"`
}

// ParseFile implements Parser.ParseFile.
func (p *jsonlParser) ParseFile(path string) ([]UsageEntry, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Size() > MaxFileSize {
		return nil, 0, fmt.Errorf("%w: size=%d, max=%d",
			ErrFileTooLarge, info.Size(), MaxFileSize)
	}

	// #nosec G304: path comes from directory discovery
	f, err := os.Open(path) // nolint:gosec
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	entries := make([]UsageEntry, 0, 100)
	scanner := bufio.NewScanner(f)

	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxLineLength)

	lineNum := 0
	skipped := 0

	for scanner.Scan() {
		lineNum++

		entry, parseErr := p.ParseLine(scanner.Text())
		if parseErr != nil {
			skipped++
			continue
		}
		if entry == nil {
			continue
		}

		entries = append(entries, *entry)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, 0, fmt.Errorf("scanner error at line %d: %w", lineNum, scanErr)
	}

	return entries, skipped, nil
}

// ParseLine implements Parser.ParseLine.
func (p *jsonlParser) ParseLine(line string) (*UsageEntry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	var raw rawLine
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}

	// The usage block gates record creation: absent, null, or empty
	// objects yield no record.
	usage, ok, err := decodeUsage(raw.Message.Usage)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return nil, err
	}

	entry := &UsageEntry{
		Timestamp: ts,
		SessionID: orUnknown(raw.SessionID),
		Model:     orUnknown(raw.Message.Model),
		Usage:     usage,
	}

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return entry, nil
}

// decodeUsage unpacks the raw usage block. ok is false when the block
// is absent or carries no fields.
func decodeUsage(raw json.RawMessage) (TokenUsage, bool, error) {
	if len(raw) == 0 {
		return TokenUsage{}, false, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return TokenUsage{}, false, fmt.Errorf("%w: usage: %v", ErrMalformedLine, err)
	}
	if len(fields) == 0 {
		return TokenUsage{}, false, nil
	}

	var usage TokenUsage
	if err := json.Unmarshal(raw, &usage); err != nil {
		return TokenUsage{}, false, fmt.Errorf("%w: usage: %v", ErrMalformedLine, err)
	}

	return usage, true, nil
}

// parseTimestamp parses an RFC3339 timestamp. A trailing "Z" and
// fractional seconds are both accepted.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing", ErrInvalidTimestamp)
	}

	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	return ts, nil
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownValue
	}
	return s
}
