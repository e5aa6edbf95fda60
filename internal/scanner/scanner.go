package scanner

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/UnknownOlympus/tally/internal/tracker"
)

// maxLineSize bounds a single log line; anything longer is an error for the
// file being read, reported through the usual per-file skip path.
const maxLineSize = 1024 * 1024

// Scanner reads numbered access-log files from a single directory and feeds
// the first whitespace-delimited token of every line into an AddressSet.
type Scanner struct {
	dir string
	log *slog.Logger
}

// Interface is the per-file scanning contract the coordinator depends on.
type Interface interface {
	Scan(ctx context.Context, index int, set *tracker.AddressSet) (int64, error)
}

// New creates a Scanner over the given directory. The directory string is
// used verbatim when building file names, so a trailing separator must be
// supplied by the caller if one is needed (see FilePath).
func New(dir string, log *slog.Logger) *Scanner {
	return &Scanner{dir: dir, log: log}
}

// FilePath returns the expected path of the log file with the given index.
// The pattern is fixed for compatibility with existing file sets: no
// separator is inserted between the directory and the "access<i>.log" name.
func FilePath(dir string, index int) string {
	return fmt.Sprintf("./%saccess%d.log", dir, index)
}

// CountRegularFiles returns the number of regular files in dir. Symlinks,
// subdirectories and special files are not counted. The enumeration happens
// once, before any worker starts, and is not re-validated per worker.
func CountRegularFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}

// Scan opens the file with the given index, inserts the first token of every
// line into set and returns the number of lines read. Lines with no tokens
// are skipped. An unopenable file or a read failure is returned to the
// caller as an ordinary error; it is a per-file condition, never fatal to
// the scan of other indices.
func (s *Scanner) Scan(ctx context.Context, index int, set *tracker.AddressSet) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path := FilePath(s.dir, index)
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	defer file.Close()

	var lines int64
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if set.Add(fields[0]) {
			s.log.DebugContext(ctx, "New distinct address", "address", fields[0], "file", path)
		}
	}
	if err := sc.Err(); err != nil {
		return lines, fmt.Errorf("failed to read log file %q: %w", path, err)
	}

	return lines, nil
}
