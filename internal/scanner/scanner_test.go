package scanner_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/tally/internal/scanner"
	"github.com/UnknownOlympus/tally/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePath(t *testing.T) {
	t.Parallel()

	// The pattern is a compatibility contract: no separator is inserted
	// between the directory and the file name.
	assert.Equal(t, "./logs/access3.log", scanner.FilePath("logs/", 3))
	assert.Equal(t, "./access1.log", scanner.FilePath("", 1))
	assert.Equal(t, "./varlogaccess12.log", scanner.FilePath("varlog", 12))
}

func TestCountRegularFiles(t *testing.T) {
	defer filet.CleanUp(t)

	tmp := filet.TmpDir(t, "")
	filet.File(t, filepath.Join(tmp, "access1.log"), "1.1.1.1\n")
	filet.File(t, filepath.Join(tmp, "access2.log"), "2.2.2.2\n")
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "nested"), 0o755))

	count, err := scanner.CountRegularFiles(tmp)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "subdirectories must not be counted")

	t.Run("empty directory", func(t *testing.T) {
		empty := filet.TmpDir(t, "")
		count, err := scanner.CountRegularFiles(empty)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("unopenable directory", func(t *testing.T) {
		_, err := scanner.CountRegularFiles(filepath.Join(tmp, "does-not-exist"))
		require.Error(t, err)
	})
}

func TestScan(t *testing.T) {
	defer filet.CleanUp(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filet.TmpDir(t, "")))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	require.NoError(t, os.Mkdir("logs", 0o755))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	filet.File(t, "logs/access1.log", "1.1.1.1 - GET /index\n\n   \n2.2.2.2 - POST /login\n1.1.1.1 - GET /again\n")
	filet.File(t, "logs/access2.log", "3.3.3.3 no trailing newline")

	src := scanner.New("logs/", logger)

	t.Run("tokenizes first field per line", func(t *testing.T) {
		set := tracker.NewAddressSet()
		lines, err := src.Scan(ctx, 1, set)
		require.NoError(t, err)
		// Empty and whitespace-only lines are read but contribute nothing.
		assert.Equal(t, int64(5), lines)
		assert.Equal(t, int64(2), set.Count())
	})

	t.Run("handles missing trailing newline", func(t *testing.T) {
		set := tracker.NewAddressSet()
		lines, err := src.Scan(ctx, 2, set)
		require.NoError(t, err)
		assert.Equal(t, int64(1), lines)
		assert.Equal(t, int64(1), set.Count())
	})

	t.Run("missing file", func(t *testing.T) {
		set := tracker.NewAddressSet()
		_, err := src.Scan(ctx, 99, set)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to open log file")
		assert.Equal(t, int64(0), set.Count())
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := src.Scan(cctx, 1, tracker.NewAddressSet())
		require.ErrorIs(t, err, context.Canceled)
	})
}
