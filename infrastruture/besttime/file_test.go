package besttime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("missing file is unset", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "best_time.txt"))
		best, ok, err := s.Load()
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, best)
	})

	t.Run("malformed content is unset", func(t *testing.T) {
		for _, content := range []string{"", "fast", "-3", "12.5s"} {
			path := filepath.Join(t.TempDir(), "best_time.txt")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, ok, err := NewFileStore(path).Load()
			assert.NoError(t, err)
			assert.False(t, ok, "content %q", content)
		}
	})

	t.Run("reads a decimal with surrounding whitespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "best_time.txt")
		require.NoError(t, os.WriteFile(path, []byte(" 42.25\n"), 0o644))
		best, ok, err := NewFileStore(path).Load()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 42.25, best)
	})

	t.Run("save only lowers the record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "best_time.txt")
		s := NewFileStore(path)

		require.NoError(t, s.Save(30.5))
		require.NoError(t, s.Save(40))
		best, ok, err := s.Load()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 30.5, best)

		require.NoError(t, s.Save(12.125))
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "12.125", string(raw))
	})

	t.Run("save replaces a malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "best_time.txt")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
		s := NewFileStore(path)
		require.NoError(t, s.Save(9))
		best, ok, err := s.Load()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 9.0, best)
	})

	t.Run("negative times are refused", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "best_time.txt"))
		assert.ErrorIs(t, s.Save(-1), ErrNegativeTime)
	})

	t.Run("unwritable location reports an error", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "missing", "best_time.txt"))
		assert.Error(t, s.Save(5))
	})
}
