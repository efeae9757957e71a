package filex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "a", "b")

	got, err := EnsureDir(want + string(filepath.Separator))
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureDir(tmp)
	require.NoError(t, err)
	second, err := EnsureDir(tmp)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_EmptyIsCWD(t *testing.T) {
	got, err := EnsureDir("")
	require.NoError(t, err)
	require.Equal(t, ".", got)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "x")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	_, err := EnsureDir(p)
	require.Error(t, err)
	var fe *common.FileError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "mkdir", fe.Op)
}

func TestCollectLocalFiles_SingleFile(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "report.pdf")
	require.NoError(t, os.WriteFile(p, []byte("12345"), 0o600))

	files, err := CollectLocalFiles(p)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "report.pdf", files[0].Name)
	require.Equal(t, p, files[0].Path)
	require.EqualValues(t, 5, files[0].Size)
}

func TestCollectLocalFiles_DirectorySortedNonRecursive(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "b.txt"), []byte("bb"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("a"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "sub"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sub", "c.txt"), []byte("c"), 0o600))

	files, err := CollectLocalFiles(tmp)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "a.txt", files[0].Name)
	require.Equal(t, "b.txt", files[1].Name)
	require.EqualValues(t, 2, files[1].Size)
}

func TestCollectLocalFiles_EmptyDirectory(t *testing.T) {
	_, err := CollectLocalFiles(t.TempDir())
	require.ErrorIs(t, err, common.ErrNoFiles)
}

func TestCollectLocalFiles_Missing(t *testing.T) {
	_, err := CollectLocalFiles(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
