package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveExtractRoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")
	files := map[string]string{
		"saves/savegame.json": `{"version":1,"current_day":12}`,
		"saves/slot_2.json":   `{"version":1,"current_day":3}`,
		"ledger.db":           "not a real database",
	}
	for rel, content := range files {
		path := filepath.Join(src, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	require.NoError(t, ArchiveSaves(src, archive))

	restored := filepath.Join(t.TempDir(), "restored")
	require.NoError(t, ExtractSaves(archive, restored))

	got := map[string]string{}
	err := filepath.WalkDir(restored, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(restored, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, files, got)
}

func TestArchiveSavesRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := ArchiveSaves(file, filepath.Join(t.TempDir(), "out.tar.gz"))
	require.Error(t, err)
}

func TestExtractSavesRejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "../escape.json",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     3,
	}))
	_, err = tw.Write([]byte("bad"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	require.Error(t, ExtractSaves(archive, filepath.Join(t.TempDir(), "out")))
}
