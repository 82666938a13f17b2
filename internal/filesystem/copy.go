package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrUnsupportedFileType is returned by CopyTree for entries that are not
// regular files, directories or symlinks.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// CopyTree copies the file or directory at src to dst, which must not
// exist. Symlinks are recreated when fs supports them. On failure the
// partial copy at dst is removed.
func CopyTree(fs afero.Fs, src, dst string) error {
	info, err := lstat(fs, src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := copyEntry(fs, src, dst, info); err != nil {
			if !errors.Is(err, os.ErrExist) {
				_ = fs.Remove(dst)
			}
			return err
		}
		return nil
	}

	if err := fs.Mkdir(dst, info.Mode().Perm()|0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	err = afero.Walk(fs, src, func(path string, entry os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == src {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return copyEntry(fs, path, filepath.Join(dst, rel), entry)
	})
	if err != nil {
		_ = fs.RemoveAll(dst)
		return err
	}
	return nil
}

// CopyFile streams src to a new file dst with the given mode.
func CopyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

func copyEntry(fs afero.Fs, path, target string, info os.FileInfo) error {
	mode := info.Mode()
	switch {
	case mode.IsDir():
		return fs.Mkdir(target, mode.Perm()|0o700)
	case mode&os.ModeSymlink != 0:
		return copySymlink(fs, path, target)
	case mode.IsRegular():
		return CopyFile(fs, path, target, mode.Perm())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, path)
	}
}

func copySymlink(fs afero.Fs, path, target string) error {
	linker, ok := fs.(afero.Symlinker)
	if !ok {
		return fmt.Errorf("%w: symlink %s", ErrUnsupportedFileType, path)
	}
	dest, err := linker.ReadlinkIfPossible(path)
	if err != nil {
		return err
	}
	return linker.SymlinkIfPossible(dest, target)
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lstater, ok := fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
