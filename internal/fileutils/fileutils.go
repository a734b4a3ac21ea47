package fileutils

import (
	"os"
	"path/filepath"

	"github.com/devshell-sh/cli/internal/errs"
)

// TargetExists checks if the given file or directory exists
func TargetExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileExists checks if the given file (not dir) exists
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// DirExists checks if the given directory exists
func DirExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

// Mkdir is a small helper function to create a directory if it doesn't already exist
func Mkdir(path string, subpath ...string) error {
	if len(subpath) > 0 {
		subpathStr := filepath.Join(subpath...)
		path = filepath.Join(path, subpathStr)
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return errs.Wrap(err, "MkdirAll failed for path: %s", path)
	}
	return nil
}

// MkdirUnlessExists makes a directory if it doesn't already exist
func MkdirUnlessExists(path string) error {
	if DirExists(path) {
		return nil
	}
	return Mkdir(path)
}

// ReadFile reads the content of a file
func ReadFile(filePath string) ([]byte, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errs.Wrap(err, "ReadFile %s failed", filePath)
	}
	return b, nil
}

// WriteFile writes data to a file, if the file doesn't exist it is created, along with its directory
func WriteFile(filePath string, data []byte) error {
	if err := MkdirUnlessExists(filepath.Dir(filePath)); err != nil {
		return err
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errs.Wrap(err, "os.OpenFile %s failed", filePath)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errs.Wrap(err, "file.Write %s failed", filePath)
	}
	return nil
}

// AppendToFile appends the given data to the end of the given file
func AppendToFile(filePath string, data []byte) error {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errs.Wrap(err, "os.OpenFile %s failed", filePath)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errs.Wrap(err, "file.Write %s failed", filePath)
	}
	return nil
}

// Touch creates an empty file at the given path, along with its directory
func Touch(path string) error {
	if err := MkdirUnlessExists(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errs.Wrap(err, "os.OpenFile %s failed", path)
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(err, "file.Close %s failed", path)
	}
	return nil
}

// WriteTempFile writes data to a new temp file and returns its path
func WriteTempFile(dir, pattern string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", errs.Wrap(err, "os.CreateTemp %s (%s) failed", dir, pattern)
	}

	if _, err = f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", errs.Wrap(err, "file.Write %s failed", f.Name())
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", errs.Wrap(err, "file.Close %s failed", f.Name())
	}

	if err := os.Chmod(f.Name(), perm); err != nil {
		os.Remove(f.Name())
		return "", errs.Wrap(err, "os.Chmod %s failed", f.Name())
	}

	return f.Name(), nil
}

// FindFileInPath will find a file by the given filename in the directory provided or in
// one of the parent directories of that path by walking up the tree
func FindFileInPath(dir, filename string) (string, error) {
	if !DirExists(dir) {
		return "", errs.New("cannot find %s: %s does not exist", filename, dir)
	}

	if filePath := walkPathAndFindFile(dir, filename); filePath != "" {
		return filePath, nil
	}

	return "", errs.New("could not find %s in %s or any of its parent directories", filename, dir)
}

func walkPathAndFindFile(dir, filename string) string {
	if FileExists(filepath.Join(dir, filename)) {
		return filepath.Join(dir, filename)
	}

	if parentDir := filepath.Dir(dir); parentDir != dir {
		return walkPathAndFindFile(parentDir, filename)
	}

	return ""
}
