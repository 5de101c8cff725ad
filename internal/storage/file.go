package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/google/renameio/v2"

	"pm_whitelist/internal/model"
)

// FileName is the name of the allow-list file inside the data directory.
const FileName = "white_list.dat"

const filePerm = 0o600

// File implements Storage as a plain text file holding one identity per line.
type File struct {
	path  string
	write func(path string, data []byte, perm os.FileMode) error
}

// NewFile returns a File store backed by the file at path. The file is
// created empty on first load if it does not exist.
func NewFile(path string) *File {
	return &File{path: path, write: writeAtomic}
}

// Path returns the location of the backing file.
func (f *File) Path() string {
	return f.path
}

// Load reads every identity from the backing file, creating an empty file
// when none exists.
func (f *File) Load(ctx context.Context) ([]model.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "load", Path: f.path, Err: err}
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := createEmpty(f.path); err != nil {
			return nil, &StorageError{Op: "create", Path: f.path, Err: err}
		}
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: f.path, Err: err}
	}
	return parseList(data), nil
}

// Save overwrites the backing file with ids. Readers never observe a
// partially written list.
func (f *File) Save(ctx context.Context, ids []model.Identity) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: "save", Path: f.path, Err: err}
	}

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(string(id))
		b.WriteByte('\n')
	}
	if err := f.write(f.path, []byte(b.String()), filePerm); err != nil {
		return &StorageError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}

// Contains loads the list and checks id against it ignoring case.
func (f *File) Contains(ctx context.Context, id model.Identity) (bool, error) {
	ids, err := f.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, stored := range ids {
		if stored.Equal(id) {
			return true, nil
		}
	}
	return false, nil
}

func createEmpty(path string) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, filePerm)
	if err != nil {
		return err
	}
	return fh.Close()
}

// parseList splits file contents into identities. Windows line endings and
// blank lines are tolerated so hand-edited files load cleanly.
func parseList(data []byte) []model.Identity {
	var ids []model.Identity
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		ids = append(ids, model.Identity(line))
	}
	return ids
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}

var _ Storage = (*File)(nil)
