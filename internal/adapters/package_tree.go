package adapters

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"native-recipes/internal/ports"
)

// PackageTreeAdapter performs filesystem operations confined to one package
// output directory.
type PackageTreeAdapter struct {
	root string
}

func NewPackageTreeAdapter(root string) (PackageTreeAdapter, error) {
	if root == "" {
		return PackageTreeAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package directory is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return PackageTreeAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve package directory").
			WithCause(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return PackageTreeAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package directory not found").
			WithCause(err)
	}
	if !info.IsDir() {
		return PackageTreeAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package directory is not a directory")
	}
	return PackageTreeAdapter{root: abs}, nil
}

func (a PackageTreeAdapter) Root() string {
	return a.root
}

func (a PackageTreeAdapter) Exists(rel string) (bool, error) {
	abs, err := a.resolve(rel)
	if err != nil {
		return false, err
	}
	if _, err := os.Lstat(abs); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fsError("failed to stat path", rel, err)
	}
	return true, nil
}

func (a PackageTreeAdapter) IsDir(rel string) (bool, error) {
	abs, err := a.resolve(rel)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fsError("failed to stat path", rel, err)
	}
	return info.IsDir(), nil
}

func (a PackageTreeAdapter) List(dir string) ([]string, error) {
	abs, err := a.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fsError("failed to list directory", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (a PackageTreeAdapter) Walk(dir string, fn func(rel string, entry fs.DirEntry) error) error {
	abs, err := a.resolve(dir)
	if err != nil {
		return err
	}
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(a.root, p)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), d)
	})
	if err != nil {
		return fsError("failed to walk directory", dir, err)
	}
	return nil
}

func (a PackageTreeAdapter) Rename(from string, to string) error {
	src, err := a.resolve(from)
	if err != nil {
		return err
	}
	dst, err := a.resolve(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fsError("failed to create parent directory", to, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fsError("failed to rename", from, err)
	}
	return nil
}

func (a PackageTreeAdapter) RemoveAll(rel string) error {
	if path.Clean(filepath.ToSlash(rel)) == "." {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("refusing to remove the package root")
	}
	abs, err := a.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(abs); err != nil {
		return fsError("failed to remove", rel, err)
	}
	return nil
}

// CopyFile writes into a hidden ".<name>.partial" sibling and renames it into
// place. A rerun after an interruption overwrites the same temporary file.
func (a PackageTreeAdapter) CopyFile(from string, to string) error {
	src, err := a.resolve(from)
	if err != nil {
		return err
	}
	dst, err := a.resolve(to)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return fsError("failed to stat source", from, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fsError("failed to open source", from, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fsError("failed to create destination directory", to, err)
	}
	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".partial")
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fsError("failed to create destination", to, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fsError("failed to copy", from, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fsError("failed to flush", to, err)
	}
	if err := out.Close(); err != nil {
		return fsError("failed to close", to, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fsError("failed to move copy into place", to, err)
	}
	return nil
}

func (a PackageTreeAdapter) SameContent(left string, right string) (bool, error) {
	leftAbs, err := a.resolve(left)
	if err != nil {
		return false, err
	}
	rightAbs, err := a.resolve(right)
	if err != nil {
		return false, err
	}
	leftInfo, err := os.Stat(leftAbs)
	if err != nil {
		return false, fsError("failed to stat", left, err)
	}
	rightInfo, err := os.Stat(rightAbs)
	if err != nil {
		return false, fsError("failed to stat", right, err)
	}
	if leftInfo.Size() != rightInfo.Size() {
		return false, nil
	}
	leftSum, err := fileDigest(leftAbs)
	if err != nil {
		return false, fsError("failed to hash", left, err)
	}
	rightSum, err := fileDigest(rightAbs)
	if err != nil {
		return false, fsError("failed to hash", right, err)
	}
	return bytes.Equal(leftSum, rightSum), nil
}

func (a PackageTreeAdapter) resolve(rel string) (string, error) {
	clean := path.Clean(filepath.ToSlash(rel))
	if clean != "." && !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("path %q escapes the package directory", rel))
	}
	return filepath.Join(a.root, filepath.FromSlash(clean)), nil
}

func fileDigest(p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

func fsError(msg string, rel string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s: %s", msg, rel)).
		WithCause(err)
}

var _ ports.PackageTreePort = PackageTreeAdapter{}
