// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Loader func(*LEnv) error

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of LVals that it
	// contains.  The returned LVals are evaluated in order.
	Read(name string, r io.Reader) ([]*LVal, error)
}

// LocationReader is like Reader but assigns physical locations to the tokens
// from r.
type LocationReader interface {
	// ReadLocation the contents of r, associated with physical location loc,
	// and return the sequence of LVals that it contains.
	ReadLocation(name string, loc string, r io.Reader) ([]*LVal, error)
}

// SourceLibrary is an interface that resolves source file locations.
type SourceLibrary interface {
	// LoadSource returns the name of the source, its canonical location and
	// its contents.
	LoadSource(loc string) (name string, canonicalLoc string, src []byte, err error)
}

// RelativeFileSystemLibrary loads source files from the local filesystem.
// When RootDir is set relative locations are resolved against it and no file
// outside of RootDir may be loaded.
type RelativeFileSystemLibrary struct {
	RootDir string
}

var _ SourceLibrary = &RelativeFileSystemLibrary{}

func (lib *RelativeFileSystemLibrary) LoadSource(loc string) (string, string, []byte, error) {
	if lib.RootDir != "" && !filepath.IsAbs(loc) {
		loc = filepath.Join(lib.RootDir, loc)
	}
	loc, err := filepath.Abs(loc)
	if err != nil {
		return "", "", nil, err
	}
	if lib.RootDir != "" {
		root, err := filepath.Abs(lib.RootDir)
		if err != nil {
			return "", "", nil, err
		}
		rel, err := filepath.Rel(root, loc)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", "", nil, fmt.Errorf("location outside of library root: %s", loc)
		}
	}
	src, err := os.ReadFile(loc)
	if err != nil {
		return "", "", nil, err
	}
	return filepath.Base(loc), loc, src, nil
}

// LoaderMust returns its first argument when err is nil.  If err is not nil
// LoaderMust panics.
func LoaderMust(fn Loader, err error) Loader {
	if err != nil {
		panic(err)
	}
	return fn
}

// TextLoader parses a text stream using r and returns a Loader which evaluates
// the stream's expressions when called.  The reader will be invoked only once.
func TextLoader(r Reader, name string, stream io.Reader) (Loader, error) {
	exprs, err := r.Read(name, stream)
	if err != nil {
		return nil, err
	}
	fn := func(env *LEnv) error {
		_, err := env.load(exprs)
		return err
	}
	return fn, nil
}
