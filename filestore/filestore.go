// Package filestore keeps uploaded student photos in a single directory.
// Files are addressed by a bare filename; student rows reference them by
// that name.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidName is returned for names that are not a single path element
	ErrInvalidName = errors.New("invalid file name")
	// ErrNotImage is returned when the original name is not an allowed image
	ErrNotImage = errors.New("only image files are allowed")
	// ErrTooLarge is returned when a file exceeds the size limit
	ErrTooLarge = errors.New("file too large")
)

var imageName = regexp.MustCompile(`\.(jpg|jpeg|png|gif)$`)

var whitespace = regexp.MustCompile(`\s+`)

var dotRun = regexp.MustCompile(`\.{2,}`)

const stagePrefix = ".upload-"

// Store is a directory of photo files
type Store struct {
	dir      string
	maxBytes int64
}

// New creates the directory when needed and returns a store rooted at it
func New(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the root directory
func (s *Store) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file size limit
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// CheckImage validates an upload by its original name and size
func (s *Store) CheckImage(originalName string, size int64) error {
	if !imageName.MatchString(originalName) {
		return ErrNotImage
	}
	if size > s.maxBytes {
		return ErrTooLarge
	}
	return nil
}

// ValidName reports whether name is a single path element inside the store.
// Dots are fine anywhere; only "." and ".." themselves are refused.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// Path returns the on-disk path of name
func (s *Store) Path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes src under name. The data goes to a temp file first and is
// renamed into place, so a failed copy never leaves a partial photo behind.
func (s *Store) Save(name string, src io.Reader) error {
	if _, err := s.Path(name); err != nil {
		return err
	}
	staged, err := s.Stage(src)
	if err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return s.Commit(staged, name)
}

// Stage writes src to a hidden temp file in the store and returns its name.
// The file only becomes visible under a real name through Commit.
func (s *Store) Stage(src io.Reader) (string, error) {
	tmp, err := os.CreateTemp(s.dir, stagePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// one byte past the limit is enough to tell the file is too large
	n, err := io.Copy(tmp, io.LimitReader(src, s.maxBytes+1))
	closeErr := tmp.Close()
	if err == nil && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return filepath.Base(tmpName), nil
}

// Commit moves a staged file to name, replacing any file already there
func (s *Store) Commit(staged, name string) error {
	src, err := s.stagedPath(staged)
	if err != nil {
		return err
	}
	dst, err := s.Path(name)
	if err != nil {
		s.Discard(staged)
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		s.Discard(staged)
		return fmt.Errorf("move %q into place: %w", name, err)
	}
	return nil
}

// Discard drops a staged file that will not be committed
func (s *Store) Discard(staged string) {
	if p, err := s.stagedPath(staged); err == nil {
		os.Remove(p)
	}
}

func (s *Store) stagedPath(staged string) (string, error) {
	if !strings.HasPrefix(staged, stagePrefix) {
		return "", fmt.Errorf("%q: %w", staged, ErrInvalidName)
	}
	return s.Path(staged)
}

// Exists reports whether name is a regular file in the store
func (s *Store) Exists(name string) bool {
	p, err := s.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes name. A file that is already gone is not an error.
func (s *Store) Remove(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", name, err)
	}
	return nil
}

// GeneratedName returns a unique name for a standalone upload:
// unix millis, a random number below 1e9 and the original extension.
func GeneratedName(originalName string) string {
	suffix := uuid.New().ID() % 1_000_000_000
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), suffix, filepath.Ext(originalName))
}

// StudentPhotoName returns the deterministic name of a photo uploaded with a
// student record: idno_firstname_lastname.ext. Whitespace runs and path
// separators become underscores and runs of dots collapse to one, so
// "Cruz Jr." with ".png" ends in "Cruz_Jr.png".
func StudentPhotoName(idno, firstname, lastname, ext string) string {
	name := whitespace.ReplaceAllString(idno+"_"+firstname+"_"+lastname+ext, "_")
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	return dotRun.ReplaceAllString(name, ".")
}
