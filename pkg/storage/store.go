package storage

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/blackcoderx/pigeon/pkg/errdef"
)

const (
	requestsDirName     = "requests"
	environmentsDirName = "environments"
)

// RequestsDir returns the requests directory path under baseDir.
func RequestsDir(baseDir string) string {
	return filepath.Join(baseDir, requestsDirName)
}

// EnvironmentsDir returns the environments directory path under baseDir.
func EnvironmentsDir(baseDir string) string {
	return filepath.Join(baseDir, environmentsDirName)
}

// Store reads and writes a collection laid out as
//
//	<Dir>/requests/<request-name>
//	<Dir>/environments/<environment-name>
type Store struct {
	Dir    string
	Logger *slog.Logger
}

// NewStore creates a store rooted at dir. A nil logger discards output.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{Dir: dir, Logger: logger}
}

// Exists reports whether the store's directory is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Dir)
	return err == nil
}

// Save writes every serializable item of c under the store directory.
// Failing to create the two subdirectories is returned; a failure writing a single
// file is logged and the remaining files are still attempted.
func (s *Store) Save(c *Collection) error {
	reqDir := RequestsDir(s.Dir)
	envDir := EnvironmentsDir(s.Dir)
	if err := os.MkdirAll(reqDir, 0755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create %s", reqDir)
	}
	if err := os.MkdirAll(envDir, 0755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create %s", envDir)
	}

	sc := Serialize(c)
	if skipped := len(c.Requests) - len(sc.Requests); skipped > 0 {
		s.Logger.Warn("some requests were not serialized", "skipped", skipped)
	}
	if skipped := len(c.Environments) - len(sc.Environments); skipped > 0 {
		s.Logger.Warn("some environments were not serialized", "skipped", skipped)
	}

	for name, data := range sc.Requests {
		s.writeItem(filepath.Join(reqDir, name), data)
	}
	for name, data := range sc.Environments {
		s.writeItem(filepath.Join(envDir, name), data)
	}

	s.Logger.Info("collection saved", "dir", s.Dir,
		"requests", len(sc.Requests), "environments", len(sc.Environments))
	return nil
}

func (s *Store) writeItem(path string, data []byte) {
	if old, err := os.ReadFile(path); err == nil && !bytes.Equal(old, data) {
		name := filepath.Base(path)
		edits := udiff.Strings(string(old), string(data))
		if unified, err := udiff.ToUnified("a/"+name, "b/"+name, string(old), edits, 3); err == nil {
			s.Logger.Debug("file changed", "path", path, "diff", unified)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		s.Logger.Warn("failed to write file", "path", path, "err", err)
	}
}

// Load reads the collection stored under the store directory.
// An unreadable requests or environments directory fails the whole load;
// an unreadable or malformed individual file is skipped.
func (s *Store) Load() (*Collection, error) {
	requests, err := s.readDir(RequestsDir(s.Dir))
	if err != nil {
		return nil, err
	}
	environments, err := s.readDir(EnvironmentsDir(s.Dir))
	if err != nil {
		return nil, err
	}

	coll := Deserialize(s.Dir, SerializedCollection{
		Requests:     requests,
		Environments: environments,
	})
	if dropped := len(requests) - len(coll.Requests); dropped > 0 {
		s.Logger.Warn("skipped malformed request files", "count", dropped)
	}
	if dropped := len(environments) - len(coll.Environments); dropped > 0 {
		s.Logger.Warn("skipped malformed environment files", "count", dropped)
	}
	s.Logger.Info("collection loaded", "dir", s.Dir,
		"requests", len(coll.Requests), "environments", len(coll.Environments))
	return &coll, nil
}

func (s *Store) readDir(dir string) (map[string][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read %s", dir)
	}

	out := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.Logger.Warn("failed to read file", "path", path, "err", err)
			continue
		}
		out[entry.Name()] = data
	}
	return out, nil
}

// LoadOrCreate loads the collection when the directory exists. Otherwise it
// synthesizes DefaultCollection and persists it right away.
func (s *Store) LoadOrCreate() (*Collection, error) {
	if _, err := os.Stat(s.Dir); err == nil {
		return s.Load()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "stat %s", s.Dir)
	}

	s.Logger.Info("no collection found, creating default", "dir", s.Dir)
	coll := DefaultCollection(s.Dir)
	if err := s.Save(&coll); err != nil {
		return nil, err
	}
	return &coll, nil
}
