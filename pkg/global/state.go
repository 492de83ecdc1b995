// Package global holds process-wide state that outlives any single collection,
// currently the secrets store kept under the user's data directory.
package global

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/blackcoderx/pigeon/pkg/errdef"
)

const (
	// DirName is the data directory name under ~/.local/share.
	DirName = ".carrier-pigeon"
	// SecretsFile is the file holding the encoded secrets map.
	SecretsFile = "secrets"
)

// SecretKind tags how a secret value is stored.
type SecretKind string

// RawValue secrets are stored as plain text. There is no encryption.
const RawValue SecretKind = "RawValue"

// Secret is a stored secret value. On disk it is {"RawValue": "<value>"}.
type Secret struct {
	Kind  SecretKind
	Value string
}

func (s Secret) MarshalJSON() ([]byte, error) {
	kind := s.Kind
	if kind == "" {
		kind = RawValue
	}
	if kind != RawValue {
		return nil, fmt.Errorf("secret: unknown kind %q", kind)
	}
	return json.Marshal(map[SecretKind]string{kind: s.Value})
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var raw map[SecretKind]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, ok := raw[RawValue]
	if !ok || len(raw) != 1 {
		return fmt.Errorf("secret: expected a single %q entry", RawValue)
	}
	s.Kind = RawValue
	s.Value = v
	return nil
}

// State is the global secrets store. Environments refer to secrets by name.
type State struct {
	Secrets map[string]Secret
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Secrets: make(map[string]Secret)}
}

// Lookup returns the value of the named secret.
func (s *State) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	sec, ok := s.Secrets[name]
	return sec.Value, ok
}

// Set stores value under name, replacing any previous value.
func (s *State) Set(name, value string) {
	if s.Secrets == nil {
		s.Secrets = make(map[string]Secret)
	}
	s.Secrets[name] = Secret{Kind: RawValue, Value: value}
}

// Delete removes the named secret and reports whether it existed.
func (s *State) Delete(name string) bool {
	_, ok := s.Secrets[name]
	delete(s.Secrets, name)
	return ok
}

// Names returns the secret names in sorted order.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.Secrets))
	for name := range s.Secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDir returns ~/.local/share/.carrier-pigeon.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errdef.Wrap(errdef.CodeConfig, err, "resolve home directory")
	}
	return filepath.Join(home, ".local", "share", DirName), nil
}

// Load reads the secrets file from dir.
//
// A missing dir is a first run: it is created with an empty secrets file and an
// empty state returned. Once dir exists it is authoritative, so a missing or
// malformed secrets file is an error.
func Load(dir string) (*State, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errdef.Wrap(errdef.CodeFilesystem, err, "create %s", dir)
		}
		state := NewState()
		if err := Save(dir, state); err != nil {
			return nil, err
		}
		return state, nil
	} else if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "stat %s", dir)
	}

	path := filepath.Join(dir, SecretsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read %s", path)
	}

	state := NewState()
	if err := json.Unmarshal(data, &state.Secrets); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "decode %s", path)
	}
	if state.Secrets == nil {
		state.Secrets = make(map[string]Secret)
	}
	return state, nil
}

// Save overwrites the secrets file. Nothing is written when dir does not exist.
func Save(dir string, state *State) error {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errdef.Wrap(errdef.CodeFilesystem, err, "stat %s", dir)
	}

	secrets := state.Secrets
	if secrets == nil {
		secrets = map[string]Secret{}
	}
	data, err := json.Marshal(secrets)
	if err != nil {
		return errdef.Wrap(errdef.CodeParse, err, "encode secrets")
	}

	path := filepath.Join(dir, SecretsFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write %s", path)
	}
	return nil
}
