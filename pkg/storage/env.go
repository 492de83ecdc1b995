package storage

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValueKind tags an EnvironmentValue.
type ValueKind string

const (
	KindValue  ValueKind = "Value"
	KindSecret ValueKind = "Secret"
)

// EnvironmentValue is either a literal value or a reference to a named secret
// held in the global secrets store. On disk it is {"Value": "..."} or {"Secret": "..."}.
type EnvironmentValue struct {
	Kind ValueKind
	Data string
}

// Value returns a literal environment value.
func Value(v string) EnvironmentValue { return EnvironmentValue{Kind: KindValue, Data: v} }

// SecretRef returns a value that refers to the global secret called name.
func SecretRef(name string) EnvironmentValue { return EnvironmentValue{Kind: KindSecret, Data: name} }

func (v EnvironmentValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindValue, KindSecret:
		return json.Marshal(map[ValueKind]string{v.Kind: v.Data})
	default:
		return nil, fmt.Errorf("environment value: unknown kind %q", v.Kind)
	}
}

func (v *EnvironmentValue) UnmarshalJSON(data []byte) error {
	var raw map[ValueKind]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("environment value: expected exactly one of Value or Secret, got %d keys", len(raw))
	}
	for kind, data := range raw {
		if kind != KindValue && kind != KindSecret {
			return fmt.Errorf("environment value: unknown kind %q", kind)
		}
		v.Kind = kind
		v.Data = data
	}
	return nil
}

// Environment is a named set of variables scoped to a collection.
// The name is the file name on disk and is not stored in the file body.
type Environment struct {
	Name   string
	Values map[string]EnvironmentValue
}

// SecretLookup resolves a secret name to its stored value.
type SecretLookup interface {
	Lookup(name string) (string, bool)
}

// Resolve returns the value for key, following secret references through secrets.
func (e *Environment) Resolve(key string, secrets SecretLookup) (string, bool) {
	v, ok := e.Values[key]
	if !ok {
		return "", false
	}
	if v.Kind == KindSecret {
		if secrets == nil {
			return "", false
		}
		return secrets.Lookup(v.Data)
	}
	return v.Data, true
}

// Keys returns the variable names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.Values))
	for k := range e.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

