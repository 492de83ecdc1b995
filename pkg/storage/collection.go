package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	errBadName    = errors.New("name is not a valid file name")
	errInvalidUTF = errors.New("contains invalid UTF-8")
)

// Serialize encodes every request and environment keyed by name.
//
// Encoding is best effort: an item whose name cannot be used as a file name, that
// holds invalid UTF-8, or that fails to marshal is left out of the result without
// an error. Two items with the same name collapse to one entry, the later one winning.
func Serialize(c *Collection) SerializedCollection {
	out := SerializedCollection{
		Requests:     make(map[string][]byte, len(c.Requests)),
		Environments: make(map[string][]byte, len(c.Environments)),
	}

	for _, req := range c.Requests {
		data, err := encodeRequest(req)
		if err != nil {
			continue
		}
		out.Requests[req.Name] = data
	}

	for _, env := range c.Environments {
		data, err := encodeEnvironment(env)
		if err != nil {
			continue
		}
		out.Environments[env.Name] = data
	}

	return out
}

// Deserialize rebuilds a Collection from its serialized form.
//
// Request blobs that are not valid JSON or do not match the request schema are
// dropped. Environment blobs decode into the values map and take their name from
// the map key. Both slices come back sorted by key.
func Deserialize(saveLocation string, sc SerializedCollection) Collection {
	coll := Collection{
		Requests:     make([]Request, 0, len(sc.Requests)),
		Environments: make([]Environment, 0, len(sc.Environments)),
		SaveLocation: saveLocation,
	}

	for _, key := range sortedKeys(sc.Requests) {
		req, err := decodeRequest(sc.Requests[key])
		if err != nil {
			continue
		}
		coll.Requests = append(coll.Requests, req)
	}

	for _, key := range sortedKeys(sc.Environments) {
		values, err := decodeEnvironmentValues(sc.Environments[key])
		if err != nil {
			continue
		}
		coll.Environments = append(coll.Environments, Environment{Name: key, Values: values})
	}

	return coll
}

func encodeRequest(req Request) ([]byte, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}
	if !requestIsUTF8(req) {
		return nil, fmt.Errorf("request %q: %w", req.Name, errInvalidUTF)
	}
	if req.Headers == nil {
		req.Headers = []Header{}
	}
	return json.Marshal(req)
}

func decodeRequest(data []byte) (Request, error) {
	if err := validateRequestJSON(data); err != nil {
		return Request{}, err
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("failed to parse request: %w", err)
	}
	return req, nil
}

func encodeEnvironment(env Environment) ([]byte, error) {
	if err := ValidateName(env.Name); err != nil {
		return nil, err
	}
	for k, v := range env.Values {
		if !utf8.ValidString(k) || !utf8.ValidString(v.Data) {
			return nil, fmt.Errorf("environment %q: %w", env.Name, errInvalidUTF)
		}
	}
	values := env.Values
	if values == nil {
		values = map[string]EnvironmentValue{}
	}
	return json.Marshal(values)
}

func decodeEnvironmentValues(data []byte) (map[string]EnvironmentValue, error) {
	var values map[string]EnvironmentValue
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if values == nil {
		return nil, errors.New("environment is null")
	}
	return values, nil
}

// ValidateName reports whether name can be used as a request or environment file name.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, errBadName)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return fmt.Errorf("%q: %w", name, errBadName)
	case !utf8.ValidString(name):
		return fmt.Errorf("%q: %w", name, errInvalidUTF)
	}
	return nil
}

func requestIsUTF8(req Request) bool {
	if !utf8.ValidString(req.URL) {
		return false
	}
	if req.Body != nil && !utf8.ValidString(*req.Body) {
		return false
	}
	for _, h := range req.Headers {
		if !utf8.ValidString(h.Name) || !utf8.ValidString(h.Value) {
			return false
		}
	}
	for _, m := range []map[string]string{req.PathParams, req.QueryParams} {
		for k, v := range m {
			if !utf8.ValidString(k) || !utf8.ValidString(v) {
				return false
			}
		}
	}
	return true
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
