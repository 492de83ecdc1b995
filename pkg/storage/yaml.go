package storage

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// bundle is the single-file YAML form used by import and export.
type bundle struct {
	Requests     []bundleRequest                   `yaml:"requests,omitempty"`
	Environments map[string]map[string]bundleValue `yaml:"environments,omitempty"`
}

type bundleRequest struct {
	Name     string            `yaml:"name"`               // Unique name for the request
	Method   string            `yaml:"method"`             // GET or POST
	URL      string            `yaml:"url"`                // Request URL
	Protocol string            `yaml:"protocol,omitempty"` // Http, Tcp, Rpc, Grpc
	Headers  []Header          `yaml:"headers,omitempty"`  // Ordered headers
	Path     map[string]string `yaml:"path,omitempty"`     // Path parameters
	Query    map[string]string `yaml:"query,omitempty"`    // Query parameters
	Body     *string           `yaml:"body,omitempty"`     // Raw body
}

// bundleValue is a plain scalar for literal values or {secret: name} for secret references.
type bundleValue struct {
	Value  string `yaml:"value,omitempty"`
	Secret string `yaml:"secret,omitempty"`
}

func (v *bundleValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v.Value = node.Value
		return nil
	}
	type plain bundleValue
	return node.Decode((*plain)(v))
}

func (v bundleValue) MarshalYAML() (any, error) {
	if v.Secret != "" {
		return map[string]string{"secret": v.Secret}, nil
	}
	return v.Value, nil
}

// ReadBundle parses a YAML bundle into a Collection without a save location.
func ReadBundle(data []byte) (Collection, error) {
	var b bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Collection{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var coll Collection
	for i, br := range b.Requests {
		if err := ValidateName(br.Name); err != nil {
			return Collection{}, fmt.Errorf("request %d: %w", i, err)
		}
		method, err := ParseMethod(br.Method)
		if err != nil {
			return Collection{}, fmt.Errorf("request %d (%s): %w", i, br.Name, err)
		}
		builder := NewRequestBuilder().
			Name(br.Name).
			Method(method).
			URL(br.URL).
			Headers(br.Headers).
			PathParams(br.Path).
			QueryParams(br.Query)
		if br.Protocol != "" {
			protocol, err := ParseProtocol(br.Protocol)
			if err != nil {
				return Collection{}, fmt.Errorf("request %d (%s): %w", i, br.Name, err)
			}
			builder.Protocol(protocol)
		}
		if br.Body != nil {
			builder.Body(*br.Body)
		}
		req, err := builder.Build()
		if err != nil {
			return Collection{}, err
		}
		coll.Requests = append(coll.Requests, req)
	}

	names := make([]string, 0, len(b.Environments))
	for name := range b.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return Collection{}, fmt.Errorf("environment: %w", err)
		}
		env := Environment{Name: name, Values: make(map[string]EnvironmentValue)}
		for key, v := range b.Environments[name] {
			if v.Secret != "" {
				env.Values[key] = SecretRef(v.Secret)
			} else {
				env.Values[key] = Value(v.Value)
			}
		}
		coll.Environments = append(coll.Environments, env)
	}

	return coll, nil
}

// WriteBundle renders c as a YAML bundle.
func WriteBundle(c *Collection) ([]byte, error) {
	b := bundle{Environments: make(map[string]map[string]bundleValue, len(c.Environments))}
	for _, req := range c.Requests {
		br := bundleRequest{
			Name:    req.Name,
			Method:  req.Method.String(),
			URL:     req.URL,
			Headers: req.Headers,
			Path:    req.PathParams,
			Query:   req.QueryParams,
			Body:    req.Body,
		}
		if req.Protocol != nil {
			br.Protocol = string(*req.Protocol)
		}
		b.Requests = append(b.Requests, br)
	}
	for _, env := range c.Environments {
		values := make(map[string]bundleValue, len(env.Values))
		for k, v := range env.Values {
			if v.Kind == KindSecret {
				values[k] = bundleValue{Secret: v.Data}
			} else {
				values[k] = bundleValue{Value: v.Data}
			}
		}
		b.Environments[env.Name] = values
	}

	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bundle: %w", err)
	}
	return data, nil
}

// ParseMethod accepts GET/Get/get style method names.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	default:
		return "", fmt.Errorf("unsupported method %q", s)
	}
}

// ParseProtocol maps a case-insensitive protocol name onto a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HTTP":
		return ProtocolHTTP, nil
	case "TCP":
		return ProtocolTCP, nil
	case "RPC":
		return ProtocolRPC, nil
	case "GRPC":
		return ProtocolGRPC, nil
	default:
		return "", fmt.Errorf("unsupported protocol %q", s)
	}
}

// Merge adds the items of other to c. Items whose name already exists replace
// the existing entry in place.
func (c *Collection) Merge(other Collection) {
	for _, req := range other.Requests {
		if i := c.requestIndex(req.Name); i >= 0 {
			c.Requests[i] = req
		} else {
			c.Requests = append(c.Requests, req)
		}
	}
	for _, env := range other.Environments {
		if i := c.environmentIndex(env.Name); i >= 0 {
			c.Environments[i] = env
		} else {
			c.Environments = append(c.Environments, env)
		}
	}
}

func (c *Collection) requestIndex(name string) int {
	for i := range c.Requests {
		if c.Requests[i].Name == name {
			return i
		}
	}
	return -1
}

func (c *Collection) environmentIndex(name string) int {
	for i := range c.Environments {
		if c.Environments[i].Name == name {
			return i
		}
	}
	return -1
}
