package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, name string, method Method, url string) Request {
	t.Helper()
	req, err := NewRequestBuilder().Name(name).Method(method).URL(url).Build()
	require.NoError(t, err)
	return req
}

func sampleCollection(t *testing.T) Collection {
	t.Helper()
	full, err := NewRequestBuilder().
		Name("create user").
		Method(MethodPost).
		URL("https://api.example.com/users/{org}").
		Protocol(ProtocolHTTP).
		Header("Content-Type", "application/json").
		Header("X-Trace", "a").
		Header("X-Trace", "b").
		Body(`{"name":"ada"}`).
		PathParam("org", "acme").
		QueryParam("dry_run", "true").
		Build()
	require.NoError(t, err)

	return Collection{
		Requests: []Request{
			full,
			mustRequest(t, "list users", MethodGet, "https://api.example.com/users"),
		},
		Environments: []Environment{
			{Name: "dev", Values: map[string]EnvironmentValue{
				"BASE_URL": Value("http://localhost"),
				"TOKEN":    SecretRef("dev_token"),
			}},
			{Name: "prod", Values: map[string]EnvironmentValue{}},
		},
	}
}

func TestRequestBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		builder *RequestBuilder
		wantErr bool
	}{
		{
			name:    "all required fields",
			builder: NewRequestBuilder().Name("a").Method(MethodGet).URL("http://x"),
		},
		{
			name:    "missing name",
			builder: NewRequestBuilder().Method(MethodGet).URL("http://x"),
			wantErr: true,
		},
		{
			name:    "missing method",
			builder: NewRequestBuilder().Name("a").URL("http://x"),
			wantErr: true,
		},
		{
			name:    "missing url",
			builder: NewRequestBuilder().Name("a").Method(MethodPost),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.builder.Build()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingField)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, req.Headers)
			assert.Nil(t, req.Body)
		})
	}
}

func TestRequestBuilder_HeadersKeepOrder(t *testing.T) {
	req, err := NewRequestBuilder().
		Name("h").Method(MethodGet).URL("http://x").
		Header("A", "1").
		Header("B", "2").
		Header("A", "3").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []Header{{"A", "1"}, {"B", "2"}, {"A", "3"}}, req.Headers)
}

func TestSerialize_RoundTrip(t *testing.T) {
	coll := sampleCollection(t)

	got := Deserialize("/tmp/somewhere", Serialize(&coll))

	assert.Equal(t, "/tmp/somewhere", got.SaveLocation)
	assert.ElementsMatch(t, coll.Requests, got.Requests)
	assert.ElementsMatch(t, coll.Environments, got.Environments)
}

func TestSerialize_RequestJSONShape(t *testing.T) {
	coll := Collection{Requests: []Request{mustRequest(t, "r", MethodGet, "http://x")}}

	sc := Serialize(&coll)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(sc.Requests["r"], &raw))
	assert.Equal(t, "Get", raw["method"])
	assert.Nil(t, raw["protocol"])
	assert.Nil(t, raw["body"])
	assert.Equal(t, []any{}, raw["headers"])
	assert.Contains(t, raw, "path_params")
	assert.Contains(t, raw, "query_params")
}

func TestSerialize_EnvironmentOmitsName(t *testing.T) {
	coll := Collection{Environments: []Environment{{
		Name:   "dev",
		Values: map[string]EnvironmentValue{"K": Value("v"), "S": SecretRef("s")},
	}}}

	sc := Serialize(&coll)

	assert.JSONEq(t, `{"K":{"Value":"v"},"S":{"Secret":"s"}}`, string(sc.Environments["dev"]))
}

func TestSerialize_NameCollisionKeepsOneEntry(t *testing.T) {
	coll := Collection{Requests: []Request{
		mustRequest(t, "dup", MethodGet, "http://first"),
		mustRequest(t, "dup", MethodPost, "http://second"),
	}}

	sc := Serialize(&coll)

	// Which of the two wins is not part of the contract; only that one remains.
	assert.Len(t, sc.Requests, 1)
	assert.Contains(t, sc.Requests, "dup")
}

func TestSerialize_DropsUnencodableItems(t *testing.T) {
	coll := Collection{
		Requests: []Request{
			mustRequest(t, "ok", MethodGet, "http://x"),
			mustRequest(t, "../escape", MethodGet, "http://x"),
			mustRequest(t, "", MethodGet, "http://x"),
			mustRequest(t, "bad-utf8", MethodGet, "http://\xff"),
		},
		Environments: []Environment{
			{Name: "good"},
			{Name: "weird-kind", Values: map[string]EnvironmentValue{"k": {Kind: "Other", Data: "x"}}},
		},
	}

	sc := Serialize(&coll)

	assert.Len(t, sc.Requests, 1)
	assert.Contains(t, sc.Requests, "ok")
	assert.Len(t, sc.Environments, 1)
	assert.JSONEq(t, `{}`, string(sc.Environments["good"]))
}

func TestDeserialize_PartialCorruption(t *testing.T) {
	coll := Collection{Requests: []Request{
		mustRequest(t, "a", MethodGet, "http://a"),
		mustRequest(t, "b", MethodGet, "http://b"),
		mustRequest(t, "c", MethodGet, "http://c"),
	}}
	sc := Serialize(&coll)
	sc.Requests["b"] = []byte(`{"name": "b", "url": `)

	got := Deserialize("", sc)

	require.Len(t, got.Requests, 2)
	assert.Equal(t, "a", got.Requests[0].Name)
	assert.Equal(t, "c", got.Requests[1].Name)
}

func TestDeserialize_SchemaViolationsAreDropped(t *testing.T) {
	sc := SerializedCollection{Requests: map[string][]byte{
		"ok":             []byte(`{"name":"ok","url":"http://x","method":"Get","headers":[]}`),
		"bad-method":     []byte(`{"name":"m","url":"http://x","method":"Delete","headers":[]}`),
		"missing-url":    []byte(`{"name":"u","method":"Get","headers":[]}`),
		"bad-headers":    []byte(`{"name":"h","url":"http://x","method":"Get","headers":{"a":"b"}}`),
		"bad-protocol":   []byte(`{"name":"p","url":"http://x","method":"Get","headers":[],"protocol":"Ftp"}`),
		"numeric-params": []byte(`{"name":"q","url":"http://x","method":"Get","headers":[],"query_params":{"a":1}}`),
	}}

	got := Deserialize("", sc)

	require.Len(t, got.Requests, 1)
	assert.Equal(t, "ok", got.Requests[0].Name)
}

func TestDeserialize_EnvironmentNameFromKey(t *testing.T) {
	sc := SerializedCollection{Environments: map[string][]byte{
		"staging": []byte(`{"HOST":{"Value":"s.example.com"}}`),
		"broken":  []byte(`{"HOST":{"Value":"a","Secret":"b"}}`),
		"null":    []byte(`null`),
	}}

	got := Deserialize("", sc)

	require.Len(t, got.Environments, 1)
	assert.Equal(t, "staging", got.Environments[0].Name)
	assert.Equal(t, Value("s.example.com"), got.Environments[0].Values["HOST"])
}

type secretMap map[string]string

func (s secretMap) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

func TestEnvironment_Resolve(t *testing.T) {
	env := Environment{Name: "dev", Values: map[string]EnvironmentValue{
		"HOST":    Value("localhost"),
		"TOKEN":   SecretRef("dev_token"),
		"MISSING": SecretRef("nope"),
	}}
	secrets := secretMap{"dev_token": "s3cr3t"}

	v, ok := env.Resolve("HOST", secrets)
	assert.True(t, ok)
	assert.Equal(t, "localhost", v)

	v, ok = env.Resolve("TOKEN", secrets)
	assert.True(t, ok)
	assert.Equal(t, "s3cr3t", v)

	_, ok = env.Resolve("MISSING", secrets)
	assert.False(t, ok)

	_, ok = env.Resolve("TOKEN", nil)
	assert.False(t, ok)

	assert.Equal(t, []string{"HOST", "MISSING", "TOKEN"}, env.Keys())
}
