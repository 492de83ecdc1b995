package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBundle = `
requests:
  - name: list users
    method: get
    url: https://api.example.com/users
    headers:
      - name: Accept
        value: application/json
    query:
      page: "2"
  - name: create user
    method: POST
    url: https://api.example.com/users
    protocol: Http
    body: '{"name":"ada"}'
environments:
  dev:
    BASE_URL: http://localhost:3000
    TOKEN:
      secret: dev_token
`

func TestReadBundle(t *testing.T) {
	coll, err := ReadBundle([]byte(sampleBundle))
	require.NoError(t, err)

	require.Len(t, coll.Requests, 2)
	list := coll.Requests[0]
	assert.Equal(t, MethodGet, list.Method)
	assert.Equal(t, []Header{{Name: "Accept", Value: "application/json"}}, list.Headers)
	assert.Equal(t, map[string]string{"page": "2"}, list.QueryParams)
	assert.Nil(t, list.Protocol)

	create := coll.Requests[1]
	assert.Equal(t, MethodPost, create.Method)
	require.NotNil(t, create.Body)
	assert.Equal(t, `{"name":"ada"}`, *create.Body)
	require.NotNil(t, create.Protocol)
	assert.Equal(t, ProtocolHTTP, *create.Protocol)

	require.Len(t, coll.Environments, 1)
	assert.Equal(t, Value("http://localhost:3000"), coll.Environments[0].Values["BASE_URL"])
	assert.Equal(t, SecretRef("dev_token"), coll.Environments[0].Values["TOKEN"])
}

func TestReadBundle_UnsupportedMethod(t *testing.T) {
	_, err := ReadBundle([]byte("requests:\n  - name: x\n    method: DELETE\n    url: http://x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DELETE")
}

func TestReadBundle_Protocol(t *testing.T) {
	tests := []struct {
		in      string
		want    Protocol
		wantErr bool
	}{
		{in: "HTTP", want: ProtocolHTTP},
		{in: "http", want: ProtocolHTTP},
		{in: "gRPC", want: ProtocolGRPC},
		{in: "Tcp", want: ProtocolTCP},
		{in: "rpc", want: ProtocolRPC},
		{in: "websocket", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			coll, err := ReadBundle([]byte("requests:\n  - name: x\n    method: GET\n    url: http://x\n    protocol: " + tt.in + "\n"))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.in)
				return
			}
			require.NoError(t, err)
			require.Len(t, coll.Requests, 1)
			require.NotNil(t, coll.Requests[0].Protocol)
			assert.Equal(t, tt.want, *coll.Requests[0].Protocol)
		})
	}
}

func TestReadBundle_SurvivesSaveAndLoad(t *testing.T) {
	coll, err := ReadBundle([]byte("requests:\n  - name: upper\n    method: get\n    url: http://x\n    protocol: HTTP\n"))
	require.NoError(t, err)

	store := NewStore(t.TempDir(), nil)
	require.NoError(t, store.Save(&coll))
	loaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, loaded.Requests, 1)
	assert.Equal(t, "upper", loaded.Requests[0].Name)
	require.NotNil(t, loaded.Requests[0].Protocol)
	assert.Equal(t, ProtocolHTTP, *loaded.Requests[0].Protocol)
}

func TestReadBundle_RejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty request name", "requests:\n  - name: \"\"\n    method: GET\n    url: http://x\n"},
		{"request name with slash", "requests:\n  - name: a/b\n    method: GET\n    url: http://x\n"},
		{"dot-dot environment", "environments:\n  \"..\":\n    K: v\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBundle([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, errBadName)
		})
	}
}

func TestWriteBundle_RoundTrip(t *testing.T) {
	coll := sampleCollection(t)

	data, err := WriteBundle(&coll)
	require.NoError(t, err)
	got, err := ReadBundle(data)
	require.NoError(t, err)

	assert.ElementsMatch(t, coll.Requests, got.Requests)
	assert.ElementsMatch(t, coll.Environments, got.Environments)
}

func TestCollection_Merge(t *testing.T) {
	coll := Collection{Requests: []Request{
		mustRequest(t, "a", MethodGet, "http://old"),
		mustRequest(t, "b", MethodGet, "http://b"),
	}}

	coll.Merge(Collection{
		Requests:     []Request{mustRequest(t, "a", MethodPost, "http://new"), mustRequest(t, "c", MethodGet, "http://c")},
		Environments: []Environment{{Name: "dev"}},
	})

	require.Len(t, coll.Requests, 3)
	assert.Equal(t, "http://new", coll.Requests[0].URL)
	assert.Equal(t, "c", coll.Requests[2].Name)
	assert.Len(t, coll.Environments, 1)

	env, ok := coll.EnvironmentByName("dev")
	require.True(t, ok)
	assert.Equal(t, "dev", env.Name)
	_, ok = coll.EnvironmentByName("prod")
	assert.False(t, ok)
	req, ok := coll.RequestByName("b")
	require.True(t, ok)
	assert.Equal(t, "http://b", req.URL)
}

func TestEnvironmentFromDotenv(t *testing.T) {
	env, err := EnvironmentFromDotenv("local", strings.NewReader("HOST=localhost\n# comment\nPORT=8080\n"))
	require.NoError(t, err)

	assert.Equal(t, "local", env.Name)
	assert.Equal(t, Value("localhost"), env.Values["HOST"])
	assert.Equal(t, Value("8080"), env.Values["PORT"])

	_, err = EnvironmentFromDotenv("bad/name", strings.NewReader("A=b"))
	assert.Error(t, err)
}
