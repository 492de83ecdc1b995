package storage

// DefaultCollection returns the collection written on first run: one example
// request and one example environment.
func DefaultCollection(dir string) Collection {
	req, _ := NewRequestBuilder().
		Name("example").
		Method(MethodGet).
		URL("https://httpbin.org/get").
		Protocol(ProtocolHTTP).
		Header("Accept", "application/json").
		QueryParam("hello", "world").
		Build()

	env := Environment{
		Name: "dev",
		Values: map[string]EnvironmentValue{
			"BASE_URL":  Value("http://localhost:3000"),
			"API_TOKEN": SecretRef("api_token"),
		},
	}

	return Collection{
		Requests:     []Request{req},
		Environments: []Environment{env},
		SaveLocation: dir,
	}
}
