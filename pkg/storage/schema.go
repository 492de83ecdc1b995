package storage

// Method is the HTTP verb of a saved request.
type Method string

const (
	MethodGet  Method = "Get"
	MethodPost Method = "Post"
)

// String returns the wire form of the method ("GET", "POST").
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return string(m)
	}
}

// Protocol is the transport a request is meant for.
type Protocol string

const (
	ProtocolHTTP Protocol = "Http"
	ProtocolTCP  Protocol = "Tcp"
	ProtocolRPC  Protocol = "Rpc"
	ProtocolGRPC Protocol = "Grpc"
)

// Header is a single request header. A request may carry the same name more than once.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Request represents a saved API request. The name doubles as its file name on disk.
type Request struct {
	Name        string            `json:"name"`         // Unique name within a collection
	Protocol    *Protocol         `json:"protocol"`     // nil means unspecified
	URL         string            `json:"url"`          // Request URL
	Method      Method            `json:"method"`       // Get or Post
	Headers     []Header          `json:"headers"`      // Ordered, duplicates allowed
	Body        *string           `json:"body"`         // Optional raw body
	PathParams  map[string]string `json:"path_params"`  // Substituted into {name} segments
	QueryParams map[string]string `json:"query_params"` // Appended to the URL query
}

// Collection is the in-memory aggregate of requests and environments.
// SaveLocation is filled in when a collection is read from disk and is never written back.
type Collection struct {
	Requests     []Request
	Environments []Environment
	SaveLocation string
}

// SerializedCollection is the transient by-name wire form of a Collection.
type SerializedCollection struct {
	Requests     map[string][]byte
	Environments map[string][]byte
}

// Request returns the request at idx, if any.
func (c *Collection) Request(idx int) (*Request, bool) {
	if c == nil || idx < 0 || idx >= len(c.Requests) {
		return nil, false
	}
	return &c.Requests[idx], true
}

// Environment returns the environment at idx, if any.
func (c *Collection) Environment(idx int) (*Environment, bool) {
	if c == nil || idx < 0 || idx >= len(c.Environments) {
		return nil, false
	}
	return &c.Environments[idx], true
}

// RequestByName returns the request called name, if any.
func (c *Collection) RequestByName(name string) (*Request, bool) {
	return c.Request(c.requestIndex(name))
}

// EnvironmentByName returns the environment called name, if any.
func (c *Collection) EnvironmentByName(name string) (*Environment, bool) {
	return c.Environment(c.environmentIndex(name))
}
