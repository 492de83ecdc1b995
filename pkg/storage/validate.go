package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// requestSchema mirrors the on-disk request file format.
const requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "url", "method", "headers"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "protocol": {"enum": [null, "Http", "Tcp", "Rpc", "Grpc"]},
    "url": {"type": "string"},
    "method": {"enum": ["Get", "Post"]},
    "headers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "value"],
        "properties": {
          "name": {"type": "string"},
          "value": {"type": "string"}
        }
      }
    },
    "body": {"type": ["string", "null"]},
    "path_params": {"type": ["object", "null"], "additionalProperties": {"type": "string"}},
    "query_params": {"type": ["object", "null"], "additionalProperties": {"type": "string"}}
  }
}`

var compiledRequestSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
})

// validateRequestJSON checks a request blob against the request schema.
func validateRequestJSON(data []byte) error {
	schema, err := compiledRequestSchema()
	if err != nil {
		return fmt.Errorf("failed to compile request schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to parse request: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("request does not match schema: %s", strings.Join(msgs, "; "))
}
