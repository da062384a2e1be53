package opencli

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// EncodeJSON serializes a document as indented JSON. Empty sequence fields
// and absent optional fields are omitted.
func EncodeJSON(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// EncodeYAML serializes a document as YAML under the same omission rules as
// EncodeJSON.
func EncodeYAML(d *Document) ([]byte, error) {
	return yaml.Marshal(d)
}
