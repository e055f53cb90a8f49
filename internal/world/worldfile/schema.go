package worldfile

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the generated world file schema.
const SchemaID = "https://github.com/louisbranch/biomemod/world.schema.json"

// Schema describes the world file format for editors and validators.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{AllowAdditionalProperties: false}
	schema := reflector.Reflect(new(Document))
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Biome world file"
	schema.Description = "Registries a biome modification pass runs against."
	return schema
}

// MarshalSchema renders Schema as indented JSON.
func MarshalSchema() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal world schema: %w", err)
	}
	return append(data, '\n'), nil
}
