package server

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
)

// Property names that carry detection boxes in tool inputs.
const (
	boxesProperty = "boxes"
	boxProperty   = "box"
)

// inputSchema infers the JSON schema of a tool input struct, then widens
// every box property so a box may be sent as an object or as the detector's
// [top, left, bottom, right] tuple. The inferred schema only knows the
// object form, and the SDK validates arguments before they are decoded.
func inputSchema[In any]() *jsonschema.Schema {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		panic(fmt.Sprintf("inferring input schema: %v", err))
	}

	if prop, ok := schema.Properties[boxesProperty]; ok {
		prop.Items = boxSchema("")
	}
	if prop, ok := schema.Properties[boxProperty]; ok {
		schema.Properties[boxProperty] = boxSchema(prop.Description)
	}
	return schema
}

// boxSchema accepts either encoding distancing.BoundingBox decodes.
func boxSchema(description string) *jsonschema.Schema {
	object, err := jsonschema.For[distancing.BoundingBox](nil)
	if err != nil {
		panic(fmt.Sprintf("inferring box schema: %v", err))
	}

	four := 4
	tuple := &jsonschema.Schema{
		Type:        "array",
		Description: "[top, left, bottom, right] in pixels",
		Items:       &jsonschema.Schema{Type: "number"},
		MinItems:    &four,
		MaxItems:    &four,
	}

	return &jsonschema.Schema{
		Description: description,
		OneOf:       []*jsonschema.Schema{object, tuple},
	}
}
