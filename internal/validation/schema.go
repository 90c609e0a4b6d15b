package validation

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/distributor_application.json
var applicationSchemaJSON []byte

var applicationSchema = mustSchema(applicationSchemaJSON)

func mustSchema(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// ApplicationDocument validates a raw distributor application payload against its JSON Schema.
// Errors are keyed by the JSON path of the offending field.
func ApplicationDocument(raw []byte) error {
	res, err := applicationSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Errors{"body": {"must be a valid JSON object"}}
	}
	if res.Valid() {
		return nil
	}
	errs := Errors{}
	for _, e := range res.Errors() {
		errs.Add(schemaField(e), e.Description())
	}
	return errs
}

const schemaRoot = "(root)"

func schemaField(e gojsonschema.ResultError) string {
	field := strings.TrimPrefix(e.Context().String(), schemaRoot)
	field = strings.TrimPrefix(field, ".")
	if e.Type() == "required" {
		if prop, ok := e.Details()["property"].(string); ok && field != prop && !strings.HasSuffix(field, "."+prop) {
			if field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == "" {
		return "body"
	}
	return field
}
