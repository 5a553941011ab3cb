// Package schemas provides JSON Schema validation for wire payloads: the
// incoming match profile and the structured responses expected from the
// advisory model. Schemas are embedded so validation never depends on the
// working directory.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed profile.schema.json
	profileSchema string

	//go:embed rerank_response.schema.json
	rerankResponseSchema string

	//go:embed explain_response.schema.json
	explainResponseSchema string
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateProfile checks a raw match profile document before unmarshalling.
// It catches wrong-typed fields and out-of-range sliders with field paths
// a client can act on.
func ValidateProfile(jsonContent string) error {
	return validateAgainst("profile", profileSchema, jsonContent)
}

// ValidateRerankResponse checks an advisory re-ranking response document.
func ValidateRerankResponse(jsonContent string) error {
	return validateAgainst("rerank_response", rerankResponseSchema, jsonContent)
}

// ValidateExplainResponse checks an advisory commentary response document.
func ValidateExplainResponse(jsonContent string) error {
	return validateAgainst("explain_response", explainResponseSchema, jsonContent)
}

func validateAgainst(name, schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    name,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
