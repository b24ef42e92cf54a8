package profile

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var schemaJSON []byte

// SchemaError lists every shape violation found in a profile document.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() (msg string) {
	msg = "profile does not match schema: " + strings.Join(e.Fields, "; ")
	return msg
}

// validateSchema checks the JSON document against the embedded profile schema.
func validateSchema(doc []byte) (err error) {
	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		err = errors.Wrap(err, "failed to run profile schema validation")
		return err
	}

	if result.Valid() {
		return err
	}

	fields := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		fields = append(fields, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}
	err = &SchemaError{Fields: fields}
	return err
}
