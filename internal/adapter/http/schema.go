package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rootContext is how gojsonschema names the document root in error paths.
const rootContext = "(root)"

// errMalformedBody is returned when the body is empty or not JSON.
var errMalformedBody = errors.New("malformed request body")

const passengerDefinition = `{
	"type": "object",
	"required": ["id", "name", "reservationId", "flightCategory"],
	"properties": {
		"id": {"type": "integer", "not": {"enum": [0]}},
		"name": {"type": "string", "minLength": 1},
		"age": {"type": "integer", "minimum": 0},
		"hasConnections": {"type": "boolean"},
		"hasCheckedBaggage": {"type": "boolean"},
		"reservationId": {"type": "string", "minLength": 1},
		"flightCategory": {"type": "string", "enum": ["Black", "Platinum", "Gold", "Normal"]}
	}
}`

var (
	createFlightSchema = mustSchema(`{
		"type": "object",
		"required": ["flightCode", "passengers"],
		"properties": {
			"flightCode": {"type": "string", "minLength": 1},
			"passengers": {"type": "array", "items": {"$ref": "#/definitions/passenger"}}
		},
		"definitions": {"passenger": ` + passengerDefinition + `}
	}`)

	updateFlightSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"flightCode": {"type": "string", "minLength": 1},
			"passengers": {"type": "array", "items": {"$ref": "#/definitions/passenger"}}
		},
		"definitions": {"passenger": ` + passengerDefinition + `}
	}`)

	addPassengerSchema = mustSchema(passengerDefinition)

	updatePassengerSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"id": {"type": "integer", "not": {"enum": [0]}},
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0},
			"hasConnections": {"type": "boolean"},
			"hasCheckedBaggage": {"type": "boolean"},
			"reservationId": {"type": "string", "minLength": 1},
			"flightCategory": {"type": "string", "enum": ["Black", "Platinum", "Gold", "Normal"]}
		}
	}`)
)

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return schema
}

// validateBody checks body against schema. It returns errMalformedBody for
// bodies that are not JSON and *ValidationErrors for shape violations.
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errMalformedBody
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errMalformedBody
	}
	if result.Valid() {
		return nil
	}

	errs := &ValidationErrors{}
	for _, re := range result.Errors() {
		field := schemaField(re)
		errs.Add(field, re.Description())
	}
	return errs
}

// schemaField names the offending field in the request's own terms: nested
// paths use dots ("passengers.0.flightCategory") and a missing property is
// reported under its own name rather than its parent.
func schemaField(re gojsonschema.ResultError) string {
	field := re.Field()
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			if field == rootContext {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == rootContext {
		return "body"
	}
	return strings.TrimPrefix(field, rootContext+".")
}

// maxExactInteger is the largest magnitude a float64 represents without gaps.
const maxExactInteger = 1 << 53

// decodeValidated unmarshals a body that already passed validateBody.
// The schema's "integer" type accepts integral numbers written as 30.0 or
// 3e1; they are rewritten to integer literals so they decode into int
// fields. A number that still does not fit its field is reported under
// that field.
func decodeValidated(body []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return errMalformedBody
	}
	normalized, err := json.Marshal(integralNumbers(doc))
	if err != nil {
		return errMalformedBody
	}

	if err := json.Unmarshal(normalized, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			errs := &ValidationErrors{}
			errs.Add(typeErr.Field, fmt.Sprintf("%s does not fit in %s", typeErr.Value, typeErr.Type))
			return errs
		}
		return errMalformedBody
	}
	return nil
}

// integralNumbers walks a document decoded with UseNumber and rewrites
// every whole number with a fractional or exponent form to plain digits.
func integralNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = integralNumbers(e)
		}
	case []interface{}:
		for i, e := range t {
			t[i] = integralNumbers(e)
		}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactInteger {
			return t
		}
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return v
}
