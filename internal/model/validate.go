package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/portfolio.schema.json
var portfolioSchema []byte

// ErrInvalidDocument is returned for documents that are not valid JSON or
// do not match the portfolio schema.
var ErrInvalidDocument = errors.New("invalid portfolio document")

// ErrMalformedDocument marks documents that are not JSON at all. It is
// always wrapped together with ErrInvalidDocument.
var ErrMalformedDocument = errors.New("malformed JSON")

var schema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(portfolioSchema))
	if err != nil {
		panic("portfolio schema: " + err.Error())
	}
	return s
}

// ValidateMap validates a generic map against the portfolio schema.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

// ValidateJSON validates raw JSON against the portfolio schema.
func ValidateJSON(doc []byte) error {
	if !json.Valid(doc) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMalformedDocument)
	}
	return validate(gojsonschema.NewBytesLoader(doc))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: schema validation failed: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// ParsePortfolio validates doc against the schema and decodes it.
func ParsePortfolio(doc []byte) (*PortfolioDocument, error) {
	if err := ValidateJSON(doc); err != nil {
		return nil, err
	}
	var out PortfolioDocument
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &out, nil
}
