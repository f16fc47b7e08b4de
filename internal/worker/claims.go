package worker

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ppiankov/legalguard/internal/model"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const claimsSchemaURL = "https://legalguard.dev/schema/claims.json"

//go:embed schema/claims.schema.json
var claimsSchemaJSON string

// ErrInvalidClaimsFile is returned when a claims file does not match the claims schema
var ErrInvalidClaimsFile = errors.New("invalid claims file")

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func claimsSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(claimsSchemaURL, strings.NewReader(claimsSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add claims schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(claimsSchemaURL)
	})
	return schema, schemaErr
}

// ReadClaimsFile reads and validates a YAML or JSON claims file
func ReadClaimsFile(filePath string) ([]model.Claim, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return ReadClaims(data)
}

// ReadClaims parses a claims document: either a list of claims or a mapping
// with a "claims" list. The document is validated against the claims schema
// before decoding. Claims without an id are numbered "claim-N" (1-based).
func ReadClaims(data []byte) ([]model.Claim, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if err := validateClaims(raw); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	list := claimList(&doc)
	if list == nil {
		return []model.Claim{}, nil
	}

	var claims []model.Claim
	if err := list.Decode(&claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}

	for i := range claims {
		if claims[i].ID == "" {
			claims[i].ID = fmt.Sprintf("claim-%d", i+1)
		}
	}
	return claims, nil
}

// validateClaims checks a decoded document against the claims schema.
// The YAML value is round-tripped through JSON so the validator sees JSON types.
func validateClaims(raw interface{}) error {
	s, err := claimsSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidClaimsFile, err)
	}
	var v interface{}
	if err := json.Unmarshal(encoded, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidClaimsFile, err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidClaimsFile, err)
	}
	return nil
}

// claimList returns the sequence node holding the claims
func claimList(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		return root
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "claims" {
				return root.Content[i+1]
			}
		}
	}
	return nil
}
