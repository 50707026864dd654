package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed history_import.schema.json
var historyImportSchemaJSON string

type HistoryImport struct {
	PayloadVersion string               `json:"payload_version"`
	Entries        []HistoryImportEntry `json:"entries"`
}

type HistoryImportEntry struct {
	MovieID   int64    `json:"movie_id"`
	Title     *string  `json:"title,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	WatchedAt *string  `json:"watched_at,omitempty"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

func ValidateHistoryImportPayload(payload json.RawMessage) (*HistoryImport, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize payload JSON: %w", err)
	}

	var imported HistoryImport
	if err := json.Unmarshal(normalized, &imported); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := validateSemantics(&imported); err != nil {
		return nil, err
	}

	return &imported, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource("history_import.schema.json", strings.NewReader(historyImportSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("history_import.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}

func validateSemantics(imported *HistoryImport) error {
	if imported == nil {
		return fmt.Errorf("payload is nil")
	}

	if strings.TrimSpace(imported.PayloadVersion) != "v1" {
		return fmt.Errorf("payload_version must be v1")
	}
	if len(imported.Entries) == 0 {
		return fmt.Errorf("entries must not be empty")
	}

	seen := make(map[int64]struct{}, len(imported.Entries))
	for i, entry := range imported.Entries {
		if entry.MovieID <= 0 {
			return fmt.Errorf("entries[%d].movie_id must be positive", i)
		}
		if _, ok := seen[entry.MovieID]; ok {
			return fmt.Errorf("entries[%d].movie_id %d is duplicated", i, entry.MovieID)
		}
		seen[entry.MovieID] = struct{}{}

		if entry.Title != nil && strings.TrimSpace(*entry.Title) == "" {
			return fmt.Errorf("entries[%d].title must not be empty", i)
		}
		if entry.Rating != nil && (*entry.Rating < 0 || *entry.Rating > 10) {
			return fmt.Errorf("entries[%d].rating must be between 0 and 10", i)
		}
		if entry.WatchedAt != nil {
			if _, err := time.Parse(time.RFC3339, strings.TrimSpace(*entry.WatchedAt)); err != nil {
				return fmt.Errorf("entries[%d].watched_at must be RFC3339: %w", i, err)
			}
		}
	}

	return nil
}
