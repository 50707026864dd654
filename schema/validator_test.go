package payloadschema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateHistoryImportPayload_Valid(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"entries":[
			{"movie_id":27205,"title":"Inception","rating":9.5,"watched_at":"2026-02-13T14:00:00Z"},
			{"movie_id":155,"rating":8},
			{"movie_id":603}
		]
	}`)

	imported, err := ValidateHistoryImportPayload(payload)
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}

	if imported.PayloadVersion != "v1" {
		t.Fatalf("expected payload_version=v1, got %q", imported.PayloadVersion)
	}
	if len(imported.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(imported.Entries))
	}
	if imported.Entries[0].MovieID != 27205 {
		t.Fatalf("expected movie_id=27205, got %d", imported.Entries[0].MovieID)
	}
	if imported.Entries[0].Rating == nil || *imported.Entries[0].Rating != 9.5 {
		t.Fatalf("expected rating=9.5, got %v", imported.Entries[0].Rating)
	}
	if imported.Entries[2].Rating != nil {
		t.Fatalf("expected no rating on third entry, got %v", *imported.Entries[2].Rating)
	}
}

func TestValidateHistoryImportPayload_MissingMovieID(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"entries":[{"title":"Inception"}]
	}`)

	_, err := ValidateHistoryImportPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for missing movie_id")
	}
}

func TestValidateHistoryImportPayload_RatingOutOfRange(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"entries":[{"movie_id":603,"rating":11}]
	}`)

	_, err := ValidateHistoryImportPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for rating above 10")
	}
}

func TestValidateHistoryImportPayload_DuplicateMovieID(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"entries":[{"movie_id":603},{"movie_id":603}]
	}`)

	_, err := ValidateHistoryImportPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for duplicated movie_id")
	}
	if !strings.Contains(err.Error(), "duplicated") {
		t.Fatalf("expected duplicate semantic error, got: %v", err)
	}
}

func TestValidateHistoryImportPayload_BadWatchedAt(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"entries":[{"movie_id":603,"watched_at":"yesterday"}]
	}`)

	_, err := ValidateHistoryImportPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for non-RFC3339 watched_at")
	}
}

func TestValidateHistoryImportPayload_WrongVersion(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v2",
		"entries":[{"movie_id":603}]
	}`)

	_, err := ValidateHistoryImportPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for unknown payload_version")
	}
}

func TestValidateHistoryImportPayload_TrailingContent(t *testing.T) {
	payload := json.RawMessage(`{"payload_version":"v1","entries":[{"movie_id":603}]} {}`)

	_, err := ValidateHistoryImportPayload(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for trailing content")
	}
	if !strings.Contains(err.Error(), "trailing content") {
		t.Fatalf("expected trailing content error, got: %v", err)
	}
}
