/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/Seednode/globetrotter/destinations"
	"github.com/julienschmidt/httprouter"
)

func newTestRouter(t *testing.T, cfg *Config, store *catalogStore) *httprouter.Router {
	t.Helper()

	if store == nil {
		var err error
		store, err = newCatalogStore(cfg)
		if err != nil {
			t.Fatalf("failed to load catalog: %v", err)
		}
	}

	return newRouter(cfg, store, destinations.NewSource(1), make(chan error, 64))
}

func storeWith(cfg *Config, catalog destinations.Catalog) *catalogStore {
	s := &catalogStore{cfg: cfg}
	s.current.Store(&catalog)

	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestRandomDestination(t *testing.T) {
	router := newTestRouter(t, &Config{}, nil)

	rec := get(t, router, "/api/destinations/random")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("got content type %q", ct)
	}

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, field := range []string{"city", "country", "clues", "fun_fact", "trivia", "options"} {
		if _, ok := body[field]; !ok {
			t.Errorf("response is missing %q", field)
		}
	}

	var result destinations.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}

	if len(result.Options) != destinations.OptionCount {
		t.Errorf("got %d options", len(result.Options))
	}
	if !slices.Contains(result.Options, result.Key()) {
		t.Errorf("options %v are missing %q", result.Options, result.Key())
	}
}

func TestRandomDestinationExclusion(t *testing.T) {
	cfg := &Config{}
	catalog := destinations.Catalog{
		{City: "Paris", Country: "France", Clues: []string{"a"}},
		{City: "London", Country: "UK", Clues: []string{"b"}},
		{City: "Rome", Country: "Italy", Clues: []string{"c"}},
		{City: "Berlin", Country: "Germany", Clues: []string{"d"}},
	}
	router := newTestRouter(t, cfg, storeWith(cfg, catalog))

	for i := 0; i < 100; i++ {
		rec := get(t, router, "/api/destinations/random?excludeCity=Paris&excludeCountry=France")
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d", rec.Code)
		}

		var result destinations.Result
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatal(err)
		}

		if result.City == "Paris" {
			t.Fatal("excluded destination returned")
		}
	}
}

func TestRandomDestinationFailure(t *testing.T) {
	cfg := &Config{}
	router := newTestRouter(t, cfg, storeWith(cfg, destinations.Catalog{}))

	rec := get(t, router, "/api/destinations/random")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body.Error != "Failed to load destinations" {
		t.Errorf("got error %q", body.Error)
	}
}

func TestNextDestinationFallback(t *testing.T) {
	catalog := destinations.Catalog{
		{City: "Paris", Country: "France", Clues: []string{"a"}},
	}

	// The lone entry is excluded, so the fallback retries without the
	// exclusion and fails on the distractors instead.
	_, err := nextDestination(catalog, destinations.Exclusion{City: "Paris", Country: "France"}, destinations.NewSource(1))
	if !errors.Is(err, destinations.ErrInsufficientDistinctDestinations) {
		t.Errorf("got error %v, want %v", err, destinations.ErrInsufficientDistinctDestinations)
	}
}

func TestCheckAnswer(t *testing.T) {
	router := newTestRouter(t, &Config{}, nil)

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantCorrect bool
	}{
		{"Correct", "/api/destinations/check?city=Tokyo&country=Japan&answer=Tokyo,+Japan", http.StatusOK, true},
		{"Incorrect", "/api/destinations/check?city=Tokyo&country=Japan&answer=Kyoto,+Japan", http.StatusOK, false},
		{"MissingAnswer", "/api/destinations/check?city=Tokyo&country=Japan", http.StatusBadRequest, false},
		{"Unknown", "/api/destinations/check?city=Atlantis&country=Nowhere&answer=x", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				var body errorBody
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
					t.Errorf("expected an error body, got %s", rec.Body.String())
				}

				return
			}

			var result destinations.GuessResult
			if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
				t.Fatal(err)
			}

			if result.Correct != tt.wantCorrect {
				t.Errorf("got correct=%t, want %t", result.Correct, tt.wantCorrect)
			}
			if result.Answer != "Tokyo, Japan" {
				t.Errorf("got answer %q", result.Answer)
			}
			if result.Fact == "" {
				t.Error("expected a fact")
			}
		})
	}
}

func TestRequestIDReused(t *testing.T) {
	router := newTestRouter(t, &Config{}, nil)

	const id = "2f1b7c54-6a0e-4c57-9d8e-0f5b1f0d9a11"

	req := httptest.NewRequest(http.MethodGet, "/api/destinations/random", nil)
	req.Header.Set("X-Request-ID", id)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != id {
		t.Errorf("got request id %q, want %q", got, id)
	}

	req.Header.Set("X-Request-ID", "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed request id was not replaced: %q", got)
	}
}
