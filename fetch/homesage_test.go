package fetch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"comp-valuation/config"
	"comp-valuation/utils"
)

func testConfig(infoURL, condURL string) *config.Config {
	return &config.Config{
		PropertyAPIURL:  infoURL,
		ConditionAPIURL: condURL,
		APIToken:        "test-token",
		MaxConcurrency:  2,
		RateLimitMs:     0,
		MaxRetries:      2,
	}
}

func propertyServer(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var calls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if r.Header.Get("Authorization") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		addr := r.URL.Query().Get("property_address")
		json.NewEncoder(w).Encode(map[string]any{"address": addr, "sold_1_price": 500000})
	})
	mux.HandleFunc("/condition", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"label": "updated"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetchAllAssemblesPayload(t *testing.T) {
	srv, _ := propertyServer(t)
	cfg := testConfig(srv.URL+"/info", srv.URL+"/condition")
	client := New(cfg, utils.NewLogger())

	payload, err := client.FetchAll([]PropertyRequest{
		{Address: "9021 Phoenix Ave", Type: "subject"},
		{Address: "101 First St", Type: "comp"},
		{Address: "202 Second St", Type: "comp"},
	})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if payload.Subject["address"] != "9021 Phoenix Ave" {
		t.Errorf("subject address = %v", payload.Subject["address"])
	}
	if len(payload.Comparables) != 2 {
		t.Fatalf("comparables = %d; want 2", len(payload.Comparables))
	}
	// Request order survives parallel fetch.
	if payload.Comparables[0]["address"] != "101 First St" {
		t.Errorf("comp[0] = %v; want 101 First St", payload.Comparables[0]["address"])
	}

	cond, ok := payload.Subject["property_condition"].(map[string]any)
	if !ok || cond["ok"] != true {
		t.Errorf("property_condition = %v; want merged ok payload", payload.Subject["property_condition"])
	}
}

func TestFetchAllDeduplicatesAddresses(t *testing.T) {
	srv, calls := propertyServer(t)
	cfg := testConfig(srv.URL+"/info", srv.URL+"/condition")
	client := New(cfg, utils.NewLogger())

	payload, err := client.FetchAll([]PropertyRequest{
		{Address: "9021 Phoenix Ave", Type: "subject"},
		{Address: "101 First St", Type: "comp"},
		{Address: "101 First St", Type: "comp"},
	})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if len(payload.Comparables) != 1 {
		t.Errorf("comparables = %d; want 1 after dedupe", len(payload.Comparables))
	}
	if got := atomic.LoadInt64(calls); got != 2 {
		t.Errorf("info calls = %d; want 2", got)
	}
}

func TestFetchAllRetriesFailures(t *testing.T) {
	var attempts int64
	mux := http.NewServeMux()
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"address": "retry me"})
	})
	mux.HandleFunc("/condition", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(srv.URL+"/info", srv.URL+"/condition")
	client := New(cfg, utils.NewLogger())
	client.retry.BaseDelay = 10 * time.Millisecond

	payload, err := client.FetchAll([]PropertyRequest{{Address: "9021 Phoenix Ave", Type: "subject"}})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if payload.Subject["address"] != "retry me" {
		t.Errorf("subject = %v; want retried payload", payload.Subject["address"])
	}
	if atomic.LoadInt64(&attempts) != 2 {
		t.Errorf("attempts = %d; want 2", attempts)
	}
}

func TestFetchAllNoSubject(t *testing.T) {
	srv, _ := propertyServer(t)
	cfg := testConfig(srv.URL+"/info", srv.URL+"/condition")
	client := New(cfg, utils.NewLogger())

	if _, err := client.FetchAll([]PropertyRequest{{Address: "101 First St", Type: "comp"}}); err == nil {
		t.Error("expected error when no subject is fetched")
	}
}

func TestLoadRequests(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.json")
	doc := `{"properties": [
		{"address": "9021 Phoenix Ave", "type": "subject"},
		{"address": "101 First St", "type": "comp"}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	reqs, err := LoadRequests(path)
	if err != nil {
		t.Fatalf("LoadRequests: %v", err)
	}
	if len(reqs) != 2 || reqs[0].Type != "subject" || reqs[1].Address != "101 First St" {
		t.Errorf("requests = %+v", reqs)
	}
}
