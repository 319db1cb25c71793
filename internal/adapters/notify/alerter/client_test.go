package alerter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"whoofsy-server/internal/ports/notify"
)

func fptr(v float64) *float64 { return &v }

func TestSendScanAlert_StubWithoutUpstream(t *testing.T) {
	c, err := NewClient(Config{}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.IsConfigured() {
		t.Fatalf("client without BaseURL must not be configured")
	}

	// Modo stub: sin upstream la entrega "pasa" sin tocar la red.
	if err := c.SendScanAlert(context.Background(), notify.ScanAlert{Code: "TAG1"}); err != nil {
		t.Fatalf("stub mode must succeed, got %v", err)
	}
}

func TestSendScanAlert_PostsPayloadWithAPIKey(t *testing.T) {
	var got struct {
		path   string
		apiKey string
		body   map[string]any
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.apiKey = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if !c.IsConfigured() {
		t.Fatalf("client with BaseURL must be configured")
	}

	a := notify.ScanAlert{
		Code:     "TAG1",
		OwnerID:  "u1",
		PetID:    "p1",
		Lat:      fptr(10.5),
		Lng:      fptr(20.1),
		Accuracy: fptr(5.0),
	}
	if err := c.SendScanAlert(context.Background(), a); err != nil {
		t.Fatalf("send: %v", err)
	}

	if got.path != "/v1/alerts" {
		t.Fatalf("expected POST /v1/alerts, got %s", got.path)
	}
	if got.apiKey != "secret" {
		t.Fatalf("expected api key header, got %q", got.apiKey)
	}
	if got.body["type"] != "scan_alert" || got.body["channel"] != "email" {
		t.Fatalf("unexpected payload: %v", got.body)
	}
	if got.body["code"] != "TAG1" || got.body["owner_id"] != "u1" || got.body["pet_id"] != "p1" {
		t.Fatalf("unexpected ids in payload: %v", got.body)
	}
	gps, _ := got.body["gps"].(map[string]any)
	if gps == nil || gps["lat"] != 10.5 || gps["lng"] != 20.1 || gps["accuracy"] != 5.0 {
		t.Fatalf("unexpected gps in payload: %v", got.body)
	}
}

func TestSendScanAlert_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = c.SendScanAlert(context.Background(), notify.ScanAlert{Code: "TAG1"})
	if !errors.Is(err, ErrAlerterUpstream) {
		t.Fatalf("expected ErrAlerterUpstream, got %v", err)
	}
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "not a url"}, nil); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
