package common

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCollapseName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Amy Poole", "amypoole"},
		{"  amy   POOLE  ", "amypoole"},
		{"Amy\tPoole", "amypoole"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CollapseName(c.in); got != c.want {
			t.Errorf("CollapseName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestReverseNameTokens(t *testing.T) {
	if got := ReverseNameTokens("Amy Poole"); got != "Poole Amy" {
		t.Errorf("Expected swapped tokens, got %q", got)
	}
	if got := ReverseNameTokens("Amy Jane Poole"); got != "Poole Jane Amy" {
		t.Errorf("Expected only outer tokens swapped, got %q", got)
	}
	if got := ReverseNameTokens("Mononym"); got != "Mononym" {
		t.Errorf("Expected single token unchanged, got %q", got)
	}
}

func TestRespondSnapshot_ETagAndNotModified(t *testing.T) {
	entry := ReportEntry{
		Body:   []byte(`{"total":1}`),
		ETag:   ETagFor([]byte(`{"total":1}`)),
		Expiry: time.Now().Add(time.Minute),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	rec := httptest.NewRecorder()
	RespondSnapshot(rec, req, entry)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("ETag"); got != entry.ETag {
		t.Errorf("Expected ETag header %q, got %q", entry.ETag, got)
	}
	if rec.Body.String() != `{"total":1}` {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	req.Header.Set("If-None-Match", entry.ETag)
	rec = httptest.NewRecorder()
	RespondSnapshot(rec, req, entry)

	if rec.Code != http.StatusNotModified {
		t.Errorf("Expected 304 for a matching If-None-Match, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("Expected empty body on 304, got %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	req.Header.Set("If-None-Match", `"deadbeef"`)
	rec = httptest.NewRecorder()
	RespondSnapshot(rec, req, entry)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for a stale If-None-Match, got %d", rec.Code)
	}
}
