package autofill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHTTPLookupRequestContract(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fields":{"title":"T","year":2021,"open":true,"authors":["a","b"],"empty":null}}`))
	}))
	defer server.Close()

	lookup := NewHTTPLookup(NewOptions(WithEndpoint(server.URL), WithHTTPClient(server.Client())))
	fields, err := lookup.Lookup(context.Background(), " 10.1/x ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if diff := cmp.Diff(map[string]string{"doi": "10.1/x"}, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
	want := map[string]string{
		"title":   "T",
		"year":    "2021",
		"open":    "true",
		"authors": `["a","b"]`,
		"empty":   "",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPLookupEmptyIdentifier(t *testing.T) {
	lookup := NewHTTPLookup(DefaultOptions())
	if _, err := lookup.Lookup(context.Background(), ""); !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}
}

func TestHTTPLookupUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	lookup := NewHTTPLookup(NewOptions(WithEndpoint(url)))
	_, err := lookup.Lookup(context.Background(), "x")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected LookupError, got %T %v", err, err)
	}
	if lookupErr.StatusCode() != http.StatusBadGateway {
		t.Fatalf("status code = %d", lookupErr.StatusCode())
	}
	if got := failureStatus(err); got.Text != MessageFailed || got.Tone != ToneError {
		t.Fatalf("unexpected failure status %#v", got)
	}
}

func TestHandlerRejectsNonPost(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(nil, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doi_lookup", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("code = %d", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("allow header = %q", rec.Header().Get("Allow"))
	}
}

func TestHandlerErrorBodies(t *testing.T) {
	handler := Handler(Records{"10.1/x": {"title": "T"}}, "")
	cases := map[string]struct {
		body string
		code int
		want lookupResponse
	}{
		"missing identifier": {body: `{"doi": "  "}`, code: http.StatusBadRequest, want: lookupResponse{Error: MessageNoIdentifier}},
		"unknown identifier": {body: `{"doi": "10.1/y"}`, code: http.StatusNotFound, want: lookupResponse{Error: MessageNotFound}},
		"hit":                {body: `{"doi": "10.1/x"}`, code: http.StatusOK, want: lookupResponse{Fields: map[string]any{"title": "T"}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/doi_lookup", strings.NewReader(tc.body)))
			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d", rec.Code, tc.code)
			}
			var got lookupResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewOptionsFillsBlanks(t *testing.T) {
	opts := NewOptions(WithElements("", "go", ""), WithEndpoint(" "), WithTimeout(-1))
	if opts.InputID != DefaultInputID || opts.ButtonID != "go" || opts.StatusID != DefaultStatusID {
		t.Fatalf("unexpected ids %#v", opts)
	}
	if opts.Endpoint != DefaultEndpoint || opts.Timeout != DefaultTimeout {
		t.Fatalf("unexpected defaults %#v", opts)
	}
}
