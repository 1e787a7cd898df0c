package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type recentBody struct {
	Items []string `json:"items"`
}

func postRecent(t *testing.T, url, body string) (*http.Response, recentBody) {
	t.Helper()
	resp, err := http.Post(url+"/api/recent", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/recent: %v", err)
	}
	defer resp.Body.Close()
	var rb recentBody
	json.NewDecoder(resp.Body).Decode(&rb)
	return resp, rb
}

func TestGetRecentEmpty(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/recent")
	if err != nil {
		t.Fatalf("GET /api/recent: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var raw map[string]json.RawMessage
	json.NewDecoder(resp.Body).Decode(&raw)
	if string(raw["items"]) != "[]" {
		t.Fatalf("expected empty items array, got %s", raw["items"])
	}
}

func TestPromoteRecentAndGet(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	for _, item := range []string{"a", "b", "c"} {
		resp, _ := postRecent(t, srv.URL, `{"item":"`+item+`"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}
	_, rb := postRecent(t, srv.URL, `{"item":"b"}`)
	want := []string{"b", "c", "a"}
	if strings.Join(rb.Items, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, rb.Items)
	}

	resp, err := http.Get(srv.URL + "/api/recent")
	if err != nil {
		t.Fatalf("GET /api/recent: %v", err)
	}
	defer resp.Body.Close()
	var got recentBody
	json.NewDecoder(resp.Body).Decode(&got)
	if strings.Join(got.Items, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got.Items)
	}
}

func TestPromoteRecentEmptyItemIsNoop(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	postRecent(t, srv.URL, `{"item":"a"}`)
	resp, rb := postRecent(t, srv.URL, `{"item":""}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(rb.Items) != 1 || rb.Items[0] != "a" {
		t.Fatalf("expected [a], got %v", rb.Items)
	}
}

func TestPromoteRecentBadJSON(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, _ := postRecent(t, srv.URL, "not-json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestClearRecent(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	postRecent(t, srv.URL, `{"item":"a"}`)
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/recent", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/api/recent")
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	var got recentBody
	json.NewDecoder(getResp.Body).Decode(&got)
	if len(got.Items) != 0 {
		t.Fatalf("expected empty list after clear, got %v", got.Items)
	}
}

type downBackend struct{}

func (downBackend) Get(context.Context, string) ([]string, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (downBackend) Set(context.Context, string, []string) error {
	return errors.New("connection refused")
}

func TestRecentStorageFailure503(t *testing.T) {
	srv := newTestServerWith(t, newTestManager(t, downBackend{}, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/recent")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("GET: expected 503, got %d", resp.StatusCode)
	}

	postResp, _ := postRecent(t, srv.URL, `{"item":"a"}`)
	if postResp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("POST: expected 503, got %d", postResp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/recent", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("DELETE: expected 503, got %d", delResp.StatusCode)
	}
}

func TestPromoteEmptyItemWithStorageDown(t *testing.T) {
	srv := newTestServerWith(t, newTestManager(t, downBackend{}, nil))
	defer srv.Close()

	resp, rb := postRecent(t, srv.URL, `{"item":""}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for empty item, got %d", resp.StatusCode)
	}
	if len(rb.Items) != 0 {
		t.Fatalf("expected empty items, got %v", rb.Items)
	}
}
