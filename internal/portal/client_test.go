package portal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientPeriodsAndEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/periods":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"slug":"tran","name":"Nhà Trần"},{"id":2,"slug":"le","name":"Nhà Lê"}],"count":2}`))
		case "/api/events":
			if r.URL.Query().Get("period") != "le" {
				t.Errorf("unexpected period filter %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":11,"title":"Lê Lợi lên ngôi","year":"1428","period_id":2,"event_types":[{"id":1,"name":"Triều đại","color":"#b91c1c"}]}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)

	periods, err := c.Periods(context.Background())
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	if len(periods) != 2 || periods[1].Slug != "le" {
		t.Fatalf("unexpected periods %+v", periods)
	}

	events, err := c.Events(context.Background(), "le")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].PeriodID != 2 || len(events[0].EventTypes) != 1 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Failed to fetch events","message":"period not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Events(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "period not found" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}
