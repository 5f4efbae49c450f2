package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"suviet_server/config"
	"suviet_server/internal/clock"
	"suviet_server/internal/models"
	"suviet_server/internal/popup"
	"suviet_server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeSettings(values map[string]string) *fakeSettings {
	return &fakeSettings{values: values}
}

func (f *fakeSettings) List(ctx context.Context) ([]models.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Setting, 0, len(f.values))
	for k, v := range f.values {
		out = append(out, models.Setting{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeSettings) Get(ctx context.Context, key string) (models.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return models.Setting{}, services.ErrSettingNotFound
	}
	return models.Setting{Key: key, Value: v}, nil
}

func (f *fakeSettings) Upsert(ctx context.Context, key, value string) (models.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func (f *fakeSettings) PopupSettings(ctx context.Context, defaultCooldown float64) (popup.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return popup.ParseSettings(f.values, defaultCooldown), nil
}

func (f *fakeSettings) remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
}

type fakeTimeline struct {
	periods []models.Period
	events  []models.Event
	types   []models.EventType
}

func (f *fakeTimeline) ListPeriods(ctx context.Context) ([]models.Period, error) {
	return f.periods, nil
}

func (f *fakeTimeline) GetPeriod(ctx context.Context, slug string) (models.Period, error) {
	for _, p := range f.periods {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Period{}, services.ErrPeriodNotFound
}

func (f *fakeTimeline) CreatePeriod(ctx context.Context, in services.PeriodInput) (models.Period, error) {
	if !models.ValidSlug(in.Slug) {
		return models.Period{}, services.ErrInvalidSlug
	}
	if _, err := f.GetPeriod(ctx, in.Slug); err == nil {
		return models.Period{}, services.ErrPeriodExists
	}
	p := models.Period{ID: uint(len(f.periods) + 1), Slug: in.Slug, Name: in.Name, Position: in.Position}
	f.periods = append(f.periods, p)
	return p, nil
}

func (f *fakeTimeline) UpdatePeriod(ctx context.Context, slug string, in services.PeriodInput) (models.Period, error) {
	for i, p := range f.periods {
		if p.Slug == slug {
			f.periods[i].Name = in.Name
			return f.periods[i], nil
		}
	}
	return models.Period{}, services.ErrPeriodNotFound
}

func (f *fakeTimeline) DeletePeriod(ctx context.Context, slug string) error {
	for i, p := range f.periods {
		if p.Slug == slug {
			f.periods = append(f.periods[:i], f.periods[i+1:]...)
			return nil
		}
	}
	return services.ErrPeriodNotFound
}

func (f *fakeTimeline) ListEvents(ctx context.Context, periodSlug string) ([]models.Event, error) {
	if periodSlug == "" {
		return f.events, nil
	}
	p, err := f.GetPeriod(ctx, periodSlug)
	if err != nil {
		return nil, err
	}
	var out []models.Event
	for _, e := range f.events {
		if e.PeriodID == p.ID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimeline) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, services.ErrEventNotFound
}

func (f *fakeTimeline) CreateEvent(ctx context.Context, in services.EventInput) (models.Event, error) {
	e := models.Event{ID: uint(len(f.events) + 100), Title: in.Title, Year: in.Year, PeriodID: in.PeriodID}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeTimeline) DeleteEvent(ctx context.Context, id uint) error {
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return services.ErrEventNotFound
}

func (f *fakeTimeline) ListEventTypes(ctx context.Context) ([]models.EventType, error) {
	return f.types, nil
}

func (f *fakeTimeline) CreateEventType(ctx context.Context, in services.EventTypeInput) (models.EventType, error) {
	et := models.EventType{ID: uint(len(f.types) + 1), Name: in.Name, Color: in.Color}
	f.types = append(f.types, et)
	return et, nil
}

func popupValues() map[string]string {
	return map[string]string{
		popup.KeyEnabled:      "true",
		popup.KeyNotification: "Triển lãm mới về thời Trần",
		popup.KeyTitle:        "Thông báo",
		popup.KeyDuration:     "12",
	}
}

func sampleTimeline() *fakeTimeline {
	return &fakeTimeline{
		periods: []models.Period{
			{ID: 1, Slug: "ly", Name: "Nhà Lý", Position: 1},
			{ID: 2, Slug: "tran", Name: "Nhà Trần", Position: 2},
			{ID: 3, Slug: "le", Name: "Nhà Hậu Lê", Position: 3},
		},
		events: []models.Event{
			{ID: 10, Title: "Dời đô về Thăng Long", Year: "1010", PeriodID: 1},
			{ID: 11, Title: "Trận Bạch Đằng", Year: "1288", PeriodID: 2},
			{ID: 12, Title: "Hịch tướng sĩ", Year: "1284", PeriodID: 2},
			{ID: 13, Title: "Mồ côi", Year: "?", PeriodID: 99},
		},
	}
}

func newTestRouter(settings *fakeSettings, tl *fakeTimeline, hub *WebSocketHub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(&config.ServerConfig{Port: "0", AllowedOrigins: []string{"https://admin.suviet.vn"}}, Dependencies{
		Settings:             settings,
		Timeline:             tl,
		Hub:                  hub,
		DefaultCooldownHours: popup.DefaultCooldownHours,
		HeaderOffset:         80,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	router := newTestRouter(newFakeSettings(popupValues()), sampleTimeline(), nil)
	w := do(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestGetSettingValue(t *testing.T) {
	router := newTestRouter(newFakeSettings(popupValues()), sampleTimeline(), nil)

	w := do(t, router, http.MethodGet, "/api/settings/popup_duration", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decode(t, w)["value"]; got != "12" {
		t.Fatalf("expected value 12, got %v", got)
	}

	w = do(t, router, http.MethodGet, "/api/settings/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if decode(t, w)["success"] != false {
		t.Fatalf("expected failure envelope, got %s", w.Body.String())
	}
}

func TestUpdateSettingRequiresValue(t *testing.T) {
	settings := newFakeSettings(popupValues())
	router := newTestRouter(settings, sampleTimeline(), nil)

	w := do(t, router, http.MethodPut, "/api/settings/popup_title", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// An empty string is a legitimate value.
	w = do(t, router, http.MethodPut, "/api/settings/popup_notification", `{"value":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = do(t, router, http.MethodGet, "/api/popup", "")
	body := decode(t, w)
	if body["showable"] != false {
		t.Fatalf("popup without content must not be showable: %s", w.Body.String())
	}
}

func TestPopupEndpointParsesCooldown(t *testing.T) {
	values := popupValues()
	values[popup.KeyDuration] = "abc"
	router := newTestRouter(newFakeSettings(values), sampleTimeline(), nil)

	w := do(t, router, http.MethodGet, "/api/popup", "")
	var body struct {
		Success  bool           `json:"success"`
		Data     popup.Settings `json:"data"`
		Showable bool           `json:"showable"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || !body.Showable || body.Data.CooldownHours != popup.DefaultCooldownHours {
		t.Fatalf("unexpected popup response %s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(newFakeSettings(popupValues()), sampleTimeline(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/settings/popup_title", nil)
	req.Header.Set("Origin", "https://admin.suviet.vn")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.suviet.vn" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PUT") {
		t.Fatalf("PUT must be allowed: %q", w.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestTimelineEndpoint(t *testing.T) {
	router := newTestRouter(newFakeSettings(popupValues()), sampleTimeline(), nil)

	w := do(t, router, http.MethodGet, "/api/timeline?period=tran", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data struct {
			State        string         `json:"state"`
			ActivePeriod models.Period  `json:"active_period"`
			Events       []models.Event `json:"events"`
			HasPrevious  bool           `json:"has_previous"`
			HasNext      bool           `json:"has_next"`
			Anchor       string         `json:"anchor"`
			Groups       []struct {
				Period models.Period `json:"period"`
			} `json:"groups"`
		} `json:"data"`
		HeaderOffset int `json:"header_offset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d := body.Data
	if d.State != "ready" || d.ActivePeriod.Slug != "tran" || len(d.Events) != 2 {
		t.Fatalf("unexpected snapshot %s", w.Body.String())
	}
	if !d.HasPrevious || !d.HasNext || d.Anchor != "period-tran" || body.HeaderOffset != 80 {
		t.Fatalf("unexpected navigation %s", w.Body.String())
	}
	if len(d.Groups) != 3 {
		t.Fatalf("expected one group per period, got %d", len(d.Groups))
	}

	// Unknown slug falls back to the first period.
	w = do(t, router, http.MethodGet, "/api/timeline?period=unknown", "")
	if !strings.Contains(w.Body.String(), `"slug":"ly"`) {
		t.Fatalf("expected fallback to first period: %s", w.Body.String())
	}
}

func TestTimelineEndpointEmpty(t *testing.T) {
	router := newTestRouter(newFakeSettings(popupValues()), &fakeTimeline{}, nil)

	w := do(t, router, http.MethodGet, "/api/timeline", "")
	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	if data["state"] != "empty" || data["active_period"] != nil {
		t.Fatalf("unexpected empty snapshot %s", w.Body.String())
	}
}

func TestPeriodErrors(t *testing.T) {
	router := newTestRouter(newFakeSettings(popupValues()), sampleTimeline(), nil)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/api/periods", `{"slug":"Nhà Trần","name":"x"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/periods", `{"slug":"tran","name":"x"}`, http.StatusConflict},
		{http.MethodPost, "/api/periods", `{"name":"x"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/periods", `{"slug":"tay-son","name":"Nhà Tây Sơn"}`, http.StatusCreated},
		{http.MethodGet, "/api/periods/nope", "", http.StatusNotFound},
		{http.MethodDelete, "/api/periods/le", "", http.StatusOK},
		{http.MethodGet, "/api/events/abc", "", http.StatusBadRequest},
		{http.MethodGet, "/api/events/999", "", http.StatusNotFound},
		{http.MethodGet, "/api/events?period=tran", "", http.StatusOK},
	}
	for _, tc := range cases {
		w := do(t, router, tc.method, tc.path, tc.body)
		if w.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d: %s", tc.method, tc.path, tc.want, w.Code, w.Body.String())
		}
	}
}

// inlineScheduler fires callbacks immediately.
type inlineScheduler struct{}

func (inlineScheduler) AfterFunc(d time.Duration, f func()) { f() }

func TestGateAgainstSettingsAPI(t *testing.T) {
	settings := newFakeSettings(popupValues())
	srv := httptest.NewServer(newTestRouter(settings, sampleTimeline(), nil))
	defer srv.Close()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := popup.NewMemoryStore()
	if err := popup.RecordDismissal(store, now.Add(-13*time.Hour)); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	newGate := func() *popup.Gate {
		return popup.NewGate(
			popup.NewHTTPFetcher(srv.URL, srv.Client(), popup.DefaultCooldownHours),
			store,
			popup.WithClock(clock.NewManual(now)),
			popup.WithScheduler(inlineScheduler{}))
	}

	// 13h since dismissal with a 12h cooldown.
	g := newGate()
	if got := g.Resolve(context.Background()); got != popup.StateVisible {
		t.Fatalf("expected visible, got %s", got)
	}
	if g.Settings().Title != "Thông báo" || g.Settings().CooldownHours != 12 {
		t.Fatalf("unexpected settings %+v", g.Settings())
	}

	settings.remove(popup.KeyTitle)
	if got := newGate().Resolve(context.Background()); got != popup.StateSuppressed {
		t.Fatalf("a missing setting must suppress, got %s", got)
	}
}

func TestSettingUpdateBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewWebSocketHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(newTestRouter(newFakeSettings(popupValues()), sampleTimeline(), hub))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/settings/popup_enabled", strings.NewReader(`{"value":"false"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type      string        `json:"type"`
		Timestamp string        `json:"timestamp"`
		Data      SettingUpdate `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "setting_update" || msg.Data.Key != popup.KeyEnabled || msg.Data.Value != "false" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if _, err := time.Parse(time.RFC3339, msg.Timestamp); err != nil {
		t.Fatalf("timestamp %q is not RFC3339: %v", msg.Timestamp, err)
	}
}
