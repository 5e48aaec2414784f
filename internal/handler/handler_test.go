package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/registration"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/service"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakeEventStore struct {
	events map[string]*model.Event
}

func (f *fakeEventStore) Create(_ context.Context, req model.CreateEventRequest) (*model.Event, error) {
	e := &model.Event{ID: req.EventID, Title: req.Title, Status: req.Status, Capacity: req.Capacity}
	if e.ID == "" {
		e.ID = "evt-new"
	}
	if _, ok := f.events[e.ID]; ok {
		return nil, store.ErrConflictingID
	}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEventStore) List(_ context.Context, status string) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		if status == "" || e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventStore) Update(_ context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	return e, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeUserStore struct {
	users map[string]*model.User
}

func (f *fakeUserStore) Create(_ context.Context, req model.CreateUserRequest) (*model.User, error) {
	if _, ok := f.users[req.UserID]; ok {
		return nil, store.ErrConflictingID
	}
	u := &model.User{ID: req.UserID, Name: req.Name}
	if u.ID == "" {
		u.ID = "usr-new"
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	return u, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeRegStore struct{}

func (fakeRegStore) ListByEvent(context.Context, string, string) ([]model.Registration, error) {
	return nil, nil
}

func (fakeRegStore) ListByUser(context.Context, string) ([]model.Registration, error) {
	return nil, nil
}

type fakeRegistrar struct {
	outcome *model.RegistrationOutcome
	err     error
}

func (f *fakeRegistrar) Register(context.Context, string, string) (*model.RegistrationOutcome, error) {
	return f.outcome, f.err
}

func (f *fakeRegistrar) Unregister(context.Context, string, string) error {
	return f.err
}

func newTestRouter(registrar service.Registrar) (*chi.Mux, *fakeEventStore, *fakeUserStore) {
	events := &fakeEventStore{events: make(map[string]*model.Event)}
	users := &fakeUserStore{users: make(map[string]*model.User)}
	regs := fakeRegStore{}

	eventSvc := service.NewEventService(events, users, regs, registrar)
	userSvc := service.NewUserService(users, events, regs, registrar)
	eventHandler := NewEventHandler(eventSvc)
	userHandler := NewUserHandler(userSvc)

	r := chi.NewRouter()
	r.Get("/", Root)
	r.Get("/health", HealthCheck)
	r.Route("/events", func(r chi.Router) {
		r.Post("/", eventHandler.CreateEvent)
		r.Get("/", eventHandler.ListEvents)
		r.Get("/{id}", eventHandler.GetEvent)
		r.Put("/{id}", eventHandler.UpdateEvent)
		r.Delete("/{id}", eventHandler.DeleteEvent)
		r.Post("/{id}/registrations", eventHandler.Register)
		r.Get("/{id}/registrations", eventHandler.ListRegistrations)
		r.Delete("/{id}/registrations/{userId}", eventHandler.Unregister)
	})
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/{id}", userHandler.GetUser)
	})
	return r, events, users
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestHealthCheck(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoot(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Events API")
}

func TestCreateEvent_InvalidBody(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodPost, "/events", `{"title": 12}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEvent_ValidationFailure(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodPost, "/events", `{"title":"X"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEvent_Success(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	body := `{"title":"GopherCon","description":"conf","date":"2026-10-01",
		"location":"Denver","organizer":"Gophers","capacity":100}`
	rec := doRequest(t, r, http.MethodPost, "/events", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"eventId"`)
}

func TestCreateEvent_DuplicateID(t *testing.T) {
	r, events, _ := newTestRouter(&fakeRegistrar{})
	events.events["evt-1"] = &model.Event{ID: "evt-1", Title: "Taken"}

	body := `{"eventId":"evt-1","title":"GopherCon","description":"conf",
		"date":"2026-10-01","location":"Denver","organizer":"Gophers","capacity":100}`
	rec := doRequest(t, r, http.MethodPost, "/events", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Taken", events.events["evt-1"].Title, "existing event must be untouched")
}

func TestGetEvent_NotFound(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodGet, "/events/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "event not found")
}

func TestRegister_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"event missing", registration.ErrEventNotFound, http.StatusNotFound},
		{"user missing", registration.ErrUserNotFound, http.StatusNotFound},
		{"duplicate", &registration.DuplicateError{Status: model.StatusWaitlisted}, http.StatusConflict},
		{"full no waitlist", registration.ErrEventFull, http.StatusConflict},
		{"store down", fmt.Errorf("increment registrations: %w", store.ErrUnavailable), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _, _ := newTestRouter(&fakeRegistrar{err: tc.err})
			rec := doRequest(t, r, http.MethodPost, "/events/evt/registrations", `{"userId":"alice"}`)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRegister_StoreFaultHidesDetail(t *testing.T) {
	err := fmt.Errorf("increment registrations: connection refused: %w", store.ErrUnavailable)
	r, _, _ := newTestRouter(&fakeRegistrar{err: err})
	rec := doRequest(t, r, http.MethodPost, "/events/evt/registrations", `{"userId":"alice"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRegister_Waitlisted(t *testing.T) {
	pos := 2
	registrar := &fakeRegistrar{outcome: &model.RegistrationOutcome{
		Registration: model.Registration{
			EventID:  "evt",
			UserID:   "alice",
			Status:   model.StatusWaitlisted,
			Position: &pos,
		},
		Message: "Event is full. Added to waitlist at position 2",
	}}
	r, _, _ := newTestRouter(registrar)
	rec := doRequest(t, r, http.MethodPost, "/events/evt/registrations", `{"userId":"alice"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"position":2`)
	assert.Contains(t, rec.Body.String(), "waitlist")
}

func TestUnregister_StatusMapping(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{err: registration.ErrNotRegistered})
	rec := doRequest(t, r, http.MethodDelete, "/events/evt/registrations/alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	r, _, _ = newTestRouter(&fakeRegistrar{})
	rec = doRequest(t, r, http.MethodDelete, "/events/evt/registrations/alice", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateUser_Conflict(t *testing.T) {
	r, _, users := newTestRouter(&fakeRegistrar{})
	users.users["alice"] = &model.User{ID: "alice", Name: "Alice"}

	rec := doRequest(t, r, http.MethodPost, "/users", `{"userId":"alice","name":"Alice"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodGet, "/users/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestListEvents_EmptyArray(t *testing.T) {
	r, _, _ := newTestRouter(&fakeRegistrar{})
	rec := doRequest(t, r, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
