package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shiftline/staff-scheduler/internal/api/middleware"
	"github.com/shiftline/staff-scheduler/internal/core/domain"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
)

type stubShiftService struct {
	createFn func(ctx context.Context, in ports.CreateShiftInput) (*domain.Shift, error)
	listFn   func(ctx context.Context, filter ports.ShiftFilter) ([]*domain.Shift, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateShiftInput) (*domain.Shift, error)
	deleteFn func(ctx context.Context, id, actorID string) error
}

func (s *stubShiftService) Create(ctx context.Context, in ports.CreateShiftInput) (*domain.Shift, error) {
	return s.createFn(ctx, in)
}

func (s *stubShiftService) List(ctx context.Context, filter ports.ShiftFilter) ([]*domain.Shift, error) {
	return s.listFn(ctx, filter)
}

func (s *stubShiftService) Update(ctx context.Context, id string, in ports.UpdateShiftInput) (*domain.Shift, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubShiftService) Delete(ctx context.Context, id, actorID string) error {
	return s.deleteFn(ctx, id, actorID)
}

func TestShiftHandler_Create_Success(t *testing.T) {
	e := newEcho()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	var got ports.CreateShiftInput
	stub := &stubShiftService{
		createFn: func(_ context.Context, in ports.CreateShiftInput) (*domain.Shift, error) {
			got = in
			return &domain.Shift{ID: "s1", UserID: in.UserID, Position: in.Position}, nil
		},
	}
	handler := NewShiftHandler(stub)

	body := `{"user_id":"u1","start_time":"2025-03-10T09:00:00Z","end_time":"2025-03-10T17:00:00Z","position":"cashier"}`
	c, rec := postJSON(e, "/api/shifts", body)
	c.Request().Header.Set("Idempotency-Key", "key-42")
	c.Set(middleware.CtxUserID, "manager-1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.UserID != "u1" || got.Position != "cashier" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if !got.StartTime.Equal(start) {
		t.Fatalf("start time mangled: %v", got.StartTime)
	}
	if got.IdempotencyKey != "key-42" {
		t.Fatalf("idempotency key not forwarded: %q", got.IdempotencyKey)
	}
	if got.ActorID != "manager-1" {
		t.Fatalf("actor id not forwarded: %q", got.ActorID)
	}
}

func TestShiftHandler_Create_InvertedRange(t *testing.T) {
	e := newEcho()
	stub := &stubShiftService{
		createFn: func(context.Context, ports.CreateShiftInput) (*domain.Shift, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewShiftHandler(stub)

	body := `{"user_id":"u1","start_time":"2025-03-10T17:00:00Z","end_time":"2025-03-10T09:00:00Z","position":"cashier"}`
	c, rec := postJSON(e, "/api/shifts", body)
	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestShiftHandler_List_Filters(t *testing.T) {
	e := newEcho()

	var got ports.ShiftFilter
	stub := &stubShiftService{
		listFn: func(_ context.Context, filter ports.ShiftFilter) ([]*domain.Shift, error) {
			got = filter
			return []*domain.Shift{{ID: "s1"}, {ID: "s2"}}, nil
		},
	}
	handler := NewShiftHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/shifts?employee=u1&position=cook", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.UserID != "u1" || got.Position != "cook" {
		t.Fatalf("filters not forwarded: %+v", got)
	}

	var shifts []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &shifts); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(shifts))
	}
}

func TestShiftHandler_Update_PartialPatch(t *testing.T) {
	e := newEcho()

	var gotID string
	var gotIn ports.UpdateShiftInput
	stub := &stubShiftService{
		updateFn: func(_ context.Context, id string, in ports.UpdateShiftInput) (*domain.Shift, error) {
			gotID, gotIn = id, in
			return &domain.Shift{ID: id, Position: "cook"}, nil
		},
	}
	handler := NewShiftHandler(stub)

	c, rec := postJSON(e, "/api/shifts/s1", `{"position":"cook"}`)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set(middleware.CtxUserID, "manager-1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "s1" {
		t.Fatalf("unexpected id: %s", gotID)
	}
	if gotIn.Patch.Position == nil || *gotIn.Patch.Position != "cook" {
		t.Fatalf("patch position not forwarded: %+v", gotIn.Patch)
	}
	if gotIn.Patch.UserID != nil || gotIn.Patch.StartTime != nil {
		t.Fatalf("absent fields should stay nil: %+v", gotIn.Patch)
	}
	if gotIn.ActorID != "manager-1" {
		t.Fatalf("actor id not forwarded: %q", gotIn.ActorID)
	}
}

func TestShiftHandler_Update_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubShiftService{
		updateFn: func(context.Context, string, ports.UpdateShiftInput) (*domain.Shift, error) {
			return nil, domain.ErrShiftNotFound
		},
	}
	handler := NewShiftHandler(stub)

	c, _ := postJSON(e, "/api/shifts/ghost", `{"position":"cook"}`)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := handler.Update(c); err != domain.ErrShiftNotFound {
		t.Fatalf("expected ErrShiftNotFound to propagate, got %v", err)
	}
}

func TestShiftHandler_Delete(t *testing.T) {
	e := newEcho()

	var gotID, gotActor string
	stub := &stubShiftService{
		deleteFn: func(_ context.Context, id, actorID string) error {
			gotID, gotActor = id, actorID
			return nil
		},
	}
	handler := NewShiftHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/shifts/s1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set(middleware.CtxUserID, "manager-1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "s1" || gotActor != "manager-1" {
		t.Fatalf("unexpected args: %s %s", gotID, gotActor)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["msg"] != "shift removed" {
		t.Fatalf("unexpected body: %v", resp)
	}
}
