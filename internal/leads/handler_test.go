package leads

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payana-backend/internal/validation"
)

type fakeRepository struct {
	study  []StudyLead
	work   []WorkLead
	invest []InvestLead
	err    error
}

func (f *fakeRepository) InsertStudy(ctx context.Context, lead StudyLead) (StudyLead, error) {
	if f.err != nil {
		return StudyLead{}, f.err
	}
	lead.ID = int64(len(f.study) + 1)
	f.study = append(f.study, lead)
	return lead, nil
}

func (f *fakeRepository) InsertWork(ctx context.Context, lead WorkLead) (WorkLead, error) {
	if f.err != nil {
		return WorkLead{}, f.err
	}
	lead.ID = int64(len(f.work) + 1)
	f.work = append(f.work, lead)
	return lead, nil
}

func (f *fakeRepository) InsertInvest(ctx context.Context, lead InvestLead) (InvestLead, error) {
	if f.err != nil {
		return InvestLead{}, f.err
	}
	lead.ID = int64(len(f.invest) + 1)
	f.invest = append(f.invest, lead)
	return lead, nil
}

func (f *fakeRepository) ListStudy(ctx context.Context) ([]StudyLead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.study, nil
}

func (f *fakeRepository) ListWork(ctx context.Context) ([]WorkLead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.work, nil
}

func (f *fakeRepository) ListInvest(ctx context.Context) ([]InvestLead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.invest, nil
}

type fakeNotifier struct {
	sent chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 3)}
}

func (f *fakeNotifier) SendStudyLeadNotification(ctx context.Context, lead StudyLead) (string, error) {
	f.sent <- "study"
	return "msg-1", nil
}

func (f *fakeNotifier) SendWorkLeadNotification(ctx context.Context, lead WorkLead) (string, error) {
	f.sent <- "work"
	return "msg-2", nil
}

func (f *fakeNotifier) SendInvestLeadNotification(ctx context.Context, lead InvestLead) (string, error) {
	f.sent <- "invest"
	return "msg-3", nil
}

func newTestHandler(repo Repository, notifier Notifier) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(NewService(repo, notifier), validation.New(), logger)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestCreateInvest(t *testing.T) {
	repo := &fakeRepository{}
	notifier := newFakeNotifier()
	h := newTestHandler(repo, notifier)

	req := httptest.NewRequest(http.MethodPost, "/submit-invest-form",
		strings.NewReader(`{"name":"Priya","email":"priya@example.com","country":"Portugal"}`))
	rec := httptest.NewRecorder()
	h.CreateInvest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	if body["message"] != "Investment inquiry submitted successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", body["data"])
	}
	if data["country"] != "Portugal" || data["name"] != "Priya" {
		t.Fatalf("returned lead does not match submission: %v", data)
	}
	if len(repo.invest) != 1 {
		t.Fatalf("expected 1 stored lead, got %d", len(repo.invest))
	}

	select {
	case kind := <-notifier.sent:
		if kind != "invest" {
			t.Fatalf("expected invest notification, got %s", kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("notification never dispatched")
	}
}

func TestCreateInvestMissingFields(t *testing.T) {
	repo := &fakeRepository{}
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/submit-invest-form",
		strings.NewReader(`{"name":"Priya"}`))
	rec := httptest.NewRecorder()
	h.CreateInvest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "name, email and country are required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if len(repo.invest) != 0 {
		t.Fatalf("lead stored despite validation failure")
	}
}

func TestCreateStudyInvalidJSON(t *testing.T) {
	h := newTestHandler(&fakeRepository{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/submit-form", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.CreateStudy(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateStudyAllFieldsOptional(t *testing.T) {
	repo := &fakeRepository{}
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/submit-form", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateStudy(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty study submission, got %d", rec.Code)
	}
	if len(repo.study) != 1 {
		t.Fatalf("expected 1 stored lead, got %d", len(repo.study))
	}
}

func TestCreateWorkDatabaseError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("connection refused")}
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/submit-work-form",
		strings.NewReader(`{"occupation":"Nurse"}`))
	rec := httptest.NewRecorder()
	h.CreateWork(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Database error" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["error"] != "connection refused" {
		t.Fatalf("expected upstream error in body, got %v", body["error"])
	}
}

func TestListStudy(t *testing.T) {
	repo := &fakeRepository{study: []StudyLead{{ID: 1, Country: "Canada"}}}
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads/study", nil)
	rec := httptest.NewRecorder()
	h.ListStudy(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array, got %T", body["data"])
	}
	if len(data) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(data))
	}
}

func TestCreateInvestNoNotifierConfigured(t *testing.T) {
	repo := &fakeRepository{}
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/submit-invest-form",
		strings.NewReader(`{"name":"A","email":"a@b.c","country":"Spain"}`))
	rec := httptest.NewRecorder()
	h.CreateInvest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without notifier, got %d", rec.Code)
	}
}
