package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/handler"
	"github.com/Ankitkushwaha90/techforge/internal/service"
)

type mockContactService struct {
	response       dto.ContactResponse
	messages       []dto.ContactMessageResponse
	lastReq        dto.ContactRequest
	onlyUnresolved bool
	resolvedID     uint
	err            error
}

func (m *mockContactService) Submit(_ context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return dto.ContactResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockContactService) List(_ context.Context, onlyUnresolved bool) ([]dto.ContactMessageResponse, error) {
	m.onlyUnresolved = onlyUnresolved
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *mockContactService) Resolve(_ context.Context, id uint) error {
	if m.err != nil {
		return m.err
	}
	m.resolvedID = id
	return nil
}

func newContactApp(svc service.ContactService) *fiber.App {
	app := fiber.New()
	public := app.Group("/api/contact")
	protected := app.Group("/api/contact", withUser(7))
	handler.NewContactHandler(svc, zerolog.Nop()).Register(public, protected)
	return app
}

func contactRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/contact/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestContactHandler_Submit(t *testing.T) {
	svc := &mockContactService{response: dto.ContactResponse{ReferenceID: "TF-1234", Status: "received"}}
	app := newContactApp(svc)

	resp, err := app.Test(contactRequest(`{"name":"Asha","email":"asha@example.com","subject":"Hi","message":"Question about Go"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "asha@example.com", svc.lastReq.Email)

	var payload struct {
		Success bool                `json:"success"`
		Data    dto.ContactResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, "TF-1234", payload.Data.ReferenceID)
}

func TestContactHandler_SubmitSpamLooksAccepted(t *testing.T) {
	svc := &mockContactService{err: service.ErrContactSpam}
	app := newContactApp(svc)

	resp, err := app.Test(contactRequest(`{"name":"bot","email":"bot@example.com","subject":"x","message":"y","website":"http://spam"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                `json:"success"`
		Data    dto.ContactResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Empty(t, payload.Data.ReferenceID)
}

func TestContactHandler_SubmitDuplicate(t *testing.T) {
	svc := &mockContactService{err: service.ErrContactDuplicate}
	app := newContactApp(svc)

	resp, err := app.Test(contactRequest(`{"name":"Asha","email":"asha@example.com","subject":"Hi","message":"again"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestContactHandler_SubmitValidationFailure(t *testing.T) {
	svc := &mockContactService{err: validator.ValidationErrors{}}
	app := newContactApp(svc)

	resp, err := app.Test(contactRequest(`{"name":"Asha","email":"not-an-email","subject":"Hi","message":"x"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContactHandler_ListMessages(t *testing.T) {
	svc := &mockContactService{messages: []dto.ContactMessageResponse{
		{ID: 1, ReferenceID: "TF-1234", Subject: "Hi", Priority: "medium"},
	}}
	app := newContactApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/contact/messages?unresolved=true", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.onlyUnresolved)

	var payload struct {
		Success bool                         `json:"success"`
		Data    []dto.ContactMessageResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Len(t, payload.Data, 1)
	require.Equal(t, "TF-1234", payload.Data[0].ReferenceID)
}

func TestContactHandler_ResolveMessage(t *testing.T) {
	svc := &mockContactService{}
	app := newContactApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/contact/messages/5/resolve", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(5), svc.resolvedID)
}

func TestContactHandler_ResolveMessageNotFound(t *testing.T) {
	svc := &mockContactService{err: service.ErrContactNotFound}
	app := newContactApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/contact/messages/99/resolve", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestContactHandler_SubmitMalformedBody(t *testing.T) {
	svc := &mockContactService{}
	app := newContactApp(svc)

	resp, err := app.Test(contactRequest(`{"name":`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Empty(t, svc.lastReq.Name, "service is never reached for malformed bodies")
}
