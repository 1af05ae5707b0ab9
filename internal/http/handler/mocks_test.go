package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"meetapp.app/api/internal/http/middleware"
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/service"
)

type mockUserService struct {
	registerFn func(ctx context.Context, params service.RegisterParams) (*model.User, error)
	updateFn   func(ctx context.Context, userID int64, update service.ProfileUpdate) (*model.User, error)
}

func (m *mockUserService) Register(ctx context.Context, params service.RegisterParams) (*model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, update service.ProfileUpdate) (*model.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, update)
	}
	return nil, nil
}

type mockSessionService struct {
	authenticateFn func(ctx context.Context, creds service.Credentials) (*service.Session, error)
	verifyFn       func(ctx context.Context, authorization string) (int64, error)
}

func (m *mockSessionService) Authenticate(ctx context.Context, creds service.Credentials) (*service.Session, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, creds)
	}
	return nil, nil
}

func (m *mockSessionService) VerifyToken(ctx context.Context, authorization string) (int64, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, authorization)
	}
	return 0, service.ErrUnauthenticated
}

type mockFileService struct {
	uploadFn func(ctx context.Context, name string, body io.Reader) (*model.File, error)
	openFn   func(ctx context.Context, path string) (io.ReadCloser, error)
}

func (m *mockFileService) Upload(ctx context.Context, name string, body io.Reader) (*model.File, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, name, body)
	}
	return nil, nil
}

func (m *mockFileService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if m.openFn != nil {
		return m.openFn(ctx, path)
	}
	return nil, service.ErrNotFound
}

type mockMeetupService struct {
	listOwnedByFn func(ctx context.Context, userID int64) ([]model.Meetup, error)
	listByDateFn  func(ctx context.Context, date string, page int) ([]model.Meetup, error)
	createFn      func(ctx context.Context, organizerID int64, params service.CreateMeetupParams) (*model.Meetup, error)
	updateFn      func(ctx context.Context, meetupID, callerID int64, patch service.MeetupPatch) (*model.Meetup, error)
	deleteFn      func(ctx context.Context, meetupID, callerID int64) error
}

func (m *mockMeetupService) ListOwnedBy(ctx context.Context, userID int64) ([]model.Meetup, error) {
	if m.listOwnedByFn != nil {
		return m.listOwnedByFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockMeetupService) ListByDate(ctx context.Context, date string, page int) ([]model.Meetup, error) {
	if m.listByDateFn != nil {
		return m.listByDateFn(ctx, date, page)
	}
	return nil, nil
}

func (m *mockMeetupService) Create(ctx context.Context, organizerID int64, params service.CreateMeetupParams) (*model.Meetup, error) {
	if m.createFn != nil {
		return m.createFn(ctx, organizerID, params)
	}
	return nil, nil
}

func (m *mockMeetupService) Update(ctx context.Context, meetupID, callerID int64, patch service.MeetupPatch) (*model.Meetup, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, meetupID, callerID, patch)
	}
	return nil, nil
}

func (m *mockMeetupService) Delete(ctx context.Context, meetupID, callerID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, meetupID, callerID)
	}
	return nil
}

type mockSubscriptionService struct {
	subscribeFn func(ctx context.Context, meetupID, callerID int64) (*service.SubscribeResult, error)
	listMineFn  func(ctx context.Context, callerID int64) ([]model.Meetup, error)
}

func (m *mockSubscriptionService) Subscribe(ctx context.Context, meetupID, callerID int64) (*service.SubscribeResult, error) {
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, meetupID, callerID)
	}
	return nil, nil
}

func (m *mockSubscriptionService) ListMine(ctx context.Context, callerID int64) ([]model.Meetup, error) {
	if m.listMineFn != nil {
		return m.listMineFn(ctx, callerID)
	}
	return nil, nil
}

// asUser stands in for RequireAuth.
func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func decodeList(w *httptest.ResponseRecorder) []map[string]any {
	var resp []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}
