package api

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

type stubAuthService struct {
	signUpFn  func(ctx context.Context, email, password, name string) (*domain.Session, error)
	loginFn   func(ctx context.Context, email, password string) (*domain.Session, error)
	profileFn func(ctx context.Context, userID string) (*domain.Profile, error)
}

func (s stubAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.Session, error) {
	return s.signUpFn(ctx, email, password, name)
}

func (s stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s stubAuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileFn(ctx, userID)
}

type stubBoardService struct {
	createFn    func(ctx context.Context, ownerID string) (*domain.Board, error)
	userBoardFn func(ctx context.Context, ownerID string) (*domain.BoardView, error)
	boardFn     func(ctx context.Context, boardID, callerID string) (*domain.BoardView, error)
}

func (s stubBoardService) Create(ctx context.Context, ownerID string) (*domain.Board, error) {
	return s.createFn(ctx, ownerID)
}

func (s stubBoardService) UserBoard(ctx context.Context, ownerID string) (*domain.BoardView, error) {
	return s.userBoardFn(ctx, ownerID)
}

func (s stubBoardService) Board(ctx context.Context, boardID, callerID string) (*domain.BoardView, error) {
	return s.boardFn(ctx, boardID, callerID)
}

type stubColumnService struct {
	addFn    func(ctx context.Context, boardID, title, callerID string) (*domain.Column, error)
	updateFn func(ctx context.Context, columnID, callerID string, upd domain.ColumnUpdate) (*domain.Column, error)
	deleteFn func(ctx context.Context, columnID, callerID string) error
}

func (s stubColumnService) Add(ctx context.Context, boardID, title, callerID string) (*domain.Column, error) {
	return s.addFn(ctx, boardID, title, callerID)
}

func (s stubColumnService) Update(ctx context.Context, columnID, callerID string, upd domain.ColumnUpdate) (*domain.Column, error) {
	return s.updateFn(ctx, columnID, callerID, upd)
}

func (s stubColumnService) Delete(ctx context.Context, columnID, callerID string) error {
	return s.deleteFn(ctx, columnID, callerID)
}

type stubTaskService struct {
	createFn func(ctx context.Context, in domain.CreateTask, callerID string) (*domain.Task, error)
	updateFn func(ctx context.Context, taskID, callerID string, upd domain.TaskUpdate) (*domain.Task, error)
	deleteFn func(ctx context.Context, taskID, callerID string) error
}

func (s stubTaskService) Create(ctx context.Context, in domain.CreateTask, callerID string) (*domain.Task, error) {
	return s.createFn(ctx, in, callerID)
}

func (s stubTaskService) Update(ctx context.Context, taskID, callerID string, upd domain.TaskUpdate) (*domain.Task, error) {
	return s.updateFn(ctx, taskID, callerID, upd)
}

func (s stubTaskService) Delete(ctx context.Context, taskID, callerID string) error {
	return s.deleteFn(ctx, taskID, callerID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = newRequestValidator()
	return e
}

func nullLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newHandlerContext builds an echo context for a JSON request, marking
// the caller as authenticated under userID.
func newHandlerContext(e *echo.Echo, method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(userIDKey, userID)
	}
	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := sonic.ConfigStd.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
