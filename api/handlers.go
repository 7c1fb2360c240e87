package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

// requestBodyMaxSize bounds every decoded request body.
const requestBodyMaxSize = 1 << 20

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, svc Services, auth Authenticator, logger *log.Logger) {
	e.Validator = newRequestValidator()

	e.GET("/healthz", healthz())

	g := e.Group("/api")
	g.POST("/auth/signup", signUp(svc.Auth))
	g.POST("/auth/login", login(svc.Auth))

	authed := g.Group("", RequireAuth(auth))
	authed.GET("/auth/me", currentUser(svc.Auth))
	authed.GET("/board", getUserBoard(svc.Boards, logger))
	authed.POST("/board", createBoard(svc.Boards))
	authed.GET("/board/:id", getBoard(svc.Boards, logger))
	authed.POST("/column", addColumn(svc.Columns))
	authed.PATCH("/column/:id", updateColumn(svc.Columns))
	authed.DELETE("/column/:id", deleteColumn(svc.Columns))
	authed.POST("/task", createTask(svc.Tasks))
	authed.PATCH("/task/:id", updateTask(svc.Tasks))
	authed.DELETE("/task/:id", deleteTask(svc.Tasks))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// decodeBody reads a size-limited JSON request body into v, rejecting
// unknown fields.
func decodeBody(c echo.Context, v any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: message})
}

// respondError maps domain failures to their HTTP statuses; anything
// unrecognized becomes a 500 carrying the underlying message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrColumnBoardMismatch):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Server error", Error: err.Error()})
	}
}
