package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/domain"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

type profileResponse struct {
	User domain.Profile `json:"user"`
}

func signUp(svc AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req signUpRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, "invalid body")
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Error: err.Error()})
		}

		sess, err := svc.SignUp(c.Request().Context(), req.Email, req.Password, req.Name)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, sessionResponse{
			Message: "User created successfully",
			Token:   sess.Token,
			User:    sess.User,
		})
	}
}

func login(svc AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, "invalid body")
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Error: err.Error()})
		}

		sess, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, sessionResponse{
			Message: "Login successful",
			Token:   sess.Token,
			User:    sess.User,
		})
	}
}

func currentUser(svc AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		profile, err := svc.Profile(c.Request().Context(), callerID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, profileResponse{User: *profile})
	}
}
