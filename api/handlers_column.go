package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/domain"
)

type addColumnRequest struct {
	Title   string `json:"title" validate:"required"`
	BoardID string `json:"boardId" validate:"required"`
}

type columnResponse struct {
	Message string        `json:"message"`
	Column  domain.Column `json:"column"`
}

func addColumn(svc ColumnService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req addColumnRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, "invalid body")
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Error: err.Error()})
		}

		column, err := svc.Add(c.Request().Context(), req.BoardID, req.Title, callerID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, columnResponse{
			Message: "Column created successfully",
			Column:  *column,
		})
	}
}

func updateColumn(svc ColumnService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var upd domain.ColumnUpdate
		if err := decodeBody(c, &upd); err != nil {
			return badRequest(c, "invalid body")
		}

		column, err := svc.Update(c.Request().Context(), c.Param("id"), callerID(c), upd)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, columnResponse{
			Message: "Column updated successfully",
			Column:  *column,
		})
	}
}

func deleteColumn(svc ColumnService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), c.Param("id"), callerID(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "Column deleted successfully"})
	}
}
