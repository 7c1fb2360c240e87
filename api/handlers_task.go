package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"kanban-api/domain"
)

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	ColumnID    string     `json:"columnId" validate:"required"`
	BoardID     string     `json:"boardId" validate:"required"`
	DueDate     *time.Time `json:"dueDate"`
	Labels      []string   `json:"labels"`
}

type taskResponse struct {
	Message string      `json:"message"`
	Task    domain.Task `json:"task"`
}

func createTask(svc TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createTaskRequest
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, "invalid body")
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Error: err.Error()})
		}

		task, err := svc.Create(c.Request().Context(), domain.CreateTask{
			Title:       req.Title,
			Description: req.Description,
			ColumnID:    req.ColumnID,
			BoardID:     req.BoardID,
			DueDate:     req.DueDate,
			Labels:      req.Labels,
		}, callerID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, taskResponse{
			Message: "Task created successfully",
			Task:    *task,
		})
	}
}

func updateTask(svc TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var upd domain.TaskUpdate
		if err := decodeBody(c, &upd); err != nil {
			return badRequest(c, "invalid body")
		}

		task, err := svc.Update(c.Request().Context(), c.Param("id"), callerID(c), upd)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, taskResponse{
			Message: "Task updated successfully",
			Task:    *task,
		})
	}
}

func deleteTask(svc TaskService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), c.Param("id"), callerID(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
	}
}
