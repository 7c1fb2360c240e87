package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

type boardResponse struct {
	Message string       `json:"message"`
	Board   domain.Board `json:"board"`
}

func getUserBoard(svc BoardService, logger *log.Logger) echo.HandlerFunc {
	return boardFetchHandler("/api/board", logger, func(c echo.Context) (*domain.BoardView, error) {
		return svc.UserBoard(c.Request().Context(), callerID(c))
	})
}

func getBoard(svc BoardService, logger *log.Logger) echo.HandlerFunc {
	return boardFetchHandler("/api/board/:id", logger, func(c echo.Context) (*domain.BoardView, error) {
		return svc.Board(c.Request().Context(), c.Param("id"), callerID(c))
	})
}

// boardFetchHandler wraps the two board reads with per-request metrics.
func boardFetchHandler(route string, logger *log.Logger, load func(echo.Context) (*domain.BoardView, error)) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, logger, route)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		view, loadErr := load(c)
		metrics.ObserveFetch(time.Since(fetchStart))
		if loadErr != nil {
			metrics.SetErrorStage("fetch")
			err = respondError(c, loadErr)
			return err
		}
		metrics.SetReturned(countColumnsAndTasks(view))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, view)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func countColumnsAndTasks(view *domain.BoardView) (columns, tasks int) {
	columns = len(view.Columns)
	for _, col := range view.Columns {
		tasks += len(col.Tasks)
	}
	return columns, tasks
}

func createBoard(svc BoardService) echo.HandlerFunc {
	return func(c echo.Context) error {
		board, err := svc.Create(c.Request().Context(), callerID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, boardResponse{
			Message: "Board created successfully",
			Board:   *board,
		})
	}
}
