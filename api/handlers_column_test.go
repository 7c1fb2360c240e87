package api

import (
	"context"
	"net/http"
	"testing"

	"kanban-api/domain"
)

func TestAddColumn(t *testing.T) {
	e := newTestEcho()
	svc := stubColumnService{
		addFn: func(ctx context.Context, boardID, title, callerID string) (*domain.Column, error) {
			if boardID != "board-1" || title != "Review" || callerID != "user-1" {
				t.Fatalf("unexpected args: %q %q %q", boardID, title, callerID)
			}
			return &domain.Column{ID: "col-3", Title: title, BoardID: boardID, Order: 3}, nil
		},
	}

	body := `{"title":"Review","boardId":"board-1"}`
	c, rec := newHandlerContext(e, http.MethodPost, "/api/column", body, "user-1")
	if err := addColumn(svc)(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp columnResponse
	decodeResponse(t, rec, &resp)
	if resp.Message != "Column created successfully" || resp.Column.Order != 3 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAddColumnValidation(t *testing.T) {
	e := newTestEcho()
	svc := stubColumnService{
		addFn: func(ctx context.Context, boardID, title, callerID string) (*domain.Column, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"boardId":"board-1"}`},
		{"missing board", `{"title":"Review"}`},
		{"malformed json", `{"title":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newHandlerContext(e, http.MethodPost, "/api/column", tc.body, "user-1")
			if err := addColumn(svc)(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestUpdateColumnPassesPartialUpdate(t *testing.T) {
	e := newTestEcho()
	var got domain.ColumnUpdate
	svc := stubColumnService{
		updateFn: func(ctx context.Context, columnID, callerID string, upd domain.ColumnUpdate) (*domain.Column, error) {
			if columnID != "col-1" || callerID != "user-1" {
				t.Fatalf("unexpected args: %q %q", columnID, callerID)
			}
			got = upd
			return &domain.Column{ID: columnID, Title: "Renamed", BoardID: "board-1", Order: 0}, nil
		},
	}

	c, rec := newHandlerContext(e, http.MethodPatch, "/api/column/col-1", `{"title":"Renamed","order":0}`, "user-1")
	c.SetParamNames("id")
	c.SetParamValues("col-1")
	if err := updateColumn(svc)(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Title == nil || *got.Title != "Renamed" {
		t.Fatalf("title not carried through: %+v", got)
	}
	if got.Order == nil || *got.Order != 0 {
		t.Fatal("explicit zero order must survive decoding as a set field")
	}
}

func TestUpdateColumnErrors(t *testing.T) {
	e := newTestEcho()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown column", domain.ErrNotFound, http.StatusNotFound},
		{"foreign column", domain.ErrForbidden, http.StatusForbidden},
		{"malformed id", domain.ErrInvalidID, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := stubColumnService{
				updateFn: func(ctx context.Context, columnID, callerID string, upd domain.ColumnUpdate) (*domain.Column, error) {
					return nil, tc.err
				},
			}
			c, rec := newHandlerContext(e, http.MethodPatch, "/api/column/col-1", `{"title":"x"}`, "user-1")
			c.SetParamNames("id")
			c.SetParamValues("col-1")
			if err := updateColumn(svc)(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestDeleteColumn(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	svc := stubColumnService{
		deleteFn: func(ctx context.Context, columnID, callerID string) error {
			deleted = columnID
			return nil
		},
	}

	c, rec := newHandlerContext(e, http.MethodDelete, "/api/column/col-1", "", "user-1")
	c.SetParamNames("id")
	c.SetParamValues("col-1")
	if err := deleteColumn(svc)(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "col-1" {
		t.Fatalf("expected col-1 deleted, got %q", deleted)
	}

	var resp messageResponse
	decodeResponse(t, rec, &resp)
	if resp.Message != "Column deleted successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}
