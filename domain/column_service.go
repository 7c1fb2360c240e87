package domain

import (
	"context"

	"github.com/google/uuid"
)

// ColumnStorage defines the storage methods required by ColumnService.
type ColumnStorage interface {
	GetBoard(ctx context.Context, id string) (*Board, error)
	GetColumn(ctx context.Context, id string) (*Column, error)
	ListColumns(ctx context.Context, boardID string) ([]Column, error)
	InsertColumn(ctx context.Context, c Column) error
	UpdateColumn(ctx context.Context, c Column) error
	DeleteColumn(ctx context.Context, boardID, columnID string) error
}

// ColumnService implements column mutations under the board ownership
// chain.
type ColumnService struct{ st ColumnStorage }

func NewColumnService(st ColumnStorage) ColumnService { return ColumnService{st: st} }

// Add appends a column at the end of the board. The order is one past
// the current maximum; reading the maximum and inserting are not
// transactional, so concurrent adds may share an order value.
func (s ColumnService) Add(ctx context.Context, boardID, title, callerID string) (*Column, error) {
	board, err := ownedBoard(ctx, s.st, boardID, callerID)
	if err != nil {
		return nil, err
	}

	columns, err := s.st.ListColumns(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	column := Column{
		ID:      uuid.NewString(),
		Title:   title,
		BoardID: board.ID,
		Order:   nextOrder(columnOrders(columns)),
	}
	if err := s.st.InsertColumn(ctx, column); err != nil {
		return nil, err
	}
	return &column, nil
}

// Update applies the non-nil fields of upd to the column. An explicit
// order of zero is applied; a nil order keeps the current value.
func (s ColumnService) Update(ctx context.Context, columnID, callerID string, upd ColumnUpdate) (*Column, error) {
	column, err := s.resolve(ctx, columnID, callerID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		column.Title = *upd.Title
	}
	if upd.Order != nil {
		column.Order = *upd.Order
	}
	if err := s.st.UpdateColumn(ctx, *column); err != nil {
		return nil, err
	}
	return column, nil
}

// Delete removes the column record only. Tasks under the column are left
// in place and disappear from board views until reassigned.
func (s ColumnService) Delete(ctx context.Context, columnID, callerID string) error {
	column, err := s.resolve(ctx, columnID, callerID)
	if err != nil {
		return err
	}
	return s.st.DeleteColumn(ctx, column.BoardID, column.ID)
}

func (s ColumnService) resolve(ctx context.Context, columnID, callerID string) (*Column, error) {
	if err := validID(columnID); err != nil {
		return nil, err
	}
	column, err := s.st.GetColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, ErrNotFound
	}
	if _, err := ownedBoard(ctx, s.st, column.BoardID, callerID); err != nil {
		return nil, err
	}
	return column, nil
}

func columnOrders(columns []Column) []int {
	orders := make([]int, len(columns))
	for i, c := range columns {
		orders[i] = c.Order
	}
	return orders
}

// nextOrder returns max(orders)+1, or 0 for an empty scope. Gaps from
// deletions are never compacted.
func nextOrder(orders []int) int {
	next := 0
	for _, o := range orders {
		if o >= next {
			next = o + 1
		}
	}
	return next
}
