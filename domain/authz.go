package domain

import (
	"context"

	"github.com/google/uuid"
)

// BoardResolver is the minimal storage surface needed to walk the
// ownership chain up to a board.
type BoardResolver interface {
	GetBoard(ctx context.Context, id string) (*Board, error)
}

// ownedBoard resolves a board and checks that the caller owns it. Every
// column and task mutation funnels through this so the ownership chain
// cannot drift between endpoints.
func ownedBoard(ctx context.Context, st BoardResolver, boardID, callerID string) (*Board, error) {
	board, err := st.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	if board.UserID != callerID {
		return nil, ErrForbidden
	}
	return board, nil
}

// validID rejects identifiers that are not well-formed UUIDs before any
// storage round trip.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
