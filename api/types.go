package api

import (
	"context"

	"kanban-api/domain"
)

// AuthService abstracts signup/login/profile for handlers.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
}

// BoardService abstracts board reads and creation for handlers.
type BoardService interface {
	Create(ctx context.Context, ownerID string) (*domain.Board, error)
	UserBoard(ctx context.Context, ownerID string) (*domain.BoardView, error)
	Board(ctx context.Context, boardID, callerID string) (*domain.BoardView, error)
}

// ColumnService abstracts column mutations for handlers.
type ColumnService interface {
	Add(ctx context.Context, boardID, title, callerID string) (*domain.Column, error)
	Update(ctx context.Context, columnID, callerID string, upd domain.ColumnUpdate) (*domain.Column, error)
	Delete(ctx context.Context, columnID, callerID string) error
}

// TaskService abstracts task mutations for handlers.
type TaskService interface {
	Create(ctx context.Context, in domain.CreateTask, callerID string) (*domain.Task, error)
	Update(ctx context.Context, taskID, callerID string, upd domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, taskID, callerID string) error
}

// Services bundles the domain services the API serves.
type Services struct {
	Auth    AuthService
	Boards  BoardService
	Columns ColumnService
	Tasks   TaskService
}

// Authenticator is implemented by types able to extract user IDs from headers.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
}
