package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStorage defines the storage methods required by TaskService.
type TaskStorage interface {
	GetBoard(ctx context.Context, id string) (*Board, error)
	GetColumn(ctx context.Context, id string) (*Column, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, boardID, columnID string) ([]Task, error)
	InsertTask(ctx context.Context, t Task) error
	UpdateTask(ctx context.Context, t Task) error
	DeleteTask(ctx context.Context, boardID, taskID string) error
}

// CreateTask carries the fields for a new task.
type CreateTask struct {
	Title       string
	Description string
	ColumnID    string
	BoardID     string
	DueDate     *time.Time
	Labels      []string
}

// TaskService implements task mutations under the board ownership chain.
type TaskService struct{ st TaskStorage }

func NewTaskService(st TaskStorage) TaskService { return TaskService{st: st} }

// Create appends a task at the end of its column. The column must belong
// to the supplied board; the board id is denormalized onto the task for
// later ownership checks.
func (s TaskService) Create(ctx context.Context, in CreateTask, callerID string) (*Task, error) {
	board, err := ownedBoard(ctx, s.st, in.BoardID, callerID)
	if err != nil {
		return nil, err
	}
	column, err := s.st.GetColumn(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, ErrNotFound
	}
	if column.BoardID != board.ID {
		return nil, ErrColumnBoardMismatch
	}

	tasks, err := s.st.ListTasks(ctx, board.ID, column.ID)
	if err != nil {
		return nil, err
	}
	task := Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ColumnID:    column.ID,
		BoardID:     board.ID,
		Order:       nextOrder(taskOrders(tasks)),
		DueDate:     in.DueDate,
		Labels:      in.Labels,
	}
	if err := s.st.InsertTask(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies the non-nil fields of upd to the task. A column change
// is a move: the target column must exist and belong to the task's
// board. The task keeps its order value in the new column.
func (s TaskService) Update(ctx context.Context, taskID, callerID string, upd TaskUpdate) (*Task, error) {
	task, err := s.resolve(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}

	if upd.ColumnID != nil && *upd.ColumnID != task.ColumnID {
		column, err := s.st.GetColumn(ctx, *upd.ColumnID)
		if err != nil {
			return nil, err
		}
		if column == nil {
			return nil, ErrNotFound
		}
		if column.BoardID != task.BoardID {
			return nil, ErrColumnBoardMismatch
		}
		task.ColumnID = column.ID
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Order != nil {
		task.Order = *upd.Order
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.Labels != nil {
		task.Labels = upd.Labels
	}
	if err := s.st.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task record.
func (s TaskService) Delete(ctx context.Context, taskID, callerID string) error {
	task, err := s.resolve(ctx, taskID, callerID)
	if err != nil {
		return err
	}
	return s.st.DeleteTask(ctx, task.BoardID, task.ID)
}

func (s TaskService) resolve(ctx context.Context, taskID, callerID string) (*Task, error) {
	if err := validID(taskID); err != nil {
		return nil, err
	}
	task, err := s.st.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if _, err := ownedBoard(ctx, s.st, task.BoardID, callerID); err != nil {
		return nil, err
	}
	return task, nil
}

func taskOrders(tasks []Task) []int {
	orders := make([]int, len(tasks))
	for i, t := range tasks {
		orders[i] = t.Order
	}
	return orders
}
