package domain

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// defaultBoardTitle and defaultColumnTitles seed every new board. Orders
// are assigned by position.
const defaultBoardTitle = "My Board"

var defaultColumnTitles = [...]string{"To Do", "In Progress", "Done"}

// BoardStorage defines the storage methods required by BoardService.
type BoardStorage interface {
	GetBoard(ctx context.Context, id string) (*Board, error)
	FindBoardByOwner(ctx context.Context, ownerID string) (*Board, error)
	InsertBoard(ctx context.Context, b Board) error
	InsertColumn(ctx context.Context, c Column) error
	FetchBoardContents(ctx context.Context, boardID string) ([]Column, []Task, error)
}

// BoardService implements board creation and nested board reads.
type BoardService struct{ st BoardStorage }

func NewBoardService(st BoardStorage) BoardService { return BoardService{st: st} }

// Create persists a new board for the owner together with the default
// column set. The writes span two tables and are not atomic; a failure
// between them leaves a board with fewer than three columns.
func (s BoardService) Create(ctx context.Context, ownerID string) (*Board, error) {
	board := Board{ID: uuid.NewString(), Title: defaultBoardTitle, UserID: ownerID}
	if err := s.st.InsertBoard(ctx, board); err != nil {
		return nil, err
	}
	for i, title := range defaultColumnTitles {
		col := Column{ID: uuid.NewString(), Title: title, BoardID: board.ID, Order: i}
		if err := s.st.InsertColumn(ctx, col); err != nil {
			return nil, err
		}
	}
	return &board, nil
}

// UserBoard loads the caller's own board with nested columns and tasks.
func (s BoardService) UserBoard(ctx context.Context, ownerID string) (*BoardView, error) {
	board, err := s.st.FindBoardByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	return s.loadView(ctx, *board)
}

// Board loads a board by id after checking ownership.
func (s BoardService) Board(ctx context.Context, boardID, callerID string) (*BoardView, error) {
	if err := validID(boardID); err != nil {
		return nil, err
	}
	board, err := ownedBoard(ctx, s.st, boardID, callerID)
	if err != nil {
		return nil, err
	}
	return s.loadView(ctx, *board)
}

func (s BoardService) loadView(ctx context.Context, board Board) (*BoardView, error) {
	columns, tasks, err := s.st.FetchBoardContents(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(columns, func(i, j int) bool { return columns[i].Order < columns[j].Order })
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })

	byColumn := make(map[string][]Task, len(columns))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}

	view := &BoardView{Board: board, Columns: make([]ColumnWithTasks, 0, len(columns))}
	for _, c := range columns {
		tasksForColumn := byColumn[c.ID]
		if tasksForColumn == nil {
			tasksForColumn = []Task{}
		}
		view.Columns = append(view.Columns, ColumnWithTasks{Column: c, Tasks: tasksForColumn})
	}
	return view, nil
}
