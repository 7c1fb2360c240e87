package domain

import (
	"context"
	"errors"
)

// fakeStore is an in-memory implementation of the service storage
// interfaces, keyed by entity id.
type fakeStore struct {
	users   map[string]User
	boards  map[string]Board
	columns map[string]Column
	tasks   map[string]Task

	failInsertColumn bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]User{},
		boards:  map[string]Board{},
		columns: map[string]Column{},
		tasks:   map[string]Task{},
	}
}

func (f *fakeStore) GetUser(ctx context.Context, id string) (*User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertUser(ctx context.Context, u User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) GetBoard(ctx context.Context, id string) (*Board, error) {
	if b, ok := f.boards[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeStore) FindBoardByOwner(ctx context.Context, ownerID string) (*Board, error) {
	for _, b := range f.boards {
		if b.UserID == ownerID {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertBoard(ctx context.Context, b Board) error {
	f.boards[b.ID] = b
	return nil
}

func (f *fakeStore) GetColumn(ctx context.Context, id string) (*Column, error) {
	if c, ok := f.columns[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeStore) ListColumns(ctx context.Context, boardID string) ([]Column, error) {
	var out []Column
	for _, c := range f.columns {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertColumn(ctx context.Context, c Column) error {
	if f.failInsertColumn {
		return errors.New("insert column failed")
	}
	f.columns[c.ID] = c
	return nil
}

func (f *fakeStore) UpdateColumn(ctx context.Context, c Column) error {
	f.columns[c.ID] = c
	return nil
}

func (f *fakeStore) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	delete(f.columns, columnID)
	return nil
}

func (f *fakeStore) GetTask(ctx context.Context, id string) (*Task, error) {
	if t, ok := f.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (f *fakeStore) ListTasks(ctx context.Context, boardID, columnID string) ([]Task, error) {
	var out []Task
	for _, t := range f.tasks {
		if t.BoardID == boardID && t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertTask(ctx context.Context, t Task) error {
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, t Task) error {
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeStore) DeleteTask(ctx context.Context, boardID, taskID string) error {
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeStore) FetchBoardContents(ctx context.Context, boardID string) ([]Column, []Task, error) {
	columns, _ := f.ListColumns(ctx, boardID)
	var tasks []Task
	for _, t := range f.tasks {
		if t.BoardID == boardID {
			tasks = append(tasks, t)
		}
	}
	return columns, tasks, nil
}

// staticTokens satisfies TokenIssuer for tests.
type staticTokens struct{ token string }

func (s staticTokens) IssueToken(userID string) (string, error) { return s.token, nil }
