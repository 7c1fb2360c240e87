package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"kanban-api/domain"
)

// userPartition keys all user rows into a single partition so email
// lookups stay within one scan scope.
const userPartition = "user"

// Storage persists users, boards, columns and tasks in Azure Table
// Storage, one table per entity type. Boards partition by owner,
// columns and tasks by board.
type Storage struct {
	userTable   *aztables.Client
	boardTable  *aztables.Client
	columnTable *aztables.Client
	taskTable   *aztables.Client
}

// New creates a Storage instance from the given connection string.
func New(connStr, usersTable, boardsTable, columnsTable, tasksTable string) (*Storage, error) {
	opts := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &opts)
	if err != nil {
		return nil, err
	}
	return &Storage{
		userTable:   svc.NewClient(usersTable),
		boardTable:  svc.NewClient(boardsTable),
		columnTable: svc.NewClient(columnsTable),
		taskTable:   svc.NewClient(tasksTable),
	}, nil
}

type userEntity struct {
	aztables.Entity
	Email        string `json:"Email"`
	Name         string `json:"Name"`
	PasswordHash string `json:"PasswordHash"`
}

type boardEntity struct {
	aztables.Entity
	Title string `json:"Title"`
}

type columnEntity struct {
	aztables.Entity
	Title string `json:"Title"`
	Order int    `json:"Order"`
}

type taskEntity struct {
	aztables.Entity
	ColumnID    string `json:"ColumnId"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Order       int    `json:"Order"`
	// DueDate is an RFC3339 string, empty when unset. Labels is a
	// JSON-encoded string list; Azure Tables has no collection type.
	DueDate string `json:"DueDate"`
	Labels  string `json:"Labels"`
}

// GetUser retrieves a user by id, nil when absent.
func (s *Storage) GetUser(ctx context.Context, id string) (*domain.User, error) {
	resp, err := s.userTable.GetEntity(ctx, userPartition, id, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ent userEntity
	if err := json.Unmarshal(resp.Value, &ent); err != nil {
		return nil, err
	}
	u := userFromEntity(ent)
	return &u, nil
}

// FindUserByEmail retrieves the user registered under email, nil when
// absent.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	filter := "PartitionKey eq '" + userPartition + "' and Email eq '" + escapeFilterValue(email) + "'"
	pager := s.userTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent userEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			u := userFromEntity(ent)
			return &u, nil
		}
	}
	return nil, nil
}

// InsertUser persists a new user record.
func (s *Storage) InsertUser(ctx context.Context, u domain.User) error {
	ent := userEntity{
		Entity:       aztables.Entity{PartitionKey: userPartition, RowKey: u.ID},
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
	}
	payload, err := json.Marshal(ent)
	if err == nil {
		_, err = s.userTable.AddEntity(ctx, payload, nil)
	}
	return err
}

// GetBoard retrieves a board by id regardless of owner, nil when absent.
func (s *Storage) GetBoard(ctx context.Context, id string) (*domain.Board, error) {
	filter := "RowKey eq '" + escapeFilterValue(id) + "'"
	pager := s.boardTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent boardEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			b := boardFromEntity(ent)
			return &b, nil
		}
	}
	return nil, nil
}

// FindBoardByOwner retrieves the first board owned by ownerID, nil when
// none exists.
func (s *Storage) FindBoardByOwner(ctx context.Context, ownerID string) (*domain.Board, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(ownerID) + "'"
	pager := s.boardTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent boardEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			b := boardFromEntity(ent)
			return &b, nil
		}
	}
	return nil, nil
}

// InsertBoard persists a new board record.
func (s *Storage) InsertBoard(ctx context.Context, b domain.Board) error {
	ent := boardEntity{
		Entity: aztables.Entity{PartitionKey: b.UserID, RowKey: b.ID},
		Title:  b.Title,
	}
	payload, err := json.Marshal(ent)
	if err == nil {
		_, err = s.boardTable.AddEntity(ctx, payload, nil)
	}
	return err
}

// GetColumn retrieves a column by id, nil when absent.
func (s *Storage) GetColumn(ctx context.Context, id string) (*domain.Column, error) {
	filter := "RowKey eq '" + escapeFilterValue(id) + "'"
	pager := s.columnTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent columnEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			c := columnFromEntity(ent)
			return &c, nil
		}
	}
	return nil, nil
}

// ListColumns retrieves all columns of a board in storage order.
func (s *Storage) ListColumns(ctx context.Context, boardID string) ([]domain.Column, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(boardID) + "'"
	pager := s.columnTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	columns := []domain.Column{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent columnEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			columns = append(columns, columnFromEntity(ent))
		}
	}
	return columns, nil
}

// InsertColumn persists a new column record.
func (s *Storage) InsertColumn(ctx context.Context, c domain.Column) error {
	payload, err := json.Marshal(columnToEntity(c))
	if err == nil {
		_, err = s.columnTable.AddEntity(ctx, payload, nil)
	}
	return err
}

// UpdateColumn replaces the stored column record.
func (s *Storage) UpdateColumn(ctx context.Context, c domain.Column) error {
	payload, err := json.Marshal(columnToEntity(c))
	if err == nil {
		_, err = s.columnTable.UpsertEntity(ctx, payload, nil)
	}
	return err
}

// DeleteColumn removes the column record only; tasks under it are
// untouched.
func (s *Storage) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	_, err := s.columnTable.DeleteEntity(ctx, boardID, columnID, nil)
	return err
}

// GetTask retrieves a task by id, nil when absent.
func (s *Storage) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	filter := "RowKey eq '" + escapeFilterValue(id) + "'"
	tasks, err := s.listTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// ListTasks retrieves all tasks of a column in storage order.
func (s *Storage) ListTasks(ctx context.Context, boardID, columnID string) ([]domain.Task, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(boardID) + "' and ColumnId eq '" + escapeFilterValue(columnID) + "'"
	return s.listTasks(ctx, filter)
}

// InsertTask persists a new task record.
func (s *Storage) InsertTask(ctx context.Context, t domain.Task) error {
	ent, err := taskToEntity(t)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(ent)
	if err == nil {
		_, err = s.taskTable.AddEntity(ctx, payload, nil)
	}
	return err
}

// UpdateTask replaces the stored task record. Column moves stay within
// the board partition, so this is a single-entity write.
func (s *Storage) UpdateTask(ctx context.Context, t domain.Task) error {
	ent, err := taskToEntity(t)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(ent)
	if err == nil {
		_, err = s.taskTable.UpsertEntity(ctx, payload, nil)
	}
	return err
}

// DeleteTask removes the task record.
func (s *Storage) DeleteTask(ctx context.Context, boardID, taskID string) error {
	_, err := s.taskTable.DeleteEntity(ctx, boardID, taskID, nil)
	return err
}

// FetchBoardContents retrieves all columns and tasks of a board, in
// storage order. Sorting by order value is the caller's concern.
func (s *Storage) FetchBoardContents(ctx context.Context, boardID string) ([]domain.Column, []domain.Task, error) {
	columns, err := s.ListColumns(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	filter := "PartitionKey eq '" + escapeFilterValue(boardID) + "'"
	tasks, err := s.listTasks(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return columns, tasks, nil
}

func (s *Storage) listTasks(ctx context.Context, filter string) ([]domain.Task, error) {
	pager := s.taskTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	tasks := []domain.Task{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			var ent taskEntity
			if err := json.Unmarshal(raw, &ent); err != nil {
				return nil, err
			}
			t, err := taskFromEntity(ent)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func userFromEntity(ent userEntity) domain.User {
	return domain.User{ID: ent.RowKey, Email: ent.Email, Name: ent.Name, PasswordHash: ent.PasswordHash}
}

func boardFromEntity(ent boardEntity) domain.Board {
	return domain.Board{ID: ent.RowKey, Title: ent.Title, UserID: ent.PartitionKey}
}

func columnFromEntity(ent columnEntity) domain.Column {
	return domain.Column{ID: ent.RowKey, Title: ent.Title, BoardID: ent.PartitionKey, Order: ent.Order}
}

func columnToEntity(c domain.Column) columnEntity {
	return columnEntity{
		Entity: aztables.Entity{PartitionKey: c.BoardID, RowKey: c.ID},
		Title:  c.Title,
		Order:  c.Order,
	}
}

func taskFromEntity(ent taskEntity) (domain.Task, error) {
	t := domain.Task{
		ID:          ent.RowKey,
		Title:       ent.Title,
		Description: ent.Description,
		ColumnID:    ent.ColumnID,
		BoardID:     ent.PartitionKey,
		Order:       ent.Order,
	}
	if ent.DueDate != "" {
		due, err := time.Parse(time.RFC3339, ent.DueDate)
		if err != nil {
			return domain.Task{}, err
		}
		t.DueDate = &due
	}
	if ent.Labels != "" {
		if err := json.Unmarshal([]byte(ent.Labels), &t.Labels); err != nil {
			return domain.Task{}, err
		}
	}
	return t, nil
}

func taskToEntity(t domain.Task) (taskEntity, error) {
	ent := taskEntity{
		Entity:      aztables.Entity{PartitionKey: t.BoardID, RowKey: t.ID},
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Order:       t.Order,
	}
	if t.DueDate != nil {
		ent.DueDate = t.DueDate.UTC().Format(time.RFC3339)
	}
	if t.Labels != nil {
		data, err := json.Marshal(t.Labels)
		if err != nil {
			return taskEntity{}, err
		}
		ent.Labels = string(data)
	}
	return ent, nil
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 404
}

// escapeFilterValue doubles single quotes so user-supplied strings stay
// inert inside an OData filter literal.
func escapeFilterValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
