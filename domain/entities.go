package domain

import "time"

// User is the persisted account record. PasswordHash never leaves the
// domain layer; handlers serialize PublicUser instead.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

// PublicUser is the client-facing subset of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the client-facing view of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Board is the top-level container owned by exactly one user.
type Board struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	UserID string `json:"userId"`
}

// BoardSummary is the board reference embedded in the user profile.
type BoardSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Column is a named ordered bucket of tasks within a board. Order is a
// sort key only; values may repeat or leave gaps.
type Column struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"boardId"`
	Order   int    `json:"order"`
}

// Task is a work item belonging to exactly one column. BoardID is
// denormalized from the column so ownership resolves in one lookup.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ColumnID    string     `json:"columnId"`
	BoardID     string     `json:"boardId"`
	Order       int        `json:"order"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
}

// ColumnUpdate carries a partial column update. Nil fields are left
// untouched; a non-nil Order applies even when zero.
type ColumnUpdate struct {
	Title *string `json:"title,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// TaskUpdate carries a partial task update with the same nil-means-keep
// convention.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ColumnID    *string    `json:"columnId,omitempty"`
	Order       *int       `json:"order,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
}

// ColumnWithTasks is a column together with its tasks sorted ascending
// by order.
type ColumnWithTasks struct {
	Column
	Tasks []Task `json:"tasks"`
}

// BoardView is the fully loaded board returned by board reads.
type BoardView struct {
	Board   Board             `json:"board"`
	Columns []ColumnWithTasks `json:"columns"`
}
