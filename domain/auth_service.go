package domain

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthStorage defines the storage methods required by AuthService.
type AuthStorage interface {
	GetUser(ctx context.Context, id string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	InsertUser(ctx context.Context, u User) error
	FindBoardByOwner(ctx context.Context, ownerID string) (*Board, error)
}

// TokenIssuer mints a signed bearer token for a user id.
type TokenIssuer interface {
	IssueToken(userID string) (string, error)
}

// Session is the result of a successful signup or login.
type Session struct {
	User  PublicUser
	Token string
}

// Profile is the authenticated user's own view, including their board
// summary.
type Profile struct {
	PublicUser
	Board BoardSummary `json:"board"`
}

// AuthService implements signup, login and profile reads.
type AuthService struct {
	st     AuthStorage
	boards BoardService
	tokens TokenIssuer
}

func NewAuthService(st AuthStorage, boards BoardService, tokens TokenIssuer) AuthService {
	return AuthService{st: st, boards: boards, tokens: tokens}
}

// SignUp registers a new user and provisions their default board. The
// user insert and the board provisioning are separate writes; a crash in
// between leaves a user without a board.
func (s AuthService) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	existing, err := s.st.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := User{ID: uuid.NewString(), Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.st.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.boards.Create(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user.Public(), Token: token}, nil
}

// Login verifies the credentials and mints a token. Unknown email and
// wrong password both map to ErrInvalidCredentials.
func (s AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.st.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user.Public(), Token: token}, nil
}

// Profile returns the caller's public fields and board summary.
func (s AuthService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.st.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	board, err := s.st.FindBoardByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	return &Profile{
		PublicUser: user.Public(),
		Board:      BoardSummary{ID: board.ID, Title: board.Title},
	}, nil
}
