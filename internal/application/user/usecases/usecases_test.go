package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"subtrack/internal/domain/user"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	nextID  uint
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*user.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byEmail[u.Email()]; ok {
		return errors.New("UNIQUE constraint failed: users.email")
	}
	if err := u.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.byEmail[u.Email()] = u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byEmail {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byEmail[email], nil
}

// fakeHasher prefixes instead of hashing so tests can assert on the value.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("password verification failed")
	}
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Generate(userID uint) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	res, err := uc.Execute(context.Background(), RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.User.ID() == 0 {
		t.Error("registered user should have an ID")
	}
	if res.User.PasswordHash() != "hashed:s3cret" {
		t.Errorf("password hash = %q", res.User.PasswordHash())
	}
	if res.Token != fmt.Sprintf("token-%d", res.User.ID()) {
		t.Errorf("token = %q", res.Token)
	}
}

func TestRegisterUser_WithoutPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	res, err := uc.Execute(context.Background(), RegisterUserCommand{
		Username: "bob",
		Email:    "bob@example.com",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.User.HasPassword() {
		t.Error("user registered without a password must not carry a hash")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	cmd := RegisterUserCommand{Username: "alice", Email: "alice@example.com", Password: "pw"}
	if _, err := uc.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	_, err := uc.Execute(context.Background(), cmd)
	if !apperrors.IsConflictError(err) {
		t.Fatalf("error = %v, want conflict", err)
	}
}

func TestRegisterUser_InvalidFields(t *testing.T) {
	uc := NewRegisterUserUseCase(newFakeUserRepo(), fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"short username", RegisterUserCommand{Username: "ab", Email: "a@example.com"}},
		{"empty username", RegisterUserCommand{Email: "a@example.com"}},
		{"empty email", RegisterUserCommand{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			if !apperrors.IsValidationError(err) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())
	login := NewLoginUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	reg, err := register.Execute(context.Background(), RegisterUserCommand{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := login.Execute(context.Background(), LoginUserCommand{Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID() != reg.User.ID() {
		t.Errorf("logged-in user ID = %d, want %d", res.User.ID(), reg.User.ID())
	}
	if res.Token == "" {
		t.Error("login should issue a token")
	}
}

func TestLoginUser_Unauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())
	login := NewLoginUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	if _, err := register.Execute(context.Background(), RegisterUserCommand{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := login.Execute(context.Background(), LoginUserCommand{Email: "nobody@example.com", Password: "s3cret"})
	if appErr := apperrors.GetAppError(err); appErr == nil || appErr.Type != apperrors.ErrorTypeUnauthorized {
		t.Errorf("unknown email: error = %v, want unauthorized", err)
	}

	_, err = login.Execute(context.Background(), LoginUserCommand{Email: "alice@example.com", Password: "wrong"})
	if appErr := apperrors.GetAppError(err); appErr == nil || appErr.Type != apperrors.ErrorTypeUnauthorized {
		t.Errorf("wrong password: error = %v, want unauthorized", err)
	}
}

func TestLoginUser_PasswordlessAccount(t *testing.T) {
	repo := newFakeUserRepo()
	register := NewRegisterUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())
	login := NewLoginUserUseCase(repo, fakeHasher{}, fakeTokenIssuer{}, quietLogger())

	if _, err := register.Execute(context.Background(), RegisterUserCommand{
		Username: "bob", Email: "bob@example.com",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// No stored hash means any password is accepted.
	if _, err := login.Execute(context.Background(), LoginUserCommand{Email: "bob@example.com", Password: "anything"}); err != nil {
		t.Errorf("passwordless login: %v", err)
	}
}
