package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/user"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
}

type RegisterUserResult struct {
	User  *user.User
	Token string
}

type RegisterUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check for existing user", "error", err, "email", cmd.Email)
		return nil, apperrors.NewInternalError("failed to register user", err.Error())
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("User already exists")
	}

	passwordHash := ""
	if cmd.Password != "" {
		passwordHash, err = uc.hasher.Hash(cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, apperrors.NewInternalError("failed to register user", err.Error())
		}
	}

	newUser, err := user.NewUser(cmd.Username, cmd.Email, passwordHash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("User already exists")
		}
		uc.logger.Errorw("failed to persist user", "error", err)
		return nil, apperrors.NewInternalError("failed to register user", err.Error())
	}

	token, err := uc.tokens.Generate(newUser.ID())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_id", newUser.ID())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "username", newUser.Username())
	return &RegisterUserResult{User: newUser, Token: token}, nil
}
