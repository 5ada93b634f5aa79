package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/user"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	User  *user.User
	Token string
}

type LoginUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "error", err, "email", cmd.Email)
		return nil, apperrors.NewInternalError("failed to log in", err.Error())
	}
	if u == nil {
		return nil, apperrors.NewUnauthorizedError("User not found")
	}

	// Accounts registered without a password skip credential verification.
	if u.HasPassword() {
		if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
			uc.logger.Warnw("login rejected", "user_id", u.ID())
			return nil, apperrors.NewUnauthorizedError("Invalid credentials")
		}
	}

	token, err := uc.tokens.Generate(u.ID())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID())
	return &LoginUserResult{User: u, Token: token}, nil
}
