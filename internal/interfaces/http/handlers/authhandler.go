package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subtrack/internal/application/user/usecases"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase *usecases.RegisterUserUseCase
	loginUseCase    *usecases.LoginUserUseCase
	logger          logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUserUseCase,
	loginUC *usecases.LoginUserUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		logger:          logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"token":   result.Token,
		"user_id": result.User.ID(),
	}, "User registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"token":   result.Token,
		"user_id": result.User.ID(),
	}, "Login successful")
}
