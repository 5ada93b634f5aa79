package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"subtrack/internal/application/subscription/dto"
	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/application/subscription/validation"
	"subtrack/internal/interfaces/http/middleware"
	"subtrack/internal/shared/dateutil"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUseCase       *usecases.CreateSubscriptionUseCase
	updateUseCase       *usecases.UpdateSubscriptionUseCase
	deleteUseCase       *usecases.DeleteSubscriptionUseCase
	advanceUseCase      *usecases.AdvanceNextPaymentUseCase
	listActiveUseCase   *usecases.ListActiveSubscriptionsUseCase
	listUpcomingUseCase *usecases.ListUpcomingPaymentsUseCase
	summaryUseCase      *usecases.MonthlySummaryUseCase
	logger              logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	updateUC *usecases.UpdateSubscriptionUseCase,
	deleteUC *usecases.DeleteSubscriptionUseCase,
	advanceUC *usecases.AdvanceNextPaymentUseCase,
	listActiveUC *usecases.ListActiveSubscriptionsUseCase,
	listUpcomingUC *usecases.ListUpcomingPaymentsUseCase,
	summaryUC *usecases.MonthlySummaryUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUseCase:       createUC,
		updateUseCase:       updateUC,
		deleteUseCase:       deleteUC,
		advanceUseCase:      advanceUC,
		listActiveUseCase:   listActiveUC,
		listUpcomingUseCase: listUpcomingUC,
		summaryUseCase:      summaryUC,
		logger:              logger,
	}
}

// SubscriptionRequest is shared by create and update. Every field is a
// pointer so partial updates can distinguish absent from empty.
type SubscriptionRequest struct {
	Name            *string     `json:"name"`
	Amount          *FlexString `json:"amount"`
	Periodicity     *string     `json:"periodicity"`
	StartDate       *string     `json:"start_date"`
	NextPaymentDate *string     `json:"next_payment_date"`
}

func (r *SubscriptionRequest) toInput() validation.Input {
	return validation.Input{
		Name:            r.Name,
		Amount:          r.Amount.stringPtr(),
		Periodicity:     r.Periodicity,
		StartDate:       r.StartDate,
		NextPaymentDate: r.NextPaymentDate,
	}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	sub, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		UserID: userID,
		Fields: req.toInput(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"subscription": dto.ToSubscriptionDTO(sub)}, "Subscription created successfully")
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	subs, err := h.listActiveUseCase.Execute(c.Request.Context(), usecases.ListActiveSubscriptionsQuery{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"subscriptions": dto.ToSubscriptionDTOs(subs)})
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	subscriptionID, ok := pathID(c)
	if !ok {
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	sub, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateSubscriptionCommand{
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Fields:         req.toInput(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"subscription": dto.ToSubscriptionDTO(sub)}, "Subscription updated successfully")
}

func (h *SubscriptionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	subscriptionID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteSubscriptionCommand{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, nil, "Subscription deleted successfully")
}

func (h *SubscriptionHandler) AdvanceNextPayment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	subscriptionID, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := h.advanceUseCase.Execute(c.Request.Context(), usecases.AdvanceNextPaymentCommand{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"subscription": dto.ToSubscriptionDTO(sub)}, "Next payment date updated")
}

func (h *SubscriptionHandler) ListUpcoming(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	days := usecases.DefaultUpcomingHorizonDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	result, err := h.listUpcomingUseCase.Execute(c.Request.Context(), usecases.ListUpcomingPaymentsQuery{
		UserID:      userID,
		HorizonDays: days,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	today := dateutil.Today()
	payments := make([]*dto.UpcomingPaymentDTO, 0, len(result.Subscriptions))
	for _, sub := range result.Subscriptions {
		payments = append(payments, dto.ToUpcomingPaymentDTO(sub, today))
	}

	utils.OKResponse(c, gin.H{
		"upcoming_payments": payments,
		"total_amount":      result.TotalAmount.String(),
	})
}

func (h *SubscriptionHandler) MonthlySummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Token is missing")
		return
	}

	now := time.Now().UTC()
	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return
	}
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return
	}

	result, err := h.summaryUseCase.Execute(c.Request.Context(), usecases.MonthlySummaryQuery{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payments := make([]*dto.MonthlyPaymentDTO, 0, len(result.UpcomingPayments))
	for _, sub := range result.UpcomingPayments {
		payments = append(payments, dto.ToMonthlyPaymentDTO(sub))
	}

	utils.OKResponse(c, gin.H{
		"total_subscriptions":  result.TotalSubscriptions,
		"total_monthly_amount": result.TotalMonthlyAmount.String(),
		"upcoming_payments":    payments,
	})
}

func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid subscription ID")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return value, true
}
