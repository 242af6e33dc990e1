package handler

import (
	"net/http"

	"dascentral/internal/middleware"
	"dascentral/internal/service"
	"dascentral/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccountHandler struct {
	accountService service.BankAccountService
}

func NewAccountHandler(accountService service.BankAccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	accounts := router.Group("/api/accounts")
	accounts.Use(middleware.RequireAuth())
	{
		accounts.GET("", h.ListAccounts)
		accounts.POST("", h.CreateAccount)
	}
}

// ListAccounts returns the caller's funding accounts
// @Summary      List funding accounts
// @Description  Returns the funding accounts owned by the authenticated user, for payer choice
// @Tags         accounts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.BankAccountResponse}
// @Router       /api/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, accounts))
}

// CreateAccount creates a funding account for the caller
// @Summary      Create funding account
// @Description  Creates a funding account with an optional initial balance
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBankAccountRequest  true  "Account payload"
// @Success      201      {object}  response.Response{data=service.BankAccountResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	ownerID, ok := currentOwnerID(c)
	if !ok {
		return
	}

	var req service.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), ownerID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, account))
}

func currentOwnerID(c *gin.Context) (uuid.UUID, bool) {
	ownerID, err := uuid.Parse(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Token subject is not a valid user id"))
		return uuid.Nil, false
	}
	return ownerID, true
}
