package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dascentral/internal/ledger"
	"dascentral/internal/middleware"
	"dascentral/internal/service"
	"dascentral/pkg/pagination"
	"dascentral/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DASHandler struct {
	configService  service.TaxConfigService
	guideService   service.GuideService
	paymentService service.PaymentService
	summaryService service.SummaryService
	accountService service.BankAccountService
}

func NewDASHandler(
	configService service.TaxConfigService,
	guideService service.GuideService,
	paymentService service.PaymentService,
	summaryService service.SummaryService,
	accountService service.BankAccountService,
) *DASHandler {
	return &DASHandler{
		configService:  configService,
		guideService:   guideService,
		paymentService: paymentService,
		summaryService: summaryService,
		accountService: accountService,
	}
}

func (h *DASHandler) RegisterRoutes(router *gin.RouterGroup) {
	das := router.Group("/api/das")
	das.Use(middleware.RequireAuth())
	{
		das.GET("/config", h.GetConfig)
		das.PUT("/config", h.SetConfig)
		das.GET("/guides/:year", h.GetYearView)
		das.POST("/guides/:id/pay", h.PayGuide)
		das.POST("/guides/pay-batch", h.PayBatch)
		das.GET("/summary", h.GetSummary)
		das.GET("/payments", h.ListPayments)
	}
}

// GetConfig returns the account's recurring obligation parameters
// @Summary      Get tax config
// @Description  Returns the base value and due day configured for the account, or 404 if not configured yet
// @Tags         das
// @Security     BearerAuth
// @Produce      json
// @Param        account_id  query     string  true  "Business account ID"
// @Success      200         {object}  response.Response{data=service.TaxConfigResponse}
// @Failure      404         {object}  response.Response
// @Router       /api/das/config [get]
func (h *DASHandler) GetConfig(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	config, err := h.configService.GetConfig(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	if config == nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Tax config not set for this account"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, config))
}

// SetConfig creates or updates the account's recurring obligation parameters
// @Summary      Set tax config
// @Description  Sets the monthly base value and due day. Existing guides keep their snapshotted values.
// @Tags         das
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        account_id  query     string                         true  "Business account ID"
// @Param        payload     body      service.SetTaxConfigRequest    true  "Config payload"
// @Success      200         {object}  response.Response{data=service.TaxConfigResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/das/config [put]
func (h *DASHandler) SetConfig(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req service.SetTaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	config, err := h.configService.SetConfig(c.Request.Context(), accountID, req, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, config))
}

// GetYearView materializes and returns the 12-month guide table for a year
// @Summary      Year view
// @Description  Ensures guides exist for the year (when configured) and returns the derived status of every month
// @Tags         das
// @Security     BearerAuth
// @Produce      json
// @Param        year        path      int     true  "Calendar year"
// @Param        account_id  query     string  true  "Business account ID"
// @Success      200         {object}  response.Response{data=service.YearViewResponse}
// @Failure      400         {object}  response.Response
// @Router       /api/das/guides/{year} [get]
func (h *DASHandler) GetYearView(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid year"))
		return
	}

	view, err := h.guideService.GetYearView(c.Request.Context(), accountID, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// PayGuide settles one guide against a funding account
// @Summary      Pay guide
// @Description  Debits the funding account by the given final amount and marks the guide paid
// @Tags         das
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Guide ID"
// @Param        payload  body      service.PayGuideRequest   true  "Payment payload"
// @Success      200      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/das/guides/{id}/pay [post]
func (h *DASHandler) PayGuide(c *gin.Context) {
	var req service.PayGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.Pay(c.Request.Context(), c.Param("id"), req, currentUserID(c))
	if err != nil {
		c.JSON(paymentErrorStatus(err), response.Error(paymentErrorStatus(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

// PayBatch settles a selection of guides sequentially
// @Summary      Pay guide batch
// @Description  Settles each guide at its base value, one at a time in selection order; stops at the first ledger failure and reports the settled prefix
// @Tags         das
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.PayBatchRequest  true  "Batch payload"
// @Success      200      {object}  response.Response{data=service.BatchPaymentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/das/guides/pay-batch [post]
func (h *DASHandler) PayBatch(c *gin.Context) {
	var req service.PayBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	// Partial success is data, not a transport error: the batch result always
	// comes back 200 with any failure embedded in the body.
	result, err := h.paymentService.PayBatch(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetSummary returns paid/pending totals across all persisted guides
// @Summary      Summary
// @Description  Lifetime and per-year paid/pending totals for the account
// @Tags         das
// @Security     BearerAuth
// @Produce      json
// @Param        account_id  query     string  true  "Business account ID"
// @Success      200         {object}  response.Response{data=service.SummaryResponse}
// @Router       /api/das/summary [get]
func (h *DASHandler) GetSummary(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// ListPayments returns the paginated debit history of a funding account
// @Summary      Payment history
// @Description  Ledger entries recorded against a funding account, newest first
// @Tags         das
// @Security     BearerAuth
// @Produce      json
// @Param        bank_account_id  query     string  true   "Funding account ID"
// @Param        page             query     int     false  "Page number (default 1)"
// @Param        limit            query     int     false  "Number of items per page (default 20)"
// @Success      200              {object}  response.Response{data=object}
// @Router       /api/das/payments [get]
func (h *DASHandler) ListPayments(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.accountService.ListPayments(c.Request.Context(), c.Query("bank_account_id"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"payments": entries,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// --- Helpers ---

func parseAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, err := uuid.Parse(c.Query("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid or missing account_id"))
		return uuid.Nil, false
	}
	return accountID, true
}

func currentUserID(c *gin.Context) string {
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)
	return userIDStr
}

func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGuideNotFound), errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGuideAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, service.ErrGuideNotPayable), errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
