package api

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go-bankledger/actions"
	"go-bankledger/models"
	"go-bankledger/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
}

type AccountRequest struct {
	CustomerID     int             `json:"customerId"`
	AccountType    string          `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

type AmountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Handler serves the dashboard API on top of the dispatcher
type Handler struct {
	dispatcher *actions.Dispatcher
	store      *store.Store
	logger     *zap.Logger
	bankName   string
}

func NewHandler(dispatcher *actions.Dispatcher, logger *zap.Logger, bankName string) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		store:      dispatcher.Store(),
		logger:     logger,
		bankName:   bankName,
	}
}

// Router builds the gin engine with every route registered
func (h *Handler) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(h.logger))
	if mw := corsFor(allowedOrigins); mw != nil {
		r.Use(mw)
	}

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/state", h.getState)
	api.GET("/summary", h.getSummary)
	api.POST("/actions", h.dispatchAction)

	api.POST("/customers", h.createCustomer)
	api.GET("/customers", h.listCustomers)
	api.GET("/customers/:customerId", h.getCustomer)
	api.GET("/customers/:customerId/accounts", h.getCustomerAccounts)

	api.POST("/accounts", h.createAccount)
	api.GET("/accounts", h.listAccounts)
	api.GET("/accounts/:accountNumber", h.getAccount)
	api.POST("/accounts/:accountNumber/deposit", h.deposit)
	api.POST("/accounts/:accountNumber/withdraw", h.withdraw)
	api.POST("/accounts/:accountNumber/deactivate", h.deactivate)
	api.GET("/accounts/:accountNumber/transactions", h.getTransactions)

	api.POST("/transfers", h.transfer)
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	var errs []string
	if req.FirstName == "" {
		errs = append(errs, "First name cannot be empty")
	} else if !nameRegex.MatchString(req.FirstName) {
		errs = append(errs, "First name must contain only letters and spaces")
	}
	if req.LastName == "" {
		errs = append(errs, "Last name cannot be empty")
	} else if !nameRegex.MatchString(req.LastName) {
		errs = append(errs, "Last name must contain only letters and spaces")
	}
	if req.Email == "" {
		errs = append(errs, "Email cannot be empty")
	} else if !emailRegex.MatchString(req.Email) {
		errs = append(errs, "Invalid email format")
	}
	action := actions.CreateCustomer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if req.DateOfBirth != "" {
		dob, err := actions.ParseDate(req.DateOfBirth)
		if err != nil {
			errs = append(errs, "Date of birth must be YYYY-MM-DD")
		}
		action.DateOfBirth = dob
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	res, err := h.dispatcher.Dispatch(c.Request.Context(), action)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res.Customer)
}

func (h *Handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.store.Customers()})
}

func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := customerIDParam(c)
	if !ok {
		return
	}
	customer, found := h.store.Customer(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) getCustomerAccounts(c *gin.Context) {
	id, ok := customerIDParam(c)
	if !ok {
		return
	}
	if _, found := h.store.Customer(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	accounts := h.store.AccountsByCustomer(id)
	if accounts == nil {
		accounts = []models.Account{}
	}
	resp := struct {
		CustomerID int              `json:"customerId"`
		Accounts   []models.Account `json:"accounts"`
	}{
		CustomerID: id,
		Accounts:   accounts,
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	accountType, err := models.ParseAccountType(req.AccountType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Account type must be one of Savings, Checking, Business, Investment"}})
		return
	}

	res, err := h.dispatcher.Dispatch(c.Request.Context(), actions.CreateAccount{
		CustomerID:     req.CustomerID,
		AccountType:    accountType,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res.Account)
}

func (h *Handler) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": h.store.Accounts()})
}

func (h *Handler) getAccount(c *gin.Context) {
	account, found := h.store.Account(c.Param("accountNumber"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) deposit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	h.respond(c, http.StatusOK, actions.Deposit{
		AccountNumber: c.Param("accountNumber"),
		Amount:        req.Amount,
		Description:   req.Description,
	})
}

func (h *Handler) withdraw(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	h.respond(c, http.StatusOK, actions.Withdraw{
		AccountNumber: c.Param("accountNumber"),
		Amount:        req.Amount,
		Description:   req.Description,
	})
}

func (h *Handler) deactivate(c *gin.Context) {
	h.respond(c, http.StatusOK, actions.DeactivateAccount{AccountNumber: c.Param("accountNumber")})
}

// respond dispatches action and answers with the affected account and entries
func (h *Handler) respond(c *gin.Context, status int, action actions.Action) {
	res, err := h.dispatcher.Dispatch(c.Request.Context(), action)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := struct {
		Account      *models.Account      `json:"account"`
		Transactions []models.Transaction `json:"transactions,omitempty"`
	}{
		Account:      res.Account,
		Transactions: res.Transactions,
	}
	c.JSON(status, resp)
}

func (h *Handler) getTransactions(c *gin.Context) {
	number := c.Param("accountNumber")
	if _, found := h.store.Account(number); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	var filter models.TransactionType
	if raw := c.Query("type"); raw != "" {
		t, err := models.ParseTransactionType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter = t
	}

	transactions := h.store.Transactions(number)
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if filter != "" && tx.Type != filter {
			continue
		}
		filtered = append(filtered, tx)
	}

	resp := struct {
		AccountNumber string               `json:"accountNumber"`
		Transactions  []models.Transaction `json:"transactions"`
	}{
		AccountNumber: number,
		Transactions:  filtered,
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	if req.FromAccountNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"From account number cannot be empty"}})
		return
	}

	res, err := h.dispatcher.Dispatch(c.Request.Context(), actions.Transfer{
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		Amount:            req.Amount,
		Description:       req.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res.Transfer)
}

func (h *Handler) dispatchAction(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	action, err := actions.Decode(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.dispatcher.Dispatch(c.Request.Context(), action)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *Handler) getSummary(c *gin.Context) {
	summary := h.store.Summary()
	summary.BankName = h.bankName
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": store.Code(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrCustomerNotFound), errors.Is(err, store.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAccountInactive):
		return http.StatusConflict
	case errors.Is(err, store.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrInvalidAmount),
		errors.Is(err, store.ErrInvalidDestination),
		errors.Is(err, store.ErrInvalidAccountType),
		errors.Is(err, actions.ErrUnknownAction):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func customerIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("customerId")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer ID must be a number"})
		return 0, false
	}
	return id, true
}
