package handler

import (
	"context"
	"net/http"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	bank *service.BankService
}

func NewAccountHandler(bank *service.BankService) *AccountHandler {
	return &AccountHandler{bank: bank}
}

// CreateAccount godoc
// @Summary      Open an account
// @Description  Opens another account, with a zero balance, for the authenticated customer.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        account body model.OpenAccountRequest true "Number and type of the new account"
// @Success      201  {object}  model.Account
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      409  {object}  common.AppError "Account number already in use"
// @Failure      500  {object}  common.AppError "Internal server error while opening the account"
// @Router       /api/accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, appErr := claimsFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.OpenAccountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":    claims.CustomerID,
		"account_number": req.AccountNumber,
	})
	log.Info("Create account request received")

	account := model.NewAccount(req.AccountNumber, claims.CustomerID, decimal.Zero, req.Type)
	if err := h.bank.OpenAccount(r.Context(), claims.CustomerID, account); err != nil {
		return toAppError(err, "Could not create account")
	}

	common.WriteJSON(w, http.StatusCreated, account)
	return nil
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Returns every account of the authenticated customer with its balance.
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Account
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      404  {object}  common.AppError "Customer not found"
// @Router       /api/accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, appErr := claimsFrom(r)
	if appErr != nil {
		return appErr
	}

	accounts, err := h.bank.AccountsForCustomer(claims.CustomerID)
	if err != nil {
		return toAppError(err, "Could not retrieve accounts")
	}

	common.WriteJSON(w, http.StatusOK, accounts)
	return nil
}

// Deposit godoc
// @Summary      Deposit money
// @Description  Credits an account owned by the authenticated customer.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        accountNumber path string true "Account number"
// @Param        deposit body model.AmountRequest true "Amount to deposit"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid amount"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Forbidden: User does not own the account"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/accounts/{accountNumber}/deposits [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.applyAmount(w, r, "Deposit", h.bank.Deposit)
}

// Withdraw godoc
// @Summary      Withdraw money
// @Description  Debits an account owned by the authenticated customer.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        accountNumber path string true "Account number"
// @Param        withdrawal body model.AmountRequest true "Amount to withdraw"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid amount or insufficient funds"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Forbidden: User does not own the account"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/accounts/{accountNumber}/withdrawals [post]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.applyAmount(w, r, "Withdrawal", h.bank.Withdraw)
}

type amountOperation func(ctx context.Context, accountNumber string, amount decimal.Decimal) (model.Transaction, error)

func (h *AccountHandler) applyAmount(w http.ResponseWriter, r *http.Request, name string, op amountOperation) *common.AppError {
	claims, appErr := claimsFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.AmountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	accountNumber := r.PathValue("accountNumber")
	logger.Log.WithFields(logrus.Fields{
		"customer_id":    claims.CustomerID,
		"account_number": accountNumber,
		"amount":         req.Amount.String(),
	}).Info(name + " request received")

	if err := h.bank.CheckOwnership(claims.CustomerID, accountNumber); err != nil {
		return toAppError(err, "Could not process "+name)
	}

	transaction, err := op(r.Context(), accountNumber, req.Amount)
	if err != nil {
		return toAppError(err, "Could not process "+name)
	}

	common.WriteJSON(w, http.StatusCreated, transaction)
	return nil
}
