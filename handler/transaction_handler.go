package handler

import (
	"net/http"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"

	"github.com/sirupsen/logrus"
)

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	bank *service.BankService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(bank *service.BankService) *TransactionHandler {
	return &TransactionHandler{bank: bank}
}

// CreateTransfer godoc
// @Summary      Transfer money between accounts
// @Description  Moves money from an account owned by the authenticated customer to any other account.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        accountNumber path string true "Source account number"
// @Param        transfer body model.TransferRequest true "Recipient and amount"
// @Success      201  {object}  model.TransferResult
// @Failure      400  {object}  common.AppError "Bad Request (e.g., insufficient funds, same account, invalid amount)"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Forbidden: User does not own the source account"
// @Failure      404  {object}  common.AppError "Sender or recipient account not found"
// @Failure      500  {object}  common.AppError "Internal server error while processing transfer"
// @Router       /api/accounts/{accountNumber}/transfers [post]
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, appErr := claimsFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.TransferRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	from := r.PathValue("accountNumber")
	logger.Log.WithFields(logrus.Fields{
		"customer_id":  claims.CustomerID,
		"from_account": from,
		"to_account":   req.ToAccountNumber,
		"amount":       req.Amount.String(),
	}).Info("Transfer request received")

	if err := h.bank.CheckOwnership(claims.CustomerID, from); err != nil {
		return toAppError(err, "Could not process transfer")
	}

	result, err := h.bank.Transfer(r.Context(), from, req.ToAccountNumber, req.Amount)
	if err != nil {
		return toAppError(err, "Could not process transfer")
	}

	common.WriteJSON(w, http.StatusCreated, result)
	return nil
}

// ListTransactionsForAccount godoc
// @Summary      List account transaction history
// @Description  Retrieves the transaction history for an account owned by the authenticated customer.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        accountNumber path string true "Account number"
// @Success      200  {array}   model.Transaction "A list of transactions for the account"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      403  {object}  common.AppError "Forbidden: User does not own the account"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error while retrieving transactions"
// @Router       /api/accounts/{accountNumber}/transactions [get]
func (h *TransactionHandler) ListTransactionsForAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, appErr := claimsFrom(r)
	if appErr != nil {
		return appErr
	}

	accountNumber := r.PathValue("accountNumber")
	if err := h.bank.CheckOwnership(claims.CustomerID, accountNumber); err != nil {
		return toAppError(err, "Could not retrieve transactions")
	}

	transactions, err := h.bank.TransactionHistory(accountNumber)
	if err != nil {
		return toAppError(err, "Could not retrieve transactions")
	}

	common.WriteJSON(w, http.StatusOK, transactions)
	return nil
}
