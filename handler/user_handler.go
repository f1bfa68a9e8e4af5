package handler

import (
	"net/http"

	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
)

type UserHandler struct {
	registration *service.RegistrationService
	sessions     *service.SessionService
	bank         *service.BankService
}

func NewUserHandler(registration *service.RegistrationService, sessions *service.SessionService, bank *service.BankService) *UserHandler {
	return &UserHandler{registration: registration, sessions: sessions, bank: bank}
}

type registerResponse struct {
	Customer *model.Customer  `json:"customer"`
	Accounts []*model.Account `json:"accounts"`
}

// Register godoc
// @Summary      Register a customer
// @Description  Creates a customer, its default account ACC-<customer_id> and the login for it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registration body model.RegisterRequest true "Customer details and credentials"
// @Success      201  {object}  registerResponse
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      409  {object}  common.AppError "Customer ID or username already taken"
// @Router       /register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	customer, err := h.registration.Register(r.Context(), req)
	if err != nil {
		return toAppError(err, "Could not register user")
	}

	accounts, err := h.bank.AccountsForCustomer(customer.ID)
	if err != nil {
		return toAppError(err, "Could not register user")
	}

	common.WriteJSON(w, http.StatusCreated, registerResponse{Customer: customer, Accounts: accounts})
	return nil
}

// Login godoc
// @Summary      Log in
// @Description  Checks the credentials and returns a session token with the customer's accounts.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Username and password"
// @Success      200  {object}  model.Session
// @Failure      401  {object}  common.AppError "Invalid username or password"
// @Router       /login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	session, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		return toAppError(err, "Could not log in")
	}

	common.WriteJSON(w, http.StatusOK, session)
	return nil
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the session token used for this request.
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Router       /api/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, appErr := claimsFrom(r)
	if appErr != nil {
		return appErr
	}

	h.sessions.Logout(claims)
	logger.Log.WithField("username", claims.Username).Info("User logged out")

	w.WriteHeader(http.StatusNoContent)
	return nil
}
