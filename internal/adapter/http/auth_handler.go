package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"loan-backoffice/internal/adapter/middleware"
	sessionadp "loan-backoffice/internal/adapter/session"
	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/user"
	"loan-backoffice/internal/usecase/auth"
)

type AuthHandler struct {
	uc    *auth.Usecase
	codec *sessionadp.Codec
}

func NewAuthHandler(uc *auth.Usecase, codec *sessionadp.Codec) *AuthHandler {
	return &AuthHandler{uc: uc, codec: codec}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Role        user.Role `json:"role"`
	Permissions []string  `json:"permissions"`
}

type registerReq struct {
	Username         string           `json:"username"         validate:"required,min=3,max=50"`
	Password         string           `json:"password"         validate:"required,strongpwd"`
	Email            string           `json:"email"            validate:"required,email"`
	FullName         string           `json:"fullName"         validate:"required,min=2"`
	PhoneNumber      string           `json:"phoneNumber"      validate:"required,max=32"`
	Address          string           `json:"address"          validate:"required,max=300"`
	EmploymentStatus string           `json:"employmentStatus" validate:"required,max=50"`
	MonthlyIncome    *decimal.Decimal `json:"monthlyIncome"    validate:"required,decimal2"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	in := auth.LoginInput{Username: req.Username, Password: req.Password}
	if s, ok := middleware.CurrentSession(c); ok {
		in.PreviousSessionID = s.ID
	}
	res, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	value, err := h.codec.Encode(res.Session)
	if err != nil {
		return apperr.Internal("sign session", err)
	}
	c.SetCookie(h.codec.Cookie(value, res.Session.ExpiresAt))
	return c.JSON(http.StatusOK, loginResp{
		ID:          res.User.ID,
		Username:    res.User.Username,
		Role:        res.User.Role,
		Permissions: res.User.Permissions,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if s, ok := middleware.CurrentSession(c); ok {
		if err := h.uc.Logout(c.Request().Context(), s.ID); err != nil {
			return err
		}
	}
	c.SetCookie(h.codec.Clear())
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.uc.Register(c.Request().Context(), auth.RegisterInput{
		Username:         req.Username,
		Password:         req.Password,
		Email:            req.Email,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		EmploymentStatus: req.EmploymentStatus,
		MonthlyIncome:    *req.MonthlyIncome,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Registration successful", "user": u})
}

func (h *AuthHandler) Me(c echo.Context) error {
	s, _ := middleware.CurrentSession(c)
	u, err := h.uc.Me(c.Request().Context(), s.UserID)
	if err != nil {
		return apperr.Wrap("load user", err)
	}
	return c.JSON(http.StatusOK, u)
}
