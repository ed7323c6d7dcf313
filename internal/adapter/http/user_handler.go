package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-backoffice/internal/adapter/middleware"
	"loan-backoffice/internal/domain/user"
	ucuser "loan-backoffice/internal/usecase/user"
)

type UserHandler struct{ uc *ucuser.Usecase }

func NewUserHandler(uc *ucuser.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type createUserReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,strongpwd"`
	Email    string `json:"email"    validate:"required,email"`
	FullName string `json:"fullName" validate:"required,min=2"`
	Role     string `json:"role"     validate:"required,role"`
}

type updateRoleReq struct {
	Role string `json:"role" validate:"required,role"`
}

type updateUserStatusReq struct {
	Status string `json:"status" validate:"required,userstatus"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := bind(c, &req); err != nil {
		return err
	}
	actor, _ := middleware.CurrentUser(c)
	u, err := h.uc.Create(c.Request().Context(), ucuser.CreateInput{
		ActorRole: actor.Role,
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      user.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req updateRoleReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.uc.UpdateRole(c.Request().Context(), currentActor(c), id, user.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req updateUserStatusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.uc.UpdateStatus(c.Request().Context(), currentActor(c), id, user.Status(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func currentActor(c echo.Context) ucuser.Actor {
	a := ucuser.Actor{ID: actorID(c)}
	if u, ok := middleware.CurrentUser(c); ok {
		a.Role = u.Role
	}
	return a
}
