package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
	"github.com/sheshine/backoffice/pkg/errs"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Login(cx *ctx.Context) error {
	var in services.Credentials
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	result, err := c.service.Login(cx.Context(), in)
	if err != nil {
		return err
	}
	return cx.Message("Login successful", result)
}

// Me returns the account behind the bearer token.
func (c *AuthController) Me(cx *ctx.Context) error {
	id, ok := cx.Identity()
	if !ok {
		return errs.Unauthorized("Not authorized, no token")
	}
	user, err := c.service.Me(cx.Context(), id.ID)
	if err != nil {
		return err
	}
	return cx.Success(user)
}
