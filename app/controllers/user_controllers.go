package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) Store(cx *ctx.Context) error {
	var in services.UserInput
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	user, err := c.service.Create(cx.Context(), in)
	if err != nil {
		return err
	}
	return cx.Created(user)
}

func (c *UserController) Index(cx *ctx.Context) error {
	users, err := c.service.List(cx.Context())
	if err != nil {
		return err
	}
	return cx.Success(users)
}

func (c *UserController) Show(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	user, err := c.service.Get(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(user)
}

func (c *UserController) Update(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	var in services.UserUpdate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	user, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		return err
	}
	return cx.Success(user)
}

func (c *UserController) Destroy(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		return err
	}
	return cx.Message("User deleted successfully", nil)
}
