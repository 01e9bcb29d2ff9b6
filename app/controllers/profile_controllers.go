package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
)

type ProfileController struct {
	service *services.ProfileService
}

func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{service: service}
}

func (c *ProfileController) Index(cx *ctx.Context) error {
	profiles, err := c.service.List(cx.Context())
	if err != nil {
		return err
	}
	return cx.Success(profiles)
}

func (c *ProfileController) Show(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	profile, err := c.service.Get(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(profile)
}

func (c *ProfileController) Update(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	var in services.ProfileUpdate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	profile, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		return err
	}
	return cx.Message("Profile updated successfully", profile)
}

func (c *ProfileController) Destroy(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		return err
	}
	return cx.Message("Profile deleted successfully", nil)
}
