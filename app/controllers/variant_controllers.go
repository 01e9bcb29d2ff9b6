package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
)

type VariantController struct {
	service *services.VariantService
}

func NewVariantController(service *services.VariantService) *VariantController {
	return &VariantController{service: service}
}

func (c *VariantController) Store(cx *ctx.Context) error {
	var in services.VariantInput
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	variant, err := c.service.Create(cx.Context(), in)
	if err != nil {
		return err
	}
	return cx.Created(variant)
}

func (c *VariantController) Index(cx *ctx.Context) error {
	variants, err := c.service.List(cx.Context())
	if err != nil {
		return err
	}
	return cx.Success(variants)
}

func (c *VariantController) ByProduct(cx *ctx.Context) error {
	id, err := cx.ParamID("productId")
	if err != nil {
		return err
	}
	variants, err := c.service.ByProduct(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(variants)
}

func (c *VariantController) Show(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	variant, err := c.service.Get(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(variant)
}

func (c *VariantController) Update(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	var in services.VariantUpdate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	variant, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		return err
	}
	return cx.Success(variant)
}

func (c *VariantController) Destroy(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		return err
	}
	return cx.Message("Variant removed", nil)
}

func (c *VariantController) Search(cx *ctx.Context) error {
	variants, err := c.service.Search(cx.Context(), cx.Query("query"))
	if err != nil {
		return err
	}
	return cx.Success(variants)
}
