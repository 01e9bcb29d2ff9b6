package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
)

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (c *CategoryController) Store(cx *ctx.Context) error {
	var in services.CategoryInput
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	category, err := c.service.Create(cx.Context(), in)
	if err != nil {
		return err
	}
	return cx.Created(category)
}

func (c *CategoryController) Index(cx *ctx.Context) error {
	categories, err := c.service.List(cx.Context())
	if err != nil {
		return err
	}
	return cx.Success(categories)
}

func (c *CategoryController) Tree(cx *ctx.Context) error {
	tree, err := c.service.Tree(cx.Context())
	if err != nil {
		return err
	}
	return cx.Success(tree)
}

func (c *CategoryController) Show(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	category, err := c.service.Get(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(category)
}

func (c *CategoryController) Update(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	var in services.CategoryUpdate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	category, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		return err
	}
	return cx.Success(category)
}

func (c *CategoryController) Destroy(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		return err
	}
	return cx.Message("Category removed", nil)
}

func (c *CategoryController) Search(cx *ctx.Context) error {
	categories, err := c.service.Search(cx.Context(), cx.Query("query"))
	if err != nil {
		return err
	}
	return cx.Success(categories)
}
