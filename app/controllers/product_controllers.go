package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
	"github.com/sheshine/backoffice/pkg/orm"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (c *ProductController) Store(cx *ctx.Context) error {
	var in services.ProductInput
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	created, err := c.service.Create(cx.Context(), in)
	if err != nil {
		return err
	}
	return cx.Created(created)
}

// Index pages only when both page and limit are given.
func (c *ProductController) Index(cx *ctx.Context) error {
	page, err := c.service.List(cx.Context(), orm.ParsePage(cx.Query("page"), cx.Query("limit")))
	if err != nil {
		return err
	}
	return cx.Success(page)
}

func (c *ProductController) Show(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	product, err := c.service.Get(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(product)
}

func (c *ProductController) Update(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	var in services.ProductUpdate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	product, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		return err
	}
	return cx.Success(product)
}

func (c *ProductController) Destroy(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		return err
	}
	return cx.Message("Product removed", nil)
}

func (c *ProductController) Search(cx *ctx.Context) error {
	products, err := c.service.Search(cx.Context(), cx.Query("query"))
	if err != nil {
		return err
	}
	return cx.Success(products)
}

func (c *ProductController) ByCategory(cx *ctx.Context) error {
	id, err := cx.ParamID("categoryId")
	if err != nil {
		return err
	}
	products, err := c.service.ByCategory(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(products)
}

// Similar lists the category's products with their stock totals.
func (c *ProductController) Similar(cx *ctx.Context) error {
	id, err := cx.ParamID("categoryId")
	if err != nil {
		return err
	}
	products, err := c.service.ByCategoryWithStock(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(products)
}
