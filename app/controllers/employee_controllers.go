package controllers

import (
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/ctx"
)

type EmployeeController struct {
	service *services.EmployeeService
}

func NewEmployeeController(service *services.EmployeeService) *EmployeeController {
	return &EmployeeController{service: service}
}

func (c *EmployeeController) Store(cx *ctx.Context) error {
	var in services.EmployeeCreate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	employee, err := c.service.Create(cx.Context(), in)
	if err != nil {
		return err
	}
	return cx.Created(employee)
}

func (c *EmployeeController) Index(cx *ctx.Context) error {
	employees, err := c.service.List(cx.Context())
	if err != nil {
		return err
	}
	return cx.Success(employees)
}

func (c *EmployeeController) Show(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	employee, err := c.service.Get(cx.Context(), id)
	if err != nil {
		return err
	}
	return cx.Success(employee)
}

func (c *EmployeeController) Update(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	var in services.EmployeeUpdate
	if err := cx.BindJSON(&in); err != nil {
		return err
	}
	employee, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		return err
	}
	return cx.Success(employee)
}

func (c *EmployeeController) Destroy(cx *ctx.Context) error {
	id, err := cx.ParamID("id")
	if err != nil {
		return err
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		return err
	}
	return cx.NoContent()
}
