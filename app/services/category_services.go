package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
	"github.com/sheshine/backoffice/pkg/cache"
	"github.com/sheshine/backoffice/pkg/collection"
	"github.com/sheshine/backoffice/pkg/errs"
)

const (
	categoryListKey = "catalog:categories:list"
	categoryTreeKey = "catalog:categories:tree"
	categoryTTL     = 10 * time.Minute
)

var categoryCacheKeys = []string{categoryListKey, categoryTreeKey}

type CategoryInput struct {
	Name     string `json:"name"     validate:"required"`
	ParentID *uint  `json:"parentId"`
	Image    string `json:"image"`
}

// CategoryUpdate merges supplied fields. A parentId of 0 makes the
// category a root.
type CategoryUpdate struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	ParentID *uint   `json:"parentId"`
	Image    *string `json:"image"`
}

// CategoryNode is a category with its direct children, in insertion order.
type CategoryNode struct {
	models.Category
	Children []*CategoryNode `json:"children"`
}

type CategoryService struct {
	db         *gorm.DB
	categories *repositories.CategoryRepository
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db, categories: repositories.NewCategoryRepository(db)}
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in, nil); err != nil {
		return models.Category{}, err
	}

	category := models.Category{Name: in.Name, Image: in.Image}
	if in.ParentID != nil && *in.ParentID != 0 {
		if err := s.requireParent(ctx, *in.ParentID); err != nil {
			return models.Category{}, err
		}
		category.ParentID = in.ParentID
	}

	if err := s.categories.Create(ctx, &category); err != nil {
		return models.Category{}, err
	}
	fireCatalog(EntityCategory, ActionCreated, category.ID)
	return category, nil
}

func (s *CategoryService) requireParent(ctx context.Context, id uint) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return invalidField("parentId", "does not exist")
	}
	return nil
}

// List returns the flat category collection, cached while Redis is up.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return cache.Remember(ctx, categoryListKey, categoryTTL, func() ([]models.Category, error) {
		categories, err := s.categories.All(ctx)
		return nonNil(categories), err
	})
}

// Tree returns the category forest.
func (s *CategoryService) Tree(ctx context.Context) ([]*CategoryNode, error) {
	return cache.Remember(ctx, categoryTreeKey, categoryTTL, func() ([]*CategoryNode, error) {
		categories, err := s.categories.All(ctx)
		if err != nil {
			return nil, err
		}
		return BuildTree(categories), nil
	})
}

// BuildTree links a flat, id-ordered category set into a forest. A
// category whose parent is missing surfaces as a root, and so does any
// category caught in a parent cycle.
func BuildTree(categories []models.Category) []*CategoryNode {
	present := collection.KeyBy(categories, func(c models.Category) uint { return c.ID })

	parentKey := func(c models.Category) string {
		if c.ParentID == nil || *c.ParentID == c.ID {
			return ""
		}
		if _, ok := present[*c.ParentID]; !ok {
			return ""
		}
		return strconv.FormatUint(uint64(*c.ParentID), 10)
	}
	children := collection.GroupBy(categories, parentKey)

	seen := make(map[uint]bool, len(categories))
	var build func(c models.Category) *CategoryNode
	build = func(c models.Category) *CategoryNode {
		seen[c.ID] = true
		node := &CategoryNode{Category: c, Children: []*CategoryNode{}}
		for _, child := range children[strconv.FormatUint(uint64(c.ID), 10)] {
			if !seen[child.ID] {
				node.Children = append(node.Children, build(child))
			}
		}
		return node
	}

	roots := []*CategoryNode{}
	for _, c := range children[""] {
		roots = append(roots, build(c))
	}
	for _, c := range categories {
		if !seen[c.ID] {
			roots = append(roots, build(c))
		}
	}
	return roots
}

func (s *CategoryService) Get(ctx context.Context, id uint) (models.Category, error) {
	category, err := s.categories.Find(ctx, id)
	return category, notFound(err, "Category not found")
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryUpdate) (models.Category, error) {
	if err := check(in, nil); err != nil {
		return models.Category{}, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Category{}, invalidField("name", "is required")
		}
		category.Name = name
	}
	if in.Image != nil {
		category.Image = *in.Image
	}
	if in.ParentID != nil {
		switch parent := *in.ParentID; {
		case parent == 0:
			category.ParentID = nil
		case parent == id:
			return models.Category{}, invalidField("parentId", "a category cannot be its own parent")
		default:
			if err := s.requireParent(ctx, parent); err != nil {
				return models.Category{}, err
			}
			category.ParentID = &parent
		}
	}

	if err := s.categories.Save(ctx, &category); err != nil {
		return models.Category{}, err
	}
	fireCatalog(EntityCategory, ActionUpdated, category.ID)
	return category, nil
}

// Delete removes the category and its direct children in one transaction.
// Grandchildren keep their now dangling parentId.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := repositories.NewCategoryRepository(tx)

		ok, err := categories.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("Category not found")
		}

		if _, err := categories.DeleteChildren(ctx, id); err != nil {
			return err
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, "Category not found")
	}

	fireCatalog(EntityCategory, ActionDeleted, id)
	return nil
}

func (s *CategoryService) Search(ctx context.Context, q string) ([]models.Category, error) {
	categories, err := s.categories.SearchByName(ctx, q)
	return nonNil(categories), err
}
