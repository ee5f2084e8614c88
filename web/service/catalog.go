package service

import (
	"fmt"
	"strings"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/database/model"
	"github.com/ecocart/ecocart/web/cache"
)

// Carbon impact classes in kg CO2 per unit.
const (
	impactLowMax    = 1.0
	impactMediumMax = 3.0
)

// CategoryService reads the read-only category tree.
type CategoryService struct{}

func (s *CategoryService) GetCategories() ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	err := cache.GetOrSet(cache.KeyCategories, &categories, cache.TTLCategories, func() (any, error) {
		db := database.GetDB()
		result := make([]*model.Category, 0)
		if err := db.Model(model.Category{}).Order("name").Find(&result).Error; err != nil {
			return nil, err
		}
		return result, nil
	})
	return categories, err
}

func (s *CategoryService) GetBySlug(slug string) (*model.Category, error) {
	db := database.GetDB()
	category := &model.Category{}
	err := db.Model(model.Category{}).
		Where("slug = ?", slug).
		First(category).
		Error
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ProductQuery narrows and orders a product listing.
type ProductQuery struct {
	Category string // category slug
	Search   string // substring of name or description
	Impact   string // low, medium or high carbon class
	EcoOnly  bool
	Sort     string // price-asc, price-desc or rating
	Page     int
	PageSize int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items    []*model.Product `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// ProductService serves the read-only product catalog.
type ProductService struct {
	categoryService CategoryService
}

func (s *ProductService) GetProduct(id string) (*model.Product, error) {
	db := database.GetDB()
	product := &model.Product{}
	err := db.Model(model.Product{}).
		Where("id = ?", id).
		First(product).
		Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

// SearchProducts returns the filtered, sorted page described by query.
// Listings are cached briefly since the catalog is read-only.
func (s *ProductService) SearchProducts(query ProductQuery) (*ProductPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 20
	}

	key := fmt.Sprintf("%scat=%s&q=%s&impact=%s&eco=%t&sort=%s&page=%d&size=%d",
		cache.KeyProductsPrefix, query.Category, query.Search, query.Impact,
		query.EcoOnly, query.Sort, query.Page, query.PageSize)

	page := &ProductPage{}
	err := cache.GetOrSet(key, page, cache.TTLProducts, func() (any, error) {
		return s.searchProducts(query)
	})
	return page, err
}

func (s *ProductService) searchProducts(query ProductQuery) (*ProductPage, error) {
	db := database.GetDB().Model(model.Product{})

	if query.Category != "" {
		category, err := s.categoryService.GetBySlug(query.Category)
		if err != nil {
			if database.IsNotFound(err) {
				return &ProductPage{Items: []*model.Product{}, Page: query.Page, PageSize: query.PageSize}, nil
			}
			return nil, err
		}
		db = db.Where("category_id = ?", category.Id)
	}

	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	switch query.Impact {
	case "low":
		db = db.Where("carbon_footprint <= ?", impactLowMax)
	case "medium":
		db = db.Where("carbon_footprint > ? AND carbon_footprint <= ?", impactLowMax, impactMediumMax)
	case "high":
		db = db.Where("carbon_footprint > ?", impactMediumMax)
	}

	if query.EcoOnly {
		db = db.Where("eco_friendly = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	switch query.Sort {
	case "price-asc":
		db = db.Order("price ASC")
	case "price-desc":
		db = db.Order("price DESC")
	case "rating":
		db = db.Order("rating DESC")
	default:
		db = db.Order("name ASC")
	}

	items := make([]*model.Product, 0)
	err := db.Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
