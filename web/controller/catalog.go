package controller

import (
	"net/http"
	"strconv"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/web/service"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the read-only category and product catalog.
type CatalogController struct {
	BaseController

	categoryService service.CategoryService
	productService  service.ProductService
	settingService  service.SettingService
}

// NewCatalogController creates a CatalogController and registers its routes.
func NewCatalogController(g *gin.RouterGroup) *CatalogController {
	a := &CatalogController{}
	a.initRouter(g)
	return a
}

func (a *CatalogController) initRouter(g *gin.RouterGroup) {
	g.GET("/categories", a.getCategories)
	g.GET("/products", a.getProducts)
	g.GET("/products/:id", a.getProduct)
}

func (a *CatalogController) getCategories(c *gin.Context) {
	categories, err := a.categoryService.GetCategories()
	jsonObj(c, categories, err)
}

func (a *CatalogController) getProducts(c *gin.Context) {
	pageSize, err := a.settingService.GetPageSize()
	if err != nil {
		logger.Warning("get page size err:", err)
		pageSize = 20
	}

	page, _ := strconv.Atoi(c.Query("page"))
	query := service.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Impact:   c.Query("impact"),
		EcoOnly:  c.Query("eco") == "true",
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := a.productService.SearchProducts(query)
	jsonObj(c, result, err)
}

func (a *CatalogController) getProduct(c *gin.Context) {
	product, err := a.productService.GetProduct(c.Param("id"))
	if database.IsNotFound(err) {
		pureJsonMsg(c, http.StatusNotFound, false, "Product not found")
		return
	}
	jsonObj(c, product, err)
}
