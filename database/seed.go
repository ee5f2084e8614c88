package database

import (
	_ "embed"
	"log"

	"github.com/ecocart/ecocart/database/model"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var catalogSeed []byte

type seedCategory struct {
	Name        string `toml:"name"`
	Slug        string `toml:"slug"`
	Description string `toml:"description"`
	Parent      string `toml:"parent"`
}

type seedProduct struct {
	Name            string  `toml:"name"`
	Description     string  `toml:"description"`
	Category        string  `toml:"category"`
	Price           float64 `toml:"price"`
	Image           string  `toml:"image"`
	Rating          float64 `toml:"rating"`
	ReviewCount     int     `toml:"review_count"`
	CarbonFootprint float64 `toml:"carbon_footprint"`
	EcoFriendly     bool    `toml:"eco_friendly"`
	InStock         bool    `toml:"in_stock"`
}

type seedCatalog struct {
	Categories []seedCategory `toml:"categories"`
	Products   []seedProduct  `toml:"products"`
}

// initCatalog populates categories and products from the embedded seed on an
// empty catalog. Existing rows are never touched; the catalog is read-only
// at runtime.
func initCatalog() error {
	empty, err := isTableEmpty("categories")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	var seed seedCatalog
	if err := toml.Unmarshal(catalogSeed, &seed); err != nil {
		return err
	}

	categoryIds := make(map[string]string, len(seed.Categories))
	for _, c := range seed.Categories {
		category := &model.Category{
			Id:          uuid.NewString(),
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
		}
		if c.Parent != "" {
			category.ParentId = categoryIds[c.Parent]
		}
		if err := db.Create(category).Error; err != nil {
			return err
		}
		categoryIds[c.Slug] = category.Id
	}

	for _, p := range seed.Products {
		categoryId, ok := categoryIds[p.Category]
		if !ok {
			log.Printf("seed product %q references unknown category %q, skipping", p.Name, p.Category)
			continue
		}
		product := &model.Product{
			Id:              uuid.NewString(),
			Name:            p.Name,
			Description:     p.Description,
			Price:           p.Price,
			Image:           p.Image,
			CategoryId:      categoryId,
			InStock:         p.InStock,
			Rating:          p.Rating,
			ReviewCount:     p.ReviewCount,
			CarbonFootprint: p.CarbonFootprint,
			EcoFriendly:     p.EcoFriendly,
		}
		if err := db.Create(product).Error; err != nil {
			return err
		}
	}

	log.Printf("seeded catalog: %d categories, %d products", len(seed.Categories), len(seed.Products))
	return nil
}
