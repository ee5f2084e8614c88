package service

import (
	"errors"
	"math"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/database/model"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNotInCart = errors.New("product not in cart")
	ErrOutOfStock       = errors.New("product out of stock")
)

// Cost of offsetting one kg of CO2, in rupees.
const offsetRatePerKg = 20

// CartEntry is a cart row joined with its product.
type CartEntry struct {
	Id       string         `json:"id"`
	Product  *model.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// CartView is the cart with its carbon accounting summary.
type CartView struct {
	Items       []*CartEntry `json:"items"`
	TotalPrice  float64      `json:"totalPrice"`
	TotalCarbon float64      `json:"totalCarbon"`
	OffsetCost  int          `json:"offsetCost"`
	EcoScore    float64      `json:"ecoScore"`
}

// OffsetQuote prices the carbon offset for the current cart contents.
type OffsetQuote struct {
	TotalCarbon float64 `json:"totalCarbon"`
	OffsetCost  int     `json:"offsetCost"`
}

// CartService manages per-user carts and their carbon totals.
type CartService struct {
	productService ProductService
}

// GetCart returns the user's cart with price and carbon totals. Rows whose
// product has disappeared from the catalog are skipped.
func (s *CartService) GetCart(userId string) (*CartView, error) {
	db := database.GetDB()
	rows := make([]*model.CartItem, 0)
	err := db.Model(model.CartItem{}).
		Where("user_id = ?", userId).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]*CartEntry, 0, len(rows))}
	for _, row := range rows {
		product, err := s.productService.GetProduct(row.ProductId)
		if database.IsNotFound(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, &CartEntry{
			Id:       row.Id,
			Product:  product,
			Quantity: row.Quantity,
		})
		view.TotalPrice += product.Price * float64(row.Quantity)
		view.TotalCarbon += product.CarbonFootprint * float64(row.Quantity)
	}

	view.OffsetCost = offsetCost(view.TotalCarbon)
	view.EcoScore = ecoScore(view.TotalCarbon)
	return view, nil
}

// AddItem puts quantity units of a product into the cart, merging with an
// existing row for the same product.
func (s *CartService) AddItem(userId string, productId string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productService.GetProduct(productId)
	if database.IsNotFound(err) {
		return ErrProductNotFound
	} else if err != nil {
		return err
	}
	if !product.InStock {
		return ErrOutOfStock
	}

	db := database.GetDB()
	existing := &model.CartItem{}
	err = db.Model(model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userId, productId).
		First(existing).
		Error
	if database.IsNotFound(err) {
		return db.Create(&model.CartItem{
			Id:        uuid.NewString(),
			UserId:    userId,
			ProductId: productId,
			Quantity:  quantity,
		}).Error
	} else if err != nil {
		return err
	}

	existing.Quantity += quantity
	return db.Save(existing).Error
}

// UpdateQuantity sets the quantity of a cart row. Zero or less removes it.
func (s *CartService) UpdateQuantity(userId string, itemId string, quantity int) error {
	db := database.GetDB()

	if quantity <= 0 {
		return s.RemoveItem(userId, itemId)
	}

	result := db.Model(model.CartItem{}).
		Where("user_id = ? AND id = ?", userId, itemId).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotInCart
	}
	return nil
}

// RemoveItem deletes a cart row. Idempotent.
func (s *CartService) RemoveItem(userId string, itemId string) error {
	db := database.GetDB()
	return db.Where("user_id = ? AND id = ?", userId, itemId).
		Delete(model.CartItem{}).
		Error
}

// ClearCart empties the user's cart. Idempotent.
func (s *CartService) ClearCart(userId string) error {
	db := database.GetDB()
	return db.Where("user_id = ?", userId).
		Delete(model.CartItem{}).
		Error
}

// OffsetQuote prices offsetting the cart's carbon. The purchase itself is
// mocked; nothing is recorded.
func (s *CartService) OffsetQuote(userId string) (*OffsetQuote, error) {
	view, err := s.GetCart(userId)
	if err != nil {
		return nil, err
	}
	return &OffsetQuote{
		TotalCarbon: view.TotalCarbon,
		OffsetCost:  view.OffsetCost,
	}, nil
}

func offsetCost(totalCarbon float64) int {
	return int(math.Ceil(totalCarbon * offsetRatePerKg))
}

// ecoScore grades the cart's footprint: 100 up to 5kg, then 10 points off
// per extra kg, floored at 0. Fractional kilograms score fractionally.
func ecoScore(totalCarbon float64) float64 {
	if totalCarbon <= 5 {
		return 100
	}
	score := 100 - (totalCarbon-5)*10
	if score < 0 {
		return 0
	}
	return score
}
