// Package model defines the database entities for the EcoCart storefront.
package model

// User is a registered shopper. Password holds only the bcrypt hash and is
// excluded from JSON so it can never reach a client on any response path.
type User struct {
	Id       string `json:"id" gorm:"primaryKey;size:36"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
}

// Session is a server-side login session. The client only ever holds the
// opaque Id, delivered via cookie.
type Session struct {
	Id         string `json:"id" gorm:"primaryKey;size:64"`
	UserId     string `json:"userId" gorm:"index;not null"`
	ExpiryTime int64  `json:"expiryTime"`
}

type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Category struct {
	Id          string `json:"id" gorm:"primaryKey;size:36"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	ParentId    string `json:"parentId"`
}

// Product is a catalog entry. CarbonFootprint is kg CO2 per unit.
type Product struct {
	Id              string  `json:"id" gorm:"primaryKey;size:36"`
	Name            string  `json:"name" gorm:"not null"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" gorm:"not null"`
	Image           string  `json:"image"`
	CategoryId      string  `json:"categoryId" gorm:"index;not null"`
	InStock         bool    `json:"inStock" gorm:"default:true"`
	Rating          float64 `json:"rating" gorm:"default:0"`
	ReviewCount     int     `json:"reviewCount" gorm:"default:0"`
	CarbonFootprint float64 `json:"carbonFootprint"`
	EcoFriendly     bool    `json:"ecoFriendly" gorm:"default:false"`
}

// CartItem ties a product and quantity to a user's cart. One row per
// user/product pair.
type CartItem struct {
	Id        string `json:"id" gorm:"primaryKey;size:36"`
	UserId    string `json:"-" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductId string `json:"productId" gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}
