package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryHomeGarden  Category = "Home & Garden"
	CategorySports      Category = "Sports & Outdoors"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"
	CategoryOther       Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryHomeGarden,
		CategorySports, CategoryBooks, CategoryToys, CategoryOther:
		return true
	}
	return false
}

type Product struct {
	ID              uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"not null"`
	Slug            string    `json:"slug" gorm:"index"`
	Description     string    `json:"description" gorm:"not null"`
	Price           float64   `json:"price" gorm:"not null;index"`
	PriceDiscount   *float64  `json:"priceDiscount,omitempty"`
	Quantity        int64     `json:"quantity" gorm:"not null"`
	SellerID        uint64    `json:"sellerId" gorm:"not null;index"`
	Category        Category  `json:"category" gorm:"not null"`
	ImageCover      string    `json:"imageCover,omitempty"`
	Images          string    `json:"-"`
	RatingsAverage  float64   `json:"ratingsAverage" gorm:"default:4.5"`
	RatingsQuantity int64     `json:"ratingsQuantity" gorm:"default:0"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// EffectivePrice is the unit price a buyer actually pays: the discount price
// when one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.PriceDiscount != nil {
		return *p.PriceDiscount
	}
	return p.Price
}

// Slugify derives the URL slug stored alongside a product name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	return s
}
