package domain

import "time"

type Role string

const (
	RoleConsumer Role = "Consumer"
	RoleSeller   Role = "Seller"
	RoleAdmin    Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleConsumer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                   uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username             string     `json:"username" gorm:"not null"`
	Email                string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash         string     `json:"-" gorm:"not null"`
	Role                 Role       `json:"role" gorm:"type:enum('Consumer','Seller','Admin');not null;index"`
	Active               bool       `json:"active" gorm:"not null;default:true"`
	Address              string     `json:"address,omitempty"`
	Certificate          string     `json:"certificate,omitempty"`
	Photo                string     `json:"photo" gorm:"default:'default-user.jpg'"`
	PasswordChangedAt    time.Time  `json:"-"`
	PasswordResetToken   string     `json:"-" gorm:"index"`
	PasswordResetExpires *time.Time `json:"-"`
	Cart                 []CartItem `json:"cart,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Favorites            []Favorite `json:"favorites,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CartItem is one cart line. Price and seller are copied from the product at
// add time; checkout re-reads the product and never trusts these copies.
type CartItem struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `json:"-" gorm:"not null;index"`
	ProductID     uint64    `json:"productId" gorm:"not null;index"`
	Quantity      int64     `json:"quantity" gorm:"not null"`
	PriceSnapshot float64   `json:"price" gorm:"not null"`
	SellerID      uint64    `json:"sellerId" gorm:"not null"`
	Product       *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	AddedAt       time.Time `json:"addedAt" gorm:"autoCreateTime"`
}

type Favorite struct {
	ID        uint64   `json:"-" gorm:"primaryKey;autoIncrement"`
	UserID    uint64   `json:"-" gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID uint64   `json:"productId" gorm:"not null;uniqueIndex:idx_user_product"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change are stale.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.Truncate(time.Second).After(issuedAt)
}
