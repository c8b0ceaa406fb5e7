package domain

import "time"

// Product represents a catalog item. Price is nullable: a product may be
// listed before pricing is decided. Stock defaults to zero.
type Product struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"index" json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	Stock         int       `json:"stock"`
	CategoryID    *int64    `gorm:"index" json:"categoryId"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Image         string    `gorm:"size:1024" json:"image,omitempty"`
	ImagePublicID string    `gorm:"size:255" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "shop_category"
}
