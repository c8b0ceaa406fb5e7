package domain

import "time"

// Kit bundles products with per-product quantities under a name.
// Items keep their submission order via Sort.
type Kit struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Items     []KitItem `gorm:"foreignKey:KitID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Kit) TableName() string {
	return "shop_kit"
}

type KitItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"-"`
	KitID     int64 `gorm:"index" json:"-"`
	ProductID int64 `gorm:"index" json:"productId"`
	Quantity  int   `json:"quantity"`
	Sort      int   `json:"-"`
}

// TableName Specify table name
func (KitItem) TableName() string {
	return "shop_kit_item"
}
