package model

import "time"

const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusCODPending = "cod_pending"
)

type Perfume struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:255;not null"`
	Price     float64 `gorm:"not null"`
	Quantity  int     `gorm:"not null"` // units in stock
	Available bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID     uint   `gorm:"primaryKey"`
	Number string `gorm:"size:36;uniqueIndex;not null"` // public order reference
	UserID uint   `gorm:"index;not null"`

	TotalAmount  float64 `gorm:"not null"`
	ShippingCost float64 `gorm:"not null"`
	TaxAmount    float64 `gorm:"not null"`

	ShippingFirstName string `gorm:"size:128;not null"`
	ShippingLastName  string `gorm:"size:128;not null"`
	ShippingEmail     string `gorm:"size:255;not null"`
	ShippingPhone     string `gorm:"size:32;not null"`
	ShippingAddress   string `gorm:"size:512;not null"`
	ShippingCity      string `gorm:"size:128;not null"`
	ShippingState     string `gorm:"size:128;not null"`
	ShippingZip       string `gorm:"size:32;not null"`

	PaymentMethod string `gorm:"size:16;not null"` // card | cod
	Status        string `gorm:"size:32;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"index;not null"`
	PerfumeID uint    `gorm:"index;not null"`
	Quantity  int     `gorm:"not null"`
	Size      *string `gorm:"size:32"`
	UnitPrice float64 `gorm:"not null"` // price snapshot at checkout time
	CreatedAt time.Time
}

type PaymentDetail struct {
	ID             uint   `gorm:"primaryKey"`
	OrderID        uint   `gorm:"uniqueIndex;not null"`
	PaymentMethod  string `gorm:"size:16;not null"`
	CardLast4      string `gorm:"size:4;not null"`
	CardHolderName string `gorm:"size:128;not null"`
	Expiry         string `gorm:"size:8;not null"`
	CreatedAt      time.Time
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"index;not null"`
	PerfumeID uint    `gorm:"index;not null"`
	Quantity  int     `gorm:"not null"`
	Size      *string `gorm:"size:32"`
	CreatedAt time.Time
}
