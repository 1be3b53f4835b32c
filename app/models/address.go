package models

// ShippingAddress is stored inline on the order so later profile edits never
// change where a past order was sent.
type ShippingAddress struct {
	FullName     string `gorm:"size:255" json:"fullName" validate:"required,max=255"`
	Phone        string `gorm:"size:20" json:"phone" validate:"required,max=20"`
	AddressLine1 string `gorm:"size:255" json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2" validate:"max=255"`
	City         string `gorm:"size:100" json:"city" validate:"required,max=100"`
	State        string `gorm:"size:100" json:"state" validate:"required,max=100"`
	ZipCode      string `gorm:"size:10" json:"zipCode" validate:"required,max=10"`
	Country      string `gorm:"size:100" json:"country" validate:"max=100"`
}
