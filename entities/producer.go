package entities

import "time"

type Producer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TaxID      string     `gorm:"uniqueIndex;not null" json:"tax_id"` // CPF (11) or CNPJ (14), digits only
	Name       string     `gorm:"not null" json:"name"`
	Properties []Property `gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE" json:"properties"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Property struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	ProducerID       uint    `gorm:"index;not null" json:"producer_id"`
	Name             string  `gorm:"not null" json:"name"`
	City             string  `gorm:"not null" json:"city"`
	State            string  `gorm:"index;not null" json:"state"` // UF, upper-case
	TotalAreaHa      float64 `gorm:"not null" json:"total_area_ha"`
	ArableAreaHa     float64 `gorm:"not null" json:"arable_area_ha"`
	VegetationAreaHa float64 `gorm:"not null" json:"vegetation_area_ha"`
	Crops            []Crop  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"crops"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Crop struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID uint   `gorm:"index;not null" json:"property_id"`
	Name       string `gorm:"index;not null" json:"name"`
	Season     string `gorm:"not null" json:"season"` // e.g. "Safra 2024"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
