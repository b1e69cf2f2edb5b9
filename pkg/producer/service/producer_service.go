package service

import (
	"context"
	"errors"

	"agro/entities"
)

type ProducerService interface {
	Create(ctx context.Context, in ProducerInput) (*entities.Producer, error)
	Get(ctx context.Context, id uint) (*entities.Producer, error)
	List(ctx context.Context, q ListQuery) ([]entities.Producer, error)
	Update(ctx context.Context, id uint, in ProducerInput) (*entities.Producer, error)
	Delete(ctx context.Context, id uint) error
}

var (
	ErrNotFound         = errors.New("producer not found")
	ErrInvalidTaxID     = errors.New("invalid CPF/CNPJ")
	ErrDuplicateTaxID   = errors.New("CPF/CNPJ already registered")
	ErrAreaExceedsTotal = errors.New("arable and vegetation area cannot exceed the total area")
	ErrInvalidInput     = errors.New("invalid input")
)

// IsValidation reports whether err should be answered as a client error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidTaxID) ||
		errors.Is(err, ErrDuplicateTaxID) ||
		errors.Is(err, ErrAreaExceedsTotal) ||
		errors.Is(err, ErrInvalidInput)
}

type ListQuery struct {
	Skip  int
	Limit int
	TaxID string
}

// ProducerInput is both the create payload and the update patch. A nil
// pointer means "not sent"; on update only sent fields are written. A nil
// Properties slice leaves the stored properties alone, while an empty one
// removes them all.
type ProducerInput struct {
	TaxID      *string         `json:"tax_id" yaml:"tax_id"`
	Name       *string         `json:"name" yaml:"name"`
	Properties []PropertyInput `json:"properties" yaml:"properties"`
}

// PropertyInput without an ID is a new property; with an ID it patches the
// existing one.
type PropertyInput struct {
	ID               *uint       `json:"id" yaml:"id"`
	Name             *string     `json:"name" yaml:"name"`
	City             *string     `json:"city" yaml:"city"`
	State            *string     `json:"state" yaml:"state"`
	TotalAreaHa      *float64    `json:"total_area_ha" yaml:"total_area_ha"`
	ArableAreaHa     *float64    `json:"arable_area_ha" yaml:"arable_area_ha"`
	VegetationAreaHa *float64    `json:"vegetation_area_ha" yaml:"vegetation_area_ha"`
	Crops            []CropInput `json:"crops" yaml:"crops"`
}

type CropInput struct {
	ID     *uint   `json:"id" yaml:"id"`
	Name   *string `json:"name" yaml:"name"`
	Season *string `json:"season" yaml:"season"`
}
