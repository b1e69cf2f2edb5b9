package repository

import (
	"context"

	"agro/entities"
)

type ListFilter struct {
	TaxID  string
	Offset int
	Limit  int
}

// ProducerRepository persists the Producer → Property → Crop tree. Reads
// return gorm.ErrRecordNotFound when nothing matches.
type ProducerRepository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction; a non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(r ProducerRepository) error) error

	Create(ctx context.Context, p *entities.Producer) error
	UpdateProducer(ctx context.Context, p *entities.Producer) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Producer, error)
	FindByTaxID(ctx context.Context, taxID string) (*entities.Producer, error)
	List(ctx context.Context, f ListFilter) ([]entities.Producer, error)

	CreateProperty(ctx context.Context, p *entities.Property) error
	UpdateProperty(ctx context.Context, p *entities.Property) error
	DeleteProperties(ctx context.Context, ids []uint) error

	CreateCrop(ctx context.Context, c *entities.Crop) error
	UpdateCrop(ctx context.Context, c *entities.Crop) error
	DeleteCrops(ctx context.Context, ids []uint) error
}
