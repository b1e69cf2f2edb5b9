package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agro/entities"
	"agro/pkg/producer/repository"
)

type producerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProducerRepository { return &producerRepo{db} }

func (r *producerRepo) Transaction(ctx context.Context, fn func(repository.ProducerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&producerRepo{tx})
	})
}

// Create inserts the producer together with its properties and crops.
func (r *producerRepo) Create(ctx context.Context, p *entities.Producer) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *producerRepo) UpdateProducer(ctx context.Context, p *entities.Producer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// Delete removes the whole tree. The FK cascade would cover it, but rows
// written before foreign keys were enforced are cleaned up too.
func (r *producerRepo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	res := db.Delete(&entities.Producer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	props := db.Model(&entities.Property{}).Select("id").Where("producer_id = ?", id)
	if err := db.Where("property_id IN (?)", props).Delete(&entities.Crop{}).Error; err != nil {
		return err
	}
	return db.Where("producer_id = ?", id).Delete(&entities.Property{}).Error
}

func (r *producerRepo) FindByID(ctx context.Context, id uint) (*entities.Producer, error) {
	var p entities.Producer
	if err := r.withTree(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *producerRepo) FindByTaxID(ctx context.Context, taxID string) (*entities.Producer, error) {
	var p entities.Producer
	if err := r.withTree(ctx).Where("tax_id = ?", taxID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *producerRepo) List(ctx context.Context, f repository.ListFilter) ([]entities.Producer, error) {
	q := r.withTree(ctx).Order("producers.id ASC")
	if f.TaxID != "" {
		q = q.Where("tax_id = ?", f.TaxID)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	out := []entities.Producer{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *producerRepo) CreateProperty(ctx context.Context, p *entities.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *producerRepo) UpdateProperty(ctx context.Context, p *entities.Property) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *producerRepo) DeleteProperties(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("property_id IN ?", ids).Delete(&entities.Crop{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&entities.Property{}).Error
}

func (r *producerRepo) CreateCrop(ctx context.Context, c *entities.Crop) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *producerRepo) UpdateCrop(ctx context.Context, c *entities.Crop) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *producerRepo) DeleteCrops(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.Crop{}).Error
}

func (r *producerRepo) withTree(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Properties", func(db *gorm.DB) *gorm.DB { return db.Order("properties.id ASC") }).
		Preload("Properties.Crops", func(db *gorm.DB) *gorm.DB { return db.Order("crops.id ASC") })
}
