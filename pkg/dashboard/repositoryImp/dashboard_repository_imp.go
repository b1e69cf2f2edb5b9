package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agro/entities"
	"agro/pkg/dashboard/repository"
)

type dashRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DashboardRepository { return &dashRepo{db} }

func (r *dashRepo) TotalProperties(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Property{}).Count(&n).Error
	return n, err
}

func (r *dashRepo) TotalHectares(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.Property{}).
		Select("COALESCE(SUM(total_area_ha), 0)").
		Scan(&total).Error
	return total, err
}

func (r *dashRepo) ByState(ctx context.Context) ([]repository.StateCount, error) {
	var out []repository.StateCount
	err := r.db.WithContext(ctx).Model(&entities.Property{}).
		Select("state, COUNT(*) AS count").
		Group("state").Order("state ASC").
		Scan(&out).Error
	if out == nil {
		out = []repository.StateCount{}
	}
	return out, err
}

func (r *dashRepo) ByCrop(ctx context.Context) ([]repository.CropCount, error) {
	var out []repository.CropCount
	err := r.db.WithContext(ctx).Model(&entities.Crop{}).
		Select("name AS crop, COUNT(*) AS count").
		Group("name").Order("name ASC").
		Scan(&out).Error
	if out == nil {
		out = []repository.CropCount{}
	}
	return out, err
}

func (r *dashRepo) LandUse(ctx context.Context) (repository.LandUse, error) {
	var lu repository.LandUse
	err := r.db.WithContext(ctx).Model(&entities.Property{}).
		Select("COALESCE(SUM(arable_area_ha), 0) AS arable_area, COALESCE(SUM(vegetation_area_ha), 0) AS vegetation_area").
		Scan(&lu).Error
	return lu, err
}

func (r *dashRepo) Summary(ctx context.Context) (repository.Summary, error) {
	var s repository.Summary
	var err error
	if s.TotalProperties, err = r.TotalProperties(ctx); err != nil {
		return s, err
	}
	if s.TotalHectares, err = r.TotalHectares(ctx); err != nil {
		return s, err
	}
	if s.ByState, err = r.ByState(ctx); err != nil {
		return s, err
	}
	if s.ByCrop, err = r.ByCrop(ctx); err != nil {
		return s, err
	}
	if s.LandUse, err = r.LandUse(ctx); err != nil {
		return s, err
	}
	return s, nil
}
