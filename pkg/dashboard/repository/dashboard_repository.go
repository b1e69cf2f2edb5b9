package repository

import "context"

type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

type CropCount struct {
	Crop  string `json:"crop"`
	Count int64  `json:"count"`
}

type LandUse struct {
	ArableArea     float64 `json:"arable_area"`
	VegetationArea float64 `json:"vegetation_area"`
}

type Summary struct {
	TotalProperties int64        `json:"total_properties"`
	TotalHectares   float64      `json:"total_hectares"`
	ByState         []StateCount `json:"by_state"`
	ByCrop          []CropCount  `json:"by_crop"`
	LandUse         LandUse      `json:"land_use"`
}

// DashboardRepository answers read-only rollups. Empty stores yield zeros
// and empty, non-nil slices.
type DashboardRepository interface {
	TotalProperties(ctx context.Context) (int64, error)
	TotalHectares(ctx context.Context) (float64, error)
	ByState(ctx context.Context) ([]StateCount, error)
	ByCrop(ctx context.Context) ([]CropCount, error)
	LandUse(ctx context.Context) (LandUse, error)
	Summary(ctx context.Context) (Summary, error)
}
