// Package export renders the producer registry as an XLSX workbook with one
// sheet per level of the tree.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agro/entities"
	"agro/pkg/producer/service"
	"agro/pkg/taxid"
)

const (
	SheetProducers  = "Producers"
	SheetProperties = "Properties"
	SheetCrops      = "Crops"
)

var headers = map[string][]any{
	SheetProducers:  {"ID", "CPF/CNPJ", "Name", "Properties"},
	SheetProperties: {"ID", "Producer ID", "Name", "City", "State", "Total (ha)", "Arable (ha)", "Vegetation (ha)"},
	SheetCrops:      {"ID", "Property ID", "Crop", "Season"},
}

type Lister interface {
	List(ctx context.Context, q service.ListQuery) ([]entities.Producer, error)
}

// CollectAll pages through l until a short page comes back.
func CollectAll(ctx context.Context, l Lister, pageSize int) ([]entities.Producer, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	var out []entities.Producer
	for skip := 0; ; skip += pageSize {
		page, err := l.List(ctx, service.ListQuery{Skip: skip, Limit: pageSize})
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize {
			return out, nil
		}
	}
}

func WriteProducers(w io.Writer, producers []entities.Producer) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", SheetProducers); err != nil {
		return err
	}
	for _, name := range []string{SheetProperties, SheetCrops} {
		if _, err := x.NewSheet(name); err != nil {
			return err
		}
	}
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for _, name := range []string{SheetProducers, SheetProperties, SheetCrops} {
		row := headers[name]
		if err := x.SetSheetRow(name, "A1", &row); err != nil {
			return err
		}
		if err := x.SetRowStyle(name, 1, 1, bold); err != nil {
			return err
		}
	}

	prodRow, propRow, cropRow := 2, 2, 2
	for _, p := range producers {
		if err := setRow(x, SheetProducers, prodRow, []any{p.ID, taxid.Format(p.TaxID), p.Name, len(p.Properties)}); err != nil {
			return err
		}
		prodRow++
		for _, pr := range p.Properties {
			if err := setRow(x, SheetProperties, propRow, []any{
				pr.ID, p.ID, pr.Name, pr.City, pr.State, pr.TotalAreaHa, pr.ArableAreaHa, pr.VegetationAreaHa,
			}); err != nil {
				return err
			}
			propRow++
			for _, c := range pr.Crops {
				if err := setRow(x, SheetCrops, cropRow, []any{c.ID, pr.ID, c.Name, c.Season}); err != nil {
					return err
				}
				cropRow++
			}
		}
	}

	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(x *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return x.SetSheetRow(sheet, cell, &vals)
}
