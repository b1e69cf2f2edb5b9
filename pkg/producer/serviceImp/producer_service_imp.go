package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"agro/entities"
	repo "agro/pkg/producer/repository"
	"agro/pkg/producer/service"
	"agro/pkg/taxid"
)

// areaEpsilon absorbs float noise when arable + vegetation == total.
const areaEpsilon = 1e-9

type Paging struct {
	Default int
	Max     int
}

type producerSvc struct {
	r      repo.ProducerRepository
	paging Paging
}

func NewProducerService(r repo.ProducerRepository, paging Paging) service.ProducerService {
	if paging.Default <= 0 {
		paging.Default = 100
	}
	if paging.Max < paging.Default {
		paging.Max = paging.Default
	}
	return &producerSvc{r: r, paging: paging}
}

func (s *producerSvc) Create(ctx context.Context, in service.ProducerInput) (*entities.Producer, error) {
	taxID, err := checkTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}

	p := &entities.Producer{TaxID: taxID, Name: name}
	for i, pi := range in.Properties {
		prop, err := newProperty(pi)
		if err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		p.Properties = append(p.Properties, prop)
	}

	err = s.r.Transaction(ctx, func(tx repo.ProducerRepository) error {
		if err := ensureTaxIDFree(ctx, tx, taxID, 0); err != nil {
			return err
		}
		return tx.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[producer] created id=%d tax_id=%s properties=%d", p.ID, p.TaxID, len(p.Properties))
	return s.Get(ctx, p.ID)
}

func (s *producerSvc) Get(ctx context.Context, id uint) (*entities.Producer, error) {
	p, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return p, nil
}

func (s *producerSvc) List(ctx context.Context, q service.ListQuery) ([]entities.Producer, error) {
	f := repo.ListFilter{Offset: q.Skip, Limit: q.Limit}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = s.paging.Default
	}
	if f.Limit > s.paging.Max {
		f.Limit = s.paging.Max
	}
	if raw := strings.TrimSpace(q.TaxID); raw != "" {
		f.TaxID = taxid.Clean(raw)
		if f.TaxID == "" {
			return []entities.Producer{}, nil
		}
	}
	return s.r.List(ctx, f)
}

// Update applies in as a patch over the stored tree inside one transaction.
// Children missing from a sent list are deleted; children without an ID are
// inserted; children with an ID get only their sent fields overwritten.
func (s *producerSvc) Update(ctx context.Context, id uint, in service.ProducerInput) (*entities.Producer, error) {
	err := s.r.Transaction(ctx, func(tx repo.ProducerRepository) error {
		cur, err := tx.FindByID(ctx, id)
		if err != nil {
			return notFound(err, id)
		}

		if in.Name != nil {
			name, err := required("name", in.Name)
			if err != nil {
				return err
			}
			cur.Name = name
		}
		if in.TaxID != nil {
			taxID, err := checkTaxID(in.TaxID)
			if err != nil {
				return err
			}
			if taxID != cur.TaxID {
				if err := ensureTaxIDFree(ctx, tx, taxID, cur.ID); err != nil {
					return err
				}
				cur.TaxID = taxID
			}
		}
		if err := tx.UpdateProducer(ctx, cur); err != nil {
			return err
		}

		if in.Properties == nil {
			return nil
		}
		return reconcileProperties(ctx, tx, cur, in.Properties)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[producer] updated id=%d", id)
	return s.Get(ctx, id)
}

func (s *producerSvc) Delete(ctx context.Context, id uint) error {
	err := s.r.Transaction(ctx, func(tx repo.ProducerRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return notFound(err, id)
	}
	log.Printf("[producer] deleted id=%d", id)
	return nil
}

func reconcileProperties(ctx context.Context, tx repo.ProducerRepository, cur *entities.Producer, incoming []service.PropertyInput) error {
	existing := make(map[uint]*entities.Property, len(cur.Properties))
	stored := make([]uint, 0, len(cur.Properties))
	for i := range cur.Properties {
		existing[cur.Properties[i].ID] = &cur.Properties[i]
		stored = append(stored, cur.Properties[i].ID)
	}

	sent := make([]*uint, 0, len(incoming))
	for _, pi := range incoming {
		if pi.ID == nil {
			continue
		}
		if _, ok := existing[*pi.ID]; !ok {
			return fmt.Errorf("%w: property %d does not belong to producer %d", service.ErrInvalidInput, *pi.ID, cur.ID)
		}
		sent = append(sent, pi.ID)
	}
	removed, err := removedIDs(stored, sent)
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	if err := tx.DeleteProperties(ctx, removed); err != nil {
		return err
	}

	for i, pi := range incoming {
		if pi.ID == nil {
			prop, err := newProperty(pi)
			if err != nil {
				return fmt.Errorf("properties[%d]: %w", i, err)
			}
			prop.ProducerID = cur.ID
			if err := tx.CreateProperty(ctx, &prop); err != nil {
				return err
			}
			continue
		}

		prop := existing[*pi.ID]
		if err := patchProperty(prop, pi); err != nil {
			return fmt.Errorf("properties[%d]: %w", i, err)
		}
		if err := tx.UpdateProperty(ctx, prop); err != nil {
			return err
		}
		if pi.Crops != nil {
			if err := reconcileCrops(ctx, tx, prop, pi.Crops); err != nil {
				return fmt.Errorf("properties[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func reconcileCrops(ctx context.Context, tx repo.ProducerRepository, prop *entities.Property, incoming []service.CropInput) error {
	existing := make(map[uint]*entities.Crop, len(prop.Crops))
	stored := make([]uint, 0, len(prop.Crops))
	for i := range prop.Crops {
		existing[prop.Crops[i].ID] = &prop.Crops[i]
		stored = append(stored, prop.Crops[i].ID)
	}

	sent := make([]*uint, 0, len(incoming))
	for _, ci := range incoming {
		if ci.ID == nil {
			continue
		}
		if _, ok := existing[*ci.ID]; !ok {
			return fmt.Errorf("%w: crop %d does not belong to property %d", service.ErrInvalidInput, *ci.ID, prop.ID)
		}
		sent = append(sent, ci.ID)
	}
	removed, err := removedIDs(stored, sent)
	if err != nil {
		return fmt.Errorf("crops: %w", err)
	}
	if err := tx.DeleteCrops(ctx, removed); err != nil {
		return err
	}

	for i, ci := range incoming {
		if ci.ID == nil {
			c, err := newCrop(ci)
			if err != nil {
				return fmt.Errorf("crops[%d]: %w", i, err)
			}
			c.PropertyID = prop.ID
			if err := tx.CreateCrop(ctx, &c); err != nil {
				return err
			}
			continue
		}

		c := existing[*ci.ID]
		if ci.Name != nil {
			v, err := required("crop name", ci.Name)
			if err != nil {
				return fmt.Errorf("crops[%d]: %w", i, err)
			}
			c.Name = v
		}
		if ci.Season != nil {
			v, err := required("season", ci.Season)
			if err != nil {
				return fmt.Errorf("crops[%d]: %w", i, err)
			}
			c.Season = v
		}
		if err := tx.UpdateCrop(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// removedIDs returns the stored IDs the request no longer names, in stored
// order. Naming the same ID twice is rejected.
func removedIDs(stored []uint, sent []*uint) ([]uint, error) {
	keep := make(map[uint]bool, len(sent))
	for _, id := range sent {
		if keep[*id] {
			return nil, fmt.Errorf("%w: id %d sent more than once", service.ErrInvalidInput, *id)
		}
		keep[*id] = true
	}
	var out []uint
	for _, id := range stored {
		if !keep[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func newProperty(in service.PropertyInput) (entities.Property, error) {
	if in.ID != nil {
		return entities.Property{}, fmt.Errorf("%w: new property cannot carry id %d", service.ErrInvalidInput, *in.ID)
	}
	var p entities.Property
	var err error
	if p.Name, err = required("property name", in.Name); err != nil {
		return p, err
	}
	if p.City, err = required("city", in.City); err != nil {
		return p, err
	}
	if p.State, err = required("state", in.State); err != nil {
		return p, err
	}
	p.State = normalizeState(p.State)
	if in.TotalAreaHa == nil || in.ArableAreaHa == nil || in.VegetationAreaHa == nil {
		return p, fmt.Errorf("%w: property %q: total, arable and vegetation areas are required", service.ErrInvalidInput, p.Name)
	}
	p.TotalAreaHa = *in.TotalAreaHa
	p.ArableAreaHa = *in.ArableAreaHa
	p.VegetationAreaHa = *in.VegetationAreaHa
	if err := checkAreas(&p); err != nil {
		return p, err
	}

	for i, ci := range in.Crops {
		c, err := newCrop(ci)
		if err != nil {
			return p, fmt.Errorf("crops[%d]: %w", i, err)
		}
		p.Crops = append(p.Crops, c)
	}
	return p, nil
}

func patchProperty(p *entities.Property, in service.PropertyInput) error {
	var err error
	if in.Name != nil {
		if p.Name, err = required("property name", in.Name); err != nil {
			return err
		}
	}
	if in.City != nil {
		if p.City, err = required("city", in.City); err != nil {
			return err
		}
	}
	if in.State != nil {
		st, err := required("state", in.State)
		if err != nil {
			return err
		}
		p.State = normalizeState(st)
	}
	if in.TotalAreaHa != nil {
		p.TotalAreaHa = *in.TotalAreaHa
	}
	if in.ArableAreaHa != nil {
		p.ArableAreaHa = *in.ArableAreaHa
	}
	if in.VegetationAreaHa != nil {
		p.VegetationAreaHa = *in.VegetationAreaHa
	}
	return checkAreas(p)
}

func newCrop(in service.CropInput) (entities.Crop, error) {
	if in.ID != nil {
		return entities.Crop{}, fmt.Errorf("%w: new crop cannot carry id %d", service.ErrInvalidInput, *in.ID)
	}
	var c entities.Crop
	var err error
	if c.Name, err = required("crop name", in.Name); err != nil {
		return c, err
	}
	if c.Season, err = required("season", in.Season); err != nil {
		return c, err
	}
	return c, nil
}

// checkAreas enforces areas >= 0 and arable + vegetation <= total.
func checkAreas(p *entities.Property) error {
	if p.TotalAreaHa < 0 || p.ArableAreaHa < 0 || p.VegetationAreaHa < 0 {
		return fmt.Errorf("%w: property %q: areas cannot be negative", service.ErrInvalidInput, p.Name)
	}
	if p.ArableAreaHa+p.VegetationAreaHa > p.TotalAreaHa+areaEpsilon {
		return fmt.Errorf("property %q: %w", p.Name, service.ErrAreaExceedsTotal)
	}
	return nil
}

func checkTaxID(raw *string) (string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return "", fmt.Errorf("%w: tax_id is required", service.ErrInvalidInput)
	}
	if strings.ContainsFunc(*raw, func(r rune) bool {
		return (r < '0' || r > '9') && !strings.ContainsRune(".-/ ", r)
	}) {
		return "", fmt.Errorf("%w: only digits and . - / separators are allowed", service.ErrInvalidTaxID)
	}
	digits, kind, err := taxid.Validate(*raw)
	switch {
	case errors.Is(err, taxid.ErrLength):
		return "", fmt.Errorf("%w: must have 11 (CPF) or 14 (CNPJ) digits", service.ErrInvalidTaxID)
	case err != nil:
		return "", fmt.Errorf("%w: not a valid %s", service.ErrInvalidTaxID, kind)
	}
	return digits, nil
}

// ensureTaxIDFree fails when taxID belongs to a producer other than self.
func ensureTaxIDFree(ctx context.Context, tx repo.ProducerRepository, taxID string, self uint) error {
	other, err := tx.FindByTaxID(ctx, taxID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != self:
		return fmt.Errorf("%w: %s", service.ErrDuplicateTaxID, taxID)
	}
	return nil
}

func required(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", fmt.Errorf("%w: %s is required", service.ErrInvalidInput, field)
	}
	return strings.TrimSpace(*v), nil
}

func normalizeState(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(strings.TrimSpace(s))
}

func notFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: id %d", service.ErrNotFound, id)
	}
	return err
}
