// Package seed loads producer trees from YAML fixtures and feeds them through
// the regular create path, so fixtures obey the same validation as the API.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gopkg.in/yaml.v3"

	"agro/entities"
	"agro/pkg/producer/service"
)

type Fixture struct {
	Producers []service.ProducerInput `yaml:"producers"`
}

type Creator interface {
	Create(ctx context.Context, in service.ProducerInput) (*entities.Producer, error)
}

type Result struct {
	Created int
	Skipped int
}

func Load(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return f, nil
}

// Apply creates every producer in f. Producers whose tax ID is already
// registered are skipped so a fixture can be applied more than once; any
// other failure stops the run.
func Apply(ctx context.Context, c Creator, f Fixture) (Result, error) {
	var res Result
	for i, in := range f.Producers {
		p, err := c.Create(ctx, in)
		switch {
		case errors.Is(err, service.ErrDuplicateTaxID):
			res.Skipped++
			log.Printf("[seed] producers[%d] skipped: %v", i, err)
		case err != nil:
			return res, fmt.Errorf("producers[%d]: %w", i, err)
		default:
			res.Created++
			log.Printf("[seed] producers[%d] created id=%d", i, p.ID)
		}
	}
	return res, nil
}
