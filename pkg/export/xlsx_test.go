package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agro/entities"
	"agro/pkg/producer/service"
)

func sample() []entities.Producer {
	return []entities.Producer{
		{
			ID: 1, TaxID: "11144477735", Name: "João",
			Properties: []entities.Property{
				{ID: 10, ProducerID: 1, Name: "Fazenda A", City: "Sorriso", State: "MT", TotalAreaHa: 100, ArableAreaHa: 60, VegetationAreaHa: 30,
					Crops: []entities.Crop{{ID: 100, PropertyID: 10, Name: "Soja", Season: "Safra 2024"}}},
			},
		},
		{ID: 2, TaxID: "11222333000181", Name: "Agro Ltda"},
	}
}

func TestWriteProducers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProducers(&buf, sample()))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	assert.Equal(t, []string{SheetProducers, SheetProperties, SheetCrops}, x.GetSheetList())

	rows, err := x.GetRows(SheetProducers)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "CPF/CNPJ", "Name", "Properties"}, rows[0])
	assert.Equal(t, []string{"1", "111.444.777-35", "João", "1"}, rows[1])
	assert.Equal(t, []string{"2", "11.222.333/0001-81", "Agro Ltda", "0"}, rows[2])

	rows, err = x.GetRows(SheetProperties)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"10", "1", "Fazenda A", "Sorriso", "MT", "100", "60", "30"}, rows[1])

	rows, err = x.GetRows(SheetCrops)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"100", "10", "Soja", "Safra 2024"}, rows[1])
}

func TestWriteProducersEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProducers(&buf, nil))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows(SheetCrops)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type pagedLister struct {
	all   []entities.Producer
	calls int
}

func (l *pagedLister) List(_ context.Context, q service.ListQuery) ([]entities.Producer, error) {
	l.calls++
	if q.Skip >= len(l.all) {
		return []entities.Producer{}, nil
	}
	end := q.Skip + q.Limit
	if end > len(l.all) {
		end = len(l.all)
	}
	return l.all[q.Skip:end], nil
}

func TestCollectAll(t *testing.T) {
	l := &pagedLister{all: make([]entities.Producer, 5)}
	out, err := CollectAll(context.Background(), l, 2)
	require.NoError(t, err)
	assert.Len(t, out, 5)
	assert.Equal(t, 3, l.calls)

	l = &pagedLister{all: make([]entities.Producer, 4)}
	out, err = CollectAll(context.Background(), l, 2)
	require.NoError(t, err)
	assert.Len(t, out, 4)
	assert.Equal(t, 3, l.calls, "a full last page needs one more empty read")
}
