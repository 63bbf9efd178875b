package rental

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vehicle-rental/internal/model"
)

func dieselModel() model.VehiclePricing {
	return model.VehiclePricing{
		Plate:         "1234ABC",
		ModelID:       "7",
		DailyPrice:    decimal.RequireFromString("30.00"),
		TankCapacity:  50,
		FuelType:      "diesel",
		PricePerLiter: decimal.RequireFromString("1.20"),
	}
}

func TestPrice(t *testing.T) {
	q := Price(dieselModel(), 4)

	assert.Equal(t, 4, q.Days)
	assert.True(t, q.RentalCost.Equal(decimal.RequireFromString("120.00")), "rental %s", q.RentalCost)
	assert.True(t, q.FuelCost.Equal(decimal.RequireFromString("60.00")), "fuel %s", q.FuelCost)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("180.00")), "total %s", q.Total)
}

func TestPrice_KeepsCents(t *testing.T) {
	p := dieselModel()
	p.DailyPrice = decimal.RequireFromString("19.99")
	p.TankCapacity = 43
	p.PricePerLiter = decimal.RequireFromString("1.679")

	q := Price(p, 3)

	assert.Equal(t, "59.97", q.RentalCost.StringFixed(2))
	assert.Equal(t, "72.197", q.FuelCost.String())
	assert.True(t, q.Total.Equal(q.RentalCost.Add(q.FuelCost)))
}

func TestQuoteLines(t *testing.T) {
	p := dieselModel()
	q := Price(p, 4)

	lines := q.Lines(31, p)

	require.Len(t, lines, 2)
	assert.Equal(t, uint64(31), lines[0].InvoiceNumber)
	assert.Equal(t, "4 dias de alquiler, vehiculo modelo 7", lines[0].Description)
	assert.True(t, lines[0].Amount.Equal(q.RentalCost))
	assert.Equal(t, uint64(31), lines[1].InvoiceNumber)
	assert.Equal(t, "Deposito lleno de 50 litros de diesel", lines[1].Description)
	assert.True(t, lines[1].Amount.Equal(q.FuelCost))

	sum := lines[0].Amount.Add(lines[1].Amount)
	assert.True(t, sum.Equal(q.Total))
}
