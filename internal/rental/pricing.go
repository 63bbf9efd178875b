package rental

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/vehicle-rental/internal/model"
)

// Quote is the priced breakdown of a booking.  Total is computed once here
// and stored as the invoice amount; it is never re-derived from the lines.
type Quote struct {
	Days       int
	RentalCost decimal.Decimal
	FuelCost   decimal.Decimal
	Total      decimal.Decimal
}

// Price computes the rental charge (daily price times days) and the full-tank
// fuel charge (tank capacity times the per-liter price of the model's fuel).
func Price(p model.VehiclePricing, days int) Quote {
	fuel := decimal.NewFromInt(int64(p.TankCapacity)).Mul(p.PricePerLiter)
	rent := p.DailyPrice.Mul(decimal.NewFromInt(int64(days)))
	return Quote{
		Days:       days,
		RentalCost: rent,
		FuelCost:   fuel,
		Total:      rent.Add(fuel),
	}
}

// RentalLineDescription is the text of the invoice line for the days charge.
func RentalLineDescription(days int, modelID string) string {
	return fmt.Sprintf("%d dias de alquiler, vehiculo modelo %s", days, modelID)
}

// FuelLineDescription is the text of the invoice line for the fuel charge.
func FuelLineDescription(capacity int, fuelType string) string {
	return fmt.Sprintf("Deposito lleno de %d litros de %s", capacity, fuelType)
}

// Lines builds the two invoice lines of a quote for the given invoice.
func (q Quote) Lines(invoiceNumber uint64, p model.VehiclePricing) []model.InvoiceLine {
	return []model.InvoiceLine{
		{
			InvoiceNumber: invoiceNumber,
			Description:   RentalLineDescription(q.Days, p.ModelID),
			Amount:        q.RentalCost,
		},
		{
			InvoiceNumber: invoiceNumber,
			Description:   FuelLineDescription(p.TankCapacity, p.FuelType),
			Amount:        q.FuelCost,
		},
	}
}
