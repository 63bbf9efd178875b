package model

import "github.com/shopspring/decimal"

// VehiclePricing is the joined view of a vehicle (vehicles), its model
// (models) and the price of its fuel (fuel_prices).  It carries everything
// needed to quote a booking.
//
// Fields:
//  Plate         – vehicles.plate.
//  ModelID       – models.model_id, shown on the rental invoice line.
//  DailyPrice    – models.daily_price, charged per rental day.
//  TankCapacity  – models.tank_capacity in whole liters.
//  FuelType      – models.fuel_type.
//  PricePerLiter – fuel_prices.price_per_liter for FuelType.
type VehiclePricing struct {
    Plate         string
    ModelID       string
    DailyPrice    decimal.Decimal
    TankCapacity  int
    FuelType      string
    PricePerLiter decimal.Decimal
}
