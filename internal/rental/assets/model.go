package assets

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Availability string

const (
	Available      Availability = "Available"
	Rented         Availability = "Rented"
	InMaintenance  Availability = "InMaintenance"
	Decommissioned Availability = "Decommissioned"
)

func (a Availability) Valid() bool {
	switch a {
	case Available, Rented, InMaintenance, Decommissioned:
		return true
	}
	return false
}

// transitions lists the states reachable from each state. Decommissioned is terminal.
var transitions = map[Availability][]Availability{
	Available:     {Rented, InMaintenance, Decommissioned},
	Rented:        {Available, InMaintenance, Decommissioned},
	InMaintenance: {Available, Decommissioned},
}

func (a Availability) CanTransitionTo(next Availability) bool {
	for _, s := range transitions[a] {
		if s == next {
			return true
		}
	}
	return false
}

// Asset is one physical unit. ProductID never changes after creation.
type Asset struct {
	ID               int64               `db:"id"`
	CompanyID        int64               `db:"company_id"`
	ProductID        int64               `db:"product_id"`
	WarehouseID      sql.NullInt64       `db:"warehouse_id"`
	Code             string              `db:"code"`
	Condition        string              `db:"physical_condition"`
	Availability     Availability        `db:"availability"`
	Active           bool                `db:"is_active"`
	AcquiredOn       sql.NullTime        `db:"acquired_on"`
	AcquisitionCost  decimal.NullDecimal `db:"acquisition_cost"`
	DepreciationRate decimal.NullDecimal `db:"depreciation_rate"` // percent per year
	Notes            sql.NullString      `db:"notes"`
	CreatedAt        time.Time           `db:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at"`
}

// BookValue applies straight-line depreciation up to at, floored at zero.
func (a *Asset) BookValue(at time.Time) (decimal.Decimal, bool) {
	if !a.AcquisitionCost.Valid || !a.AcquiredOn.Valid {
		return decimal.Zero, false
	}
	cost := a.AcquisitionCost.Decimal
	if !a.DepreciationRate.Valid || at.Before(a.AcquiredOn.Time) {
		return cost, true
	}
	years := decimal.NewFromFloat(at.Sub(a.AcquiredOn.Time).Hours() / (24 * 365))
	lost := cost.Mul(a.DepreciationRate.Decimal).Div(decimal.NewFromInt(100)).Mul(years)
	v := cost.Sub(lost).Round(2)
	if v.IsNegative() {
		return decimal.Zero, true
	}
	return v, true
}

type AssetFilter struct {
	ProductID    *int64
	WarehouseID  *int64
	Availability *Availability
	Active       *bool
	Code         string
}

type Page struct {
	Limit  int
	Offset int
	Order  string
}

func (p Page) normalized() Page {
	if p.Limit <= 0 || p.Limit > 500 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// LabelRow is one line of a label printer CSV.
type LabelRow struct {
	Code        string        `db:"code"`
	ProductName string        `db:"product_name"`
	SKU         string        `db:"sku"`
	WarehouseID sql.NullInt64 `db:"warehouse_id"`
}
