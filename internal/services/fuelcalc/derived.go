// Package fuelcalc derives distance, fuel volume and efficiency for a
// fill-up from its raw inputs and the previous odometer reading.
package fuelcalc

import "fmt"

// Derived holds the three computed fields of a fuel entry.
type Derived struct {
	Distance   float64 // km since previous entry
	FuelUsed   float64 // liters
	Efficiency float64 // km per liter
}

// Rules configures optional validation. Odometer rollback has never been
// rejected historically (odometer swaps/resets exist), so RejectRollback
// defaults to off.
type Rules struct {
	RejectRollback bool
}

// Compute derives distance, fuel used and efficiency. prevOdo < 0 means
// "no previous entry"; the caller then supplies the distance itself (or
// it stays 0). Divisions by zero yield 0 rather than an error.
func Compute(prevOdo, odo, price, amount float64) Derived {
	var d Derived
	if prevOdo >= 0 {
		d.Distance = odo - prevOdo
	}
	if price > 0 {
		d.FuelUsed = amount / price
	}
	if d.FuelUsed > 0 {
		d.Efficiency = d.Distance / d.FuelUsed
	}
	return d
}

// ComputeWithDistance is Compute for the first entry of a vehicle, where
// the distance is taken as given instead of derived from odometers.
func ComputeWithDistance(distance, price, amount float64) Derived {
	d := Derived{Distance: distance}
	if price > 0 {
		d.FuelUsed = amount / price
	}
	if d.FuelUsed > 0 {
		d.Efficiency = d.Distance / d.FuelUsed
	}
	return d
}

// Validate applies the configured rules to a computed entry.
func (r Rules) Validate(prevOdo, odo float64) error {
	if r.RejectRollback && prevOdo >= 0 && odo < prevOdo {
		return fmt.Errorf("odometer %.0f is behind previous reading %.0f", odo, prevOdo)
	}
	return nil
}
