// Package fuelcsv serializes fuel entries to the app's CSV export format
// and parses the format family back, including older export variants.
package fuelcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"fuel_sense/internal/models"
)

// entryHeader is the fixed 7-column data header of a single-vehicle
// export. The import side keys off column positions, not these labels.
var entryHeader = []string{
	"Date", "Odometer", "Fuel Amount", "Petrol Price", "Distance", "Fuel Used", "Efficiency (km/l)",
}

const exportDateFormat = "2006-01-02"

// ExportVehicle writes one vehicle's entries: a 3-line metadata header,
// a blank line, the column header, then one row per entry. Money, volume
// and efficiency columns carry fixed 2-decimal precision.
func ExportVehicle(w io.Writer, vehicle models.Vehicle, entries []models.FuelEntry, exportedAt time.Time) error {
	if _, err := fmt.Fprintf(w, "Vehicle: %s\nType: %s\nExport Date: %s\n\n",
		vehicle.Name, vehicle.Type, exportedAt.Format(exportDateFormat)); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(entryHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(entryRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportAll writes every vehicle's entries in the multi-vehicle variant:
// an extra leading Vehicle column, no per-section metadata header.
func ExportAll(w io.Writer, vehicles []models.Vehicle, entriesByVehicle map[uint][]models.FuelEntry) error {
	cw := csv.NewWriter(w)
	header := append([]string{"Vehicle"}, entryHeader...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range vehicles {
		for _, e := range entriesByVehicle[v.ID] {
			if err := cw.Write(append([]string{v.Name}, entryRow(e)...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func entryRow(e models.FuelEntry) []string {
	return []string{
		e.CreatedAt.Format(exportDateFormat),
		strconv.FormatFloat(e.Odometer, 'f', -1, 64),
		fmt.Sprintf("%.2f", e.AmountPaid),
		fmt.Sprintf("%.2f", e.PricePerLiter),
		strconv.FormatFloat(e.Distance, 'f', -1, 64),
		fmt.Sprintf("%.2f", e.FuelUsed),
		fmt.Sprintf("%.2f", e.Efficiency),
	}
}
