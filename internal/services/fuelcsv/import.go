package fuelcsv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"fuel_sense/internal/models"
	"fuel_sense/internal/services/notify"
)

// Store is what the importer needs from persistence. CreateEntry is the
// standard add-entry operation, so derived fields are recomputed there.
type Store interface {
	Vehicles() ([]models.Vehicle, error)
	CreateVehicle(name, vtype string) (models.Vehicle, error)
	CreateEntry(vehicleID uint, odometer, price, amount, distance float64) error
}

// Result reports what an import created.
type Result struct {
	VehiclesCreated int `json:"vehicles_created"`
	EntriesImported int `json:"entries_imported"`
	RowsSkipped     int `json:"rows_skipped"`
}

// Importer replays a CSV export line by line. Rows with malformed
// numbers are skipped; a single-vehicle data row appearing before any
// vehicle metadata aborts the whole import.
type Importer struct {
	Store    Store
	Notifier notify.Notifier // optional
}

func (im *Importer) Import(r io.Reader) (Result, error) {
	var res Result

	existing, err := im.Store.Vehicles()
	if err != nil {
		return res, fmt.Errorf("load vehicles: %w", err)
	}
	// Name -> vehicle cache, extended as vehicles get created mid-import.
	cache := make(map[string]models.Vehicle, len(existing))
	for _, v := range existing {
		cache[v.Name] = v
	}

	resolve := func(name, vtype string) (models.Vehicle, error) {
		if v, ok := cache[name]; ok {
			return v, nil
		}
		v, err := im.Store.CreateVehicle(name, vtype)
		if err != nil {
			return models.Vehicle{}, fmt.Errorf("create vehicle %q: %w", name, err)
		}
		cache[name] = v
		res.VehiclesCreated++
		return v, nil
	}

	var curName, curType string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		cl := Classify(line)

		switch cl.Kind {
		case LineVehicleName:
			curName = cl.Value
			curType = "car"

		case LineVehicleType:
			curType = NormalizeType(cl.Value)

		case LineSingleRow:
			if curName == "" {
				return res, fmt.Errorf("data row found before any vehicle metadata: %q", strings.TrimSpace(line))
			}
			odometer, amount, price, distance, ok := parseRow(cl.Fields, 1)
			if !ok {
				res.RowsSkipped++
				continue
			}
			v, err := resolve(curName, curType)
			if err != nil {
				return res, err
			}
			if err := im.Store.CreateEntry(v.ID, odometer, price, amount, distance); err != nil {
				return res, fmt.Errorf("create entry: %w", err)
			}
			res.EntriesImported++

		case LineMultiRow:
			name := strings.TrimSpace(cl.Fields[0])
			odometer, amount, price, distance, ok := parseRow(cl.Fields, 2)
			if !ok || name == "" {
				res.RowsSkipped++
				continue
			}
			v, err := resolve(name, "car")
			if err != nil {
				return res, err
			}
			if err := im.Store.CreateEntry(v.ID, odometer, price, amount, distance); err != nil {
				return res, fmt.Errorf("create entry: %w", err)
			}
			res.EntriesImported++
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read import data: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"vehicles": res.VehiclesCreated,
		"entries":  res.EntriesImported,
		"skipped":  res.RowsSkipped,
	}).Info("CSV import finished")

	if im.Notifier != nil {
		im.Notifier.Notify(notify.Notification{
			Level:   notify.LevelSuccess,
			Message: fmt.Sprintf("Imported %d entries (%d new vehicles)", res.EntriesImported, res.VehiclesCreated),
		})
	}
	return res, nil
}

// parseRow pulls odometer, amount, price and distance starting at the
// given offset (1 for single-vehicle rows, 2 for multi-vehicle rows,
// which carry the vehicle name in front). The label column before the
// odometer is ignored either way.
func parseRow(fields []string, start int) (odometer, amount, price, distance float64, ok bool) {
	nums := make([]float64, 4)
	for i := range nums {
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[start+i]), 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		nums[i] = f
	}
	return nums[0], nums[1], nums[2], nums[3], true
}
