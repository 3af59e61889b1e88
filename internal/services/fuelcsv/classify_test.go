package fuelcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMetadataLines(t *testing.T) {
	cl := Classify("Vehicle: Swift")
	assert.Equal(t, LineVehicleName, cl.Kind)
	assert.Equal(t, "Swift", cl.Value)

	cl = Classify("Type: bike")
	assert.Equal(t, LineVehicleType, cl.Kind)
	assert.Equal(t, "bike", cl.Value)

	// Leading whitespace is tolerated.
	cl = Classify("  Vehicle: Activa 6G")
	assert.Equal(t, LineVehicleName, cl.Kind)
	assert.Equal(t, "Activa 6G", cl.Value)
}

func TestClassifySingleVehicleRow(t *testing.T) {
	cl := Classify("2025-06-03,1250,840.00,105.00,150,8.00,18.75")
	require.Equal(t, LineSingleRow, cl.Kind)
	assert.Len(t, cl.Fields, 7)
	assert.Equal(t, "1250", cl.Fields[1])
}

func TestClassifyMultiVehicleRow(t *testing.T) {
	cl := Classify("Swift,2025-06-03,1250,840.00,105.00,150,8.00,18.75")
	require.Equal(t, LineMultiRow, cl.Kind)
	assert.Len(t, cl.Fields, 8)
	assert.Equal(t, "Swift", cl.Fields[0])
}

// An 8-field line whose second column is numeric matches both formats;
// the single-vehicle reading wins.
func TestClassifySingleRowPrecedence(t *testing.T) {
	cl := Classify("2025-06-03,1250,840.00,105.00,150,8.00,18.75,extra")
	assert.Equal(t, LineSingleRow, cl.Kind)
}

func TestClassifyHeaderAndJunkLines(t *testing.T) {
	// Single-vehicle column header: 7 fields but a textual odometer column.
	cl := Classify("Date,Odometer,Fuel Amount,Petrol Price,Distance,Fuel Used,Efficiency (km/l)")
	assert.Equal(t, LineUnrecognized, cl.Kind)

	// Multi-vehicle header has 8 fields, so it classifies as a data row
	// and gets skipped later when its numbers fail to parse.
	cl = Classify("Vehicle,Date,Odometer,Fuel Amount,Petrol Price,Distance,Fuel Used,Efficiency (km/l)")
	assert.Equal(t, LineMultiRow, cl.Kind)

	assert.Equal(t, LineUnrecognized, Classify("").Kind)
	assert.Equal(t, LineUnrecognized, Classify("Export Date: 2025-06-03").Kind)
	assert.Equal(t, LineUnrecognized, Classify("just,a,few,fields").Kind)
}

func TestNormalizeType(t *testing.T) {
	assert.Equal(t, "car", NormalizeType("car"))
	assert.Equal(t, "bike", NormalizeType("bike"))
	// Only the exact tokens count; anything else defaults to "car".
	assert.Equal(t, "car", NormalizeType("Bike"))
	assert.Equal(t, "car", NormalizeType(" bike "))
	assert.Equal(t, "car", NormalizeType("truck"))
	assert.Equal(t, "car", NormalizeType(""))
}
