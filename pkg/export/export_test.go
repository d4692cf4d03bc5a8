package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/productionplan/core/model"
)

func sampleAllocation() model.Allocation {
	wind := model.PlantState{Spec: model.PlantSpec{Name: "windpark1", Kind: model.WindTurbine, Efficiency: 1, PMax: 150}, EffectiveMax: 90}
	gas := model.PlantState{Spec: model.PlantSpec{Name: "gasfiredbig1", Kind: model.GasFired, Efficiency: 0.5, PMax: 460}, EffectiveMax: 460, UnitCost: 26.8}
	return model.Allocation{
		Dispatches: []model.Dispatch{{Plant: wind, Production: 90}, {Plant: gas, Production: 110.5}},
		TotalCost:  110.5 * 26.8,
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleAllocation()))
	assert.Contains(t, buf.String(), "\n  {")

	var got []model.Production
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []model.Production{{Name: "windpark1", P: 90}, {Name: "gasfiredbig1", P: 110.5}}, got)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleAllocation()))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "kind", "unit_cost", "effective_max", "p"}, rows[0])
	assert.Equal(t, []string{"gasfiredbig1", "gasfired", "26.8", "460", "110.5"}, rows[2])
}

func TestWriteMeritOrderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMeritOrderChart(&buf, sampleAllocation(), 200.5))
	out := buf.String()
	assert.True(t, strings.Contains(out, "<html"), "expected an html page")
	assert.Contains(t, out, "windpark1")
	assert.Contains(t, out, "Merit order")
}
