package oicp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoCoordinates_MarshalJSON(t *testing.T) {
	g, err := NewGeoCoordinates(50.931, 7.67)
	require.NoError(t, err)

	tests := []struct {
		name     string
		format   GeoCoordinatesResponseFormat
		expected string
	}{
		{"decimal degree", GeoFormatDecimalDegree, `{"DecimalDegree":{"Longitude":"7.670000","Latitude":"50.931000"}}`},
		{"google", GeoFormatGoogle, `{"Google":{"Coordinates":"50.931000 7.670000"}}`},
		{"degree minute seconds", GeoFormatDegreeMinuteSeconds, `{"DegreeMinuteSeconds":{"Longitude":"E 7° 40' 12.000\"","Latitude":"N 50° 55' 51.600\""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(g.WithFormat(tt.format))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))

			var parsed GeoCoordinates
			require.NoError(t, json.Unmarshal(data, &parsed))
			assert.True(t, g.WithFormat(tt.format).Equal(parsed))
		})
	}
}

func TestGeoCoordinates_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{name: "google with comma", input: `{"Google":{"Coordinates":"-33.8688, 151.2093"}}`, lat: -33.8688, lon: 151.2093},
		{name: "southern west DMS", input: `{"DegreeMinuteSeconds":{"Latitude":"S 33° 52' 7.680\"","Longitude":"W 70° 30' 0\""}}`, lat: -33.8688, lon: -70.5},
		{name: "missing variant", input: `{}`, wantErr: true},
		{name: "latitude out of range", input: `{"DecimalDegree":{"Latitude":"95.000000","Longitude":"7.000000"}}`, wantErr: true},
		{name: "malformed decimal", input: `{"DecimalDegree":{"Latitude":"north","Longitude":"7.000000"}}`, wantErr: true},
		{name: "wrong hemisphere", input: `{"DegreeMinuteSeconds":{"Latitude":"E 33° 52' 7.680\"","Longitude":"W 70° 30' 0\""}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g GeoCoordinates
			err := json.Unmarshal([]byte(tt.input), &g)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, g.Latitude, 1e-6)
			assert.InDelta(t, tt.lon, g.Longitude, 1e-6)
		})
	}
}

func TestNewGeoCoordinates_Range(t *testing.T) {
	_, err := NewGeoCoordinates(0, 181)
	assert.Error(t, err)
	_, err = NewGeoCoordinates(-91, 0)
	assert.Error(t, err)
}
