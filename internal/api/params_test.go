package api

import (
	"errors"
	"testing"

	"github.com/bbernstein/storelocator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		want    models.Position
		wantErr error
	}{
		{
			name:   "valid coordinates",
			params: map[string]string{"lat": "47.6062", "lon": "-122.3321"},
			want:   models.Position{Longitude: -122.3321, Latitude: 47.6062},
		},
		{
			name:   "boundary values",
			params: map[string]string{"lat": "-90", "lon": "180"},
			want:   models.Position{Longitude: 180, Latitude: -90},
		},
		{
			name:    "missing lon",
			params:  map[string]string{"lat": "47.6062"},
			wantErr: MissingParameterError{},
		},
		{
			name:    "non-numeric latitude",
			params:  map[string]string{"lat": "north", "lon": "0"},
			wantErr: InvalidParameterError{},
		},
		{
			name:    "latitude out of range",
			params:  map[string]string{"lat": "91", "lon": "0"},
			wantErr: InvalidCoordinatesError{},
		},
		{
			name:    "longitude out of range",
			params:  map[string]string{"lat": "0", "lon": "-181"},
			wantErr: InvalidCoordinatesError{},
		},
		{
			name:    "NaN",
			params:  map[string]string{"lat": "NaN", "lon": "0"},
			wantErr: InvalidCoordinatesError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.params)
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			case MissingParameterError:
				assert.True(t, errors.As(err, &want))
			case InvalidParameterError:
				assert.True(t, errors.As(err, &want))
			case InvalidCoordinatesError:
				assert.True(t, errors.As(err, &want))
			}
		})
	}
}

func TestParseZoom(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		want    float64
		wantErr bool
	}{
		{name: "integer zoom", params: map[string]string{"zoom": "11"}, want: 11},
		{name: "fractional zoom", params: map[string]string{"zoom": "10.75"}, want: 10.75},
		{name: "zero", params: map[string]string{"zoom": "0"}, want: 0},
		{name: "missing", params: map[string]string{}, wantErr: true},
		{name: "negative", params: map[string]string{"zoom": "-1"}, wantErr: true},
		{name: "too large", params: map[string]string{"zoom": "25"}, wantErr: true},
		{name: "not a number", params: map[string]string{"zoom": "close"}, wantErr: true},
		{name: "NaN", params: map[string]string{"zoom": "NaN"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseZoom(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		want    models.Bounds
		wantOK  bool
		wantErr bool
	}{
		{
			name:   "valid bbox",
			params: map[string]string{"bbox": "-122.5,47.4,-122.1,47.8"},
			want:   models.Bounds{West: -122.5, South: 47.4, East: -122.1, North: 47.8},
			wantOK: true,
		},
		{
			name:   "spaces around values",
			params: map[string]string{"bbox": "-122.5, 47.4, -122.1, 47.8"},
			want:   models.Bounds{West: -122.5, South: 47.4, East: -122.1, North: 47.8},
			wantOK: true,
		},
		{
			name:   "crosses antimeridian",
			params: map[string]string{"bbox": "170,-10,-170,10"},
			want:   models.Bounds{West: 170, South: -10, East: -170, North: 10},
			wantOK: true,
		},
		{name: "absent", params: map[string]string{}},
		{name: "empty", params: map[string]string{"bbox": ""}},
		{name: "three values", params: map[string]string{"bbox": "1,2,3"}, wantErr: true},
		{name: "non-numeric", params: map[string]string{"bbox": "a,2,3,4"}, wantErr: true},
		{name: "out of range", params: map[string]string{"bbox": "-200,0,0,10"}, wantErr: true},
		{name: "south above north", params: map[string]string{"bbox": "0,10,1,5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseBounds(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParameterErrorMessages(t *testing.T) {
	assert.Equal(t, "Invalid coordinates", InvalidCoordinatesError{}.Error())
	assert.Equal(t, "Missing parameter: zoom", MissingParameterError{Name: "zoom"}.Error())
	assert.Equal(t, `Invalid zoom: "close"`, InvalidParameterError{Name: "zoom", Value: "close"}.Error())
}
