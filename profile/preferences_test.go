package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name    string
		input   PreferencesInput
		wantErr error
	}{
		{
			name:    "missing everything",
			input:   PreferencesInput{},
			wantErr: ErrMissingLocation,
		},
		{
			name:    "missing longitude",
			input:   PreferencesInput{Latitude: f(52.37), RadiusKm: f(5)},
			wantErr: ErrMissingLocation,
		},
		{
			name:    "missing radius",
			input:   PreferencesInput{Latitude: f(52.37), Longitude: f(4.89)},
			wantErr: ErrMissingRadius,
		},
		{
			name:    "latitude out of range",
			input:   PreferencesInput{Latitude: f(91), Longitude: f(4.89), RadiusKm: f(5)},
			wantErr: ErrInvalidLocation,
		},
		{
			name:    "radius too small",
			input:   PreferencesInput{Latitude: f(52.37), Longitude: f(4.89), RadiusKm: f(0)},
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "radius too large",
			input:   PreferencesInput{Latitude: f(52.37), Longitude: f(4.89), RadiusKm: f(250)},
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "unknown tier",
			input:   PreferencesInput{Latitude: f(52.37), Longitude: f(4.89), RadiusKm: f(5), Tier: "platinum"},
			wantErr: ErrInvalidTier,
		},
		{
			name:  "valid",
			input: PreferencesInput{Latitude: f(52.37), Longitude: f(4.89), Address: "Amsterdam", RadiusKm: f(5)},
		},
		{
			name:  "valid with tier",
			input: PreferencesInput{Latitude: f(-33.86), Longitude: f(151.2), RadiusKm: f(25), Tier: "champion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePreferences(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
