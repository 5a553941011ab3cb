package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{
			name: "valid with reasons and sliders",
			profile: Profile{
				LanguagesSpoken: []string{"English"},
				Reasons:         []ReasonFlag{ReasonLowerTaxes, ReasonBetterWeather},
				TaxImportance:   intPtr(8),
			},
		},
		{
			name: "valid with languages only",
			profile: Profile{
				LanguagesSpoken: []string{"Spanish"},
			},
		},
		{
			name:    "empty profile rejected",
			profile: Profile{},
			wantErr: "no preferences provided",
		},
		{
			name: "unknown reason flag rejected",
			profile: Profile{
				Reasons: []ReasonFlag{"win_the_lottery"},
			},
			wantErr: "unknown reason flag",
		},
		{
			name: "slider above range rejected",
			profile: Profile{
				Reasons:       []ReasonFlag{ReasonLowerTaxes},
				TaxImportance: intPtr(11),
			},
			wantErr: "invalid profile",
		},
		{
			name: "slider below range rejected",
			profile: Profile{
				Reasons:        []ReasonFlag{ReasonBetterLgbtq},
				LgbtImportance: intPtr(0),
			},
			wantErr: "invalid profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfile_Validate_Nil(t *testing.T) {
	var p *Profile
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil")
}

func TestProfile_ReasonSet(t *testing.T) {
	p := Profile{Reasons: []ReasonFlag{ReasonLowerTaxes, ReasonRemoteWork, ReasonLowerTaxes}}

	set := p.ReasonSet()
	assert.True(t, set[ReasonLowerTaxes])
	assert.True(t, set[ReasonRemoteWork])
	assert.False(t, set[ReasonBetterWeather])
	assert.Len(t, set, 2)
}

func TestProfile_SpeaksEnglish(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		want      bool
	}{
		{"exact match", []string{"English"}, true},
		{"case-insensitive", []string{"ENGLISH"}, true},
		{"with whitespace", []string{"  english "}, true},
		{"among others", []string{"Spanish", "English", "German"}, true},
		{"not spoken", []string{"Spanish", "French"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{LanguagesSpoken: tt.languages}
			assert.Equal(t, tt.want, p.SpeaksEnglish())
		})
	}
}

func TestSliderOrDefault(t *testing.T) {
	assert.Equal(t, 5, SliderOrDefault(intPtr(5), 7))
	assert.Equal(t, 7, SliderOrDefault(nil, 7))
	assert.Equal(t, 1, SliderOrDefault(intPtr(-3), 7))
	assert.Equal(t, 10, SliderOrDefault(intPtr(42), 7))
	assert.Equal(t, 1, SliderOrDefault(nil, 0))
}

func TestReasonFlag_IsValid(t *testing.T) {
	assert.True(t, ReasonLowerTaxes.IsValid())
	assert.True(t, ReasonCultureMediterranean.IsValid())
	assert.False(t, ReasonFlag("").IsValid())
	assert.False(t, ReasonFlag("teleportation").IsValid())
}
