package display

import (
	"slices"
	"testing"
	"testing/quick"
)

func TestSelectIcon(t *testing.T) {
	tests := []struct {
		name        string
		description string
		hour        int
		expected    Icon
	}{
		{"clear sky evening", "clear sky", 20, IconSunny},
		{"clear sky at 18", "clear sky", 18, IconMoon},
		{"clear sky morning", "clear sky", 9, IconMoon},
		{"cloud after six", "broken clouds", 7, IconCloudyNight},
		{"cloud at six", "overcast clouds", 6, IconCloud},
		{"light cloud night", "light cloud", 3, IconCloud},
		{"moderate rain", "moderate rain", 12, IconRainy},
		{"light rain falls through", "light rain", 12, IconPartlySunny},
		{"snow", "light snow", 12, IconSnow},
		{"storm", "thunderstorm with rain", 12, IconThunderstorm},
		{"default", "mist", 12, IconPartlySunny},
		{"empty", "", 0, IconPartlySunny},
		{"case sensitive", "Clear Sky", 20, IconPartlySunny},
		{"first rule wins", "clear sky,few clouds", 20, IconSunny},
		{"cloud before rain", "moderate rain,overcast clouds", 12, IconCloudyNight},
		{"rain before snow", "moderate rain,snow", 12, IconRainy},
		{"snow before storm", "snow storm", 12, IconSnow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectIcon(tt.description, tt.hour); got != tt.expected {
				t.Errorf("SelectIcon(%q, %d) = %q, want %q", tt.description, tt.hour, got, tt.expected)
			}
		})
	}
}

func TestSelectIconIsTotalAndDeterministic(t *testing.T) {
	known := Icons()
	property := func(description string, hour int) bool {
		first := SelectIcon(description, hour)
		return slices.Contains(known, first) && SelectIcon(description, hour) == first
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}

	descriptions := []string{"clear sky", "few clouds", "moderate rain", "heavy snow", "thunderstorm", "haze"}
	for _, d := range descriptions {
		for hour := 0; hour <= 23; hour++ {
			if got := SelectIcon(d, hour); !slices.Contains(known, got) {
				t.Errorf("SelectIcon(%q, %d) = %q, not a known icon", d, hour, got)
			}
		}
	}
}
