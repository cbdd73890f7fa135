// Package display turns weather snapshots into the strings and icon names a screen renders.
package display

import "strings"

// Icon is a symbolic icon name understood by the rendering layer
type Icon string

const (
	IconSunny        Icon = "sunny"
	IconMoon         Icon = "moon"
	IconCloudyNight  Icon = "cloudy-night"
	IconCloud        Icon = "cloud"
	IconRainy        Icon = "rainy"
	IconSnow         Icon = "snow"
	IconThunderstorm Icon = "thunderstorm"
	IconPartlySunny  Icon = "partly-sunny"
)

// Icons lists every identifier SelectIcon can return
func Icons() []Icon {
	return []Icon{
		IconSunny, IconMoon, IconCloudyNight, IconCloud,
		IconRainy, IconSnow, IconThunderstorm, IconPartlySunny,
	}
}

// SelectIcon maps a weather description and the local hour to an icon.
// The first matching rule wins; matching is a case-sensitive substring test.
//
// The day/night choice in the first two rules is kept exactly as the app has always
// shipped it: "sunny" after 18:00 and "cloudy-night" after 06:00.
func SelectIcon(description string, localHour int) Icon {
	switch {
	case strings.Contains(description, "clear sky"):
		if localHour > 18 {
			return IconSunny
		}
		return IconMoon
	case strings.Contains(description, "cloud"):
		if localHour > 6 {
			return IconCloudyNight
		}
		return IconCloud
	case strings.Contains(description, "moderate rain"):
		return IconRainy
	case strings.Contains(description, "snow"):
		return IconSnow
	case strings.Contains(description, "storm"):
		return IconThunderstorm
	default:
		return IconPartlySunny
	}
}
