package domain

import "fmt"

// Message templates. Temperatures and wind speed render as whole numbers via
// %.0f on the stored floats (fmt rounds half to even); precipitation amounts
// keep one decimal. The wording is the product copy users have received for
// years, degree signs included.
const (
	iconURLTemplate = "http://openweathermap.org/img/w/%s.png"

	fallbackText = "Unable to fetch weather data."

	verboseTemplate = "Today's temperature is expected to have a high of %.0f°C" +
		" and a low of %.0f°C. The wind will be %s %.0f km/h." +
		" Looking up, you should expect to see %s with %.0f%% cloud cover."
	verbosePrecip = " It looks like %s today, about %.1f millimetres."

	terseTemplate = "High: %.0f°C, Low: %.0f°C\nWind: %s %.0f km/h\nCloud cover: %s (%.0f%%)"
	tersePrecip   = "\nPrecipitation: %.1f mm %s"

	// Wind speed arrives in m/s; the report promises km/h.
	mpsToKmh = 3.6
)

// Compose renders a forecast into the verbose or terse report. A nil
// forecast is not an error: it produces the fixed degraded report with no
// icon, so an upstream fetch failure still yields a deliverable message.
// Compose is pure; the same forecast always renders to identical bytes.
func Compose(f *DailyForecast, terse bool) ComposedMessage {
	if f == nil {
		return ComposedMessage{Text: fallbackText}
	}

	direction, err := Classify(f.WindBearingDeg, terse)
	if err != nil {
		// Normalization folds bearings into [0, 360), so only a forecast
		// constructed by hand can get here. Render without aborting.
		direction = "?"
	}

	text := verboseTemplate
	precipLine := verbosePrecip
	if terse {
		text = terseTemplate
		precipLine = tersePrecip
	}

	text = fmt.Sprintf(text,
		f.HighTempC, f.LowTempC,
		direction, f.WindSpeedMps*mpsToKmh,
		f.SkyDescription, f.CloudCoverPercent,
	)

	for _, kind := range PrecipKinds {
		amount, ok := f.Precipitation[kind]
		if !ok {
			continue
		}
		if terse {
			text += fmt.Sprintf(precipLine, amount, kind)
		} else {
			text += fmt.Sprintf(precipLine, kind, amount)
		}
	}

	return ComposedMessage{
		Text:    text,
		IconURL: fmt.Sprintf(iconURLTemplate, f.IconCode),
	}
}
