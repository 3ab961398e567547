package domain

// PrecipKind names a kind of precipitation reported by the forecast provider.
type PrecipKind string

// Precipitation kinds carried through to the report. Anything else the
// provider reports is dropped during normalization.
const (
	PrecipRain  PrecipKind = "rain"
	PrecipSnow  PrecipKind = "snow"
	PrecipSleet PrecipKind = "sleet"
	PrecipHail  PrecipKind = "hail"
)

// PrecipKinds lists the recognized kinds in report order. Precipitation
// lines are rendered in this order regardless of map iteration order.
var PrecipKinds = []PrecipKind{PrecipRain, PrecipSnow, PrecipSleet, PrecipHail}

// DailyForecast is the canonical one-day forecast, independent of which
// provider schema it was normalized from. Wind speed is kept in m/s; the
// composer converts to km/h when rendering.
//
// Invariants: HighTempC >= LowTempC, WindBearingDeg in [0, 360), and
// Precipitation never holds zero or negative amounts (dry kinds are
// simply absent).
type DailyForecast struct {
	HighTempC         float64
	LowTempC          float64
	WindBearingDeg    float64
	WindSpeedMps      float64
	SkyDescription    string
	CloudCoverPercent float64
	Precipitation     map[PrecipKind]float64 // millimetres
	IconCode          string
}

// DestinationKind distinguishes users from channels.
type DestinationKind string

const (
	KindUser    DestinationKind = "user"
	KindChannel DestinationKind = "channel"
)

// Destination is one addressable recipient from the workspace directory.
type Destination struct {
	ID          string // canonical form: "@name" for users, "#name" for channels
	SlackID     string // platform-internal id, e.g. "U024BE7LH"
	DisplayName string // bare name without the prefix
	RealName    string // users only; empty when the workspace has none
	Kind        DestinationKind
}

// ComposedMessage is a rendered report ready for delivery. It is never
// mutated after composition; attention tags are appended onto per-recipient
// copies at dispatch time.
type ComposedMessage struct {
	Text    string
	IconURL string // empty for the degraded fallback report
}
