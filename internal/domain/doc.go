// Package domain models a one-day weather report and its delivery targets.
//
// # Forecast Normalization
//
// The forecast provider has shipped two response shapes over the life of
// this tool: a JSON document with a "list" of daily entries, and an XML
// document with a <forecast> root of attribute-bearing <time> nodes. Both
// are normalized into one canonical [DailyForecast] so composition never
// sees provider shape.
//
// JSON requests ask for two days and filter to the entry whose Unix
// timestamp falls on today's calendar date; near midnight the provider may
// answer with tomorrow only, which is [ErrNoForecastForToday]. XML requests
// ask for exactly one day, so the first <time> node is taken unfiltered.
//
// Precipitation is restricted to the four kinds the report names (rain,
// snow, sleet, hail). A kind the provider omits stays absent rather than
// defaulting to zero, and zero amounts are dropped, so the Precipitation
// map only ever holds positive millimetre amounts.
//
// Wind speed is stored in m/s as the provider reports it. The composed
// report promises km/h; the ×3.6 conversion happens at render time.
//
// # Compass Directions
//
// Wind bearings classify into 16 sectors of 22.5°, each covering
// (lower, upper] with north wrapping the 0°/360° seam. The full-name label
// for SE is "southest", an irregular spelling that has appeared in every
// delivered message to date and is preserved deliberately.
//
// # Recipient Resolution
//
// Tokens prefixed "@" or "#" are already canonical ids and pass through
// untouched. Anything else is a case-insensitive pattern matched against
// the workspace directory; see [Resolve] for the display-name/real-name
// precedence and the ambiguity contract. Resolution never guesses: several
// matches come back as [Ambiguous] for the caller to report.
package domain
