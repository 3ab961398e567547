package domain

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"time"
)

// SchemaVariant discriminates the provider response shapes the normalizer
// understands. The provider has shipped both over time; callers state which
// one they requested rather than sniffing the payload.
type SchemaVariant string

const (
	VariantDailyJSON SchemaVariant = "json"
	VariantXML       SchemaVariant = "xml"
)

// Normalize converts a raw provider payload into the canonical DailyForecast.
// JSON payloads are filtered to the entry dated today; XML payloads take the
// first forecast node because the request already constrains the provider to
// a single day.
func Normalize(payload []byte, variant SchemaVariant) (*DailyForecast, error) {
	switch variant {
	case VariantDailyJSON:
		return normalizeJSON(payload)
	case VariantXML:
		return normalizeXML(payload)
	default:
		return nil, fmt.Errorf("%w: unknown schema variant %q", ErrMalformedPayload, variant)
	}
}

// jsonResponse mirrors the provider's daily-forecast JSON. Precipitation
// fields are pointers so an absent key stays absent instead of reading as a
// zero amount.
type jsonResponse struct {
	List []jsonEntry `json:"list"`
}

type jsonEntry struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Deg     float64 `json:"deg"`
	Speed   float64 `json:"speed"`
	Clouds  float64 `json:"clouds"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Rain  *float64 `json:"rain"`
	Snow  *float64 `json:"snow"`
	Sleet *float64 `json:"sleet"`
	Hail  *float64 `json:"hail"`
}

func normalizeJSON(payload []byte) (*DailyForecast, error) {
	var resp jsonResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode daily json: %v", ErrMalformedPayload, err)
	}
	if resp.List == nil {
		return nil, fmt.Errorf("%w: missing forecast list", ErrMalformedPayload)
	}

	today, ok := entryForToday(resp.List)
	if !ok {
		return nil, fmt.Errorf("%w: %d entries, none dated today", ErrNoForecastForToday, len(resp.List))
	}

	if len(today.Weather) == 0 {
		return nil, fmt.Errorf("%w: missing weather conditions", ErrMalformedPayload)
	}

	precip := map[PrecipKind]float64{}
	addPrecip(precip, PrecipRain, today.Rain)
	addPrecip(precip, PrecipSnow, today.Snow)
	addPrecip(precip, PrecipSleet, today.Sleet)
	addPrecip(precip, PrecipHail, today.Hail)

	return buildForecast(
		today.Temp.Max, today.Temp.Min,
		today.Deg, today.Speed,
		today.Weather[0].Description, today.Clouds,
		precip, today.Weather[0].Icon,
	)
}

// entryForToday picks the first entry whose timestamp falls on today's
// calendar date, regardless of array order. Near midnight the provider may
// return only tomorrow's forecasts, in which case nothing matches.
func entryForToday(entries []jsonEntry) (jsonEntry, bool) {
	now := clock.Now()
	for _, e := range entries {
		y1, m1, d1 := time.Unix(e.Dt, 0).Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return e, true
		}
	}
	return jsonEntry{}, false
}

// addPrecip records an amount only when the provider sent the key and the
// amount is positive. Dry kinds never appear in the map.
func addPrecip(precip map[PrecipKind]float64, kind PrecipKind, amount *float64) {
	if amount != nil && *amount > 0 {
		precip[kind] = *amount
	}
}

// xmlResponse mirrors the provider's single-day XML forecast: a <forecast>
// root whose <time> children carry attribute-bearing sub-elements.
type xmlResponse struct {
	XMLName xml.Name  `xml:"forecast"`
	Days    []xmlTime `xml:"time"`
}

type xmlTime struct {
	Symbol struct {
		Name string `xml:"name,attr"`
		Var  string `xml:"var,attr"`
	} `xml:"symbol"`
	Precipitation *struct {
		Value float64 `xml:"value,attr"`
		Type  string  `xml:"type,attr"`
	} `xml:"precipitation"`
	WindDirection struct {
		Deg float64 `xml:"deg,attr"`
	} `xml:"windDirection"`
	WindSpeed struct {
		Mps float64 `xml:"mps,attr"`
	} `xml:"windSpeed"`
	Temperature struct {
		Min float64 `xml:"min,attr"`
		Max float64 `xml:"max,attr"`
	} `xml:"temperature"`
	Clouds struct {
		All float64 `xml:"all,attr"`
	} `xml:"clouds"`
}

func normalizeXML(payload []byte) (*DailyForecast, error) {
	var resp xmlResponse
	if err := xml.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode xml forecast: %v", ErrMalformedPayload, err)
	}
	if len(resp.Days) == 0 {
		return nil, fmt.Errorf("%w: forecast has no time nodes", ErrMalformedPayload)
	}

	day := resp.Days[0]

	precip := map[PrecipKind]float64{}
	if p := day.Precipitation; p != nil && p.Value > 0 {
		if kind, ok := precipKind(p.Type); ok {
			precip[kind] = p.Value
		}
	}

	return buildForecast(
		day.Temperature.Max, day.Temperature.Min,
		day.WindDirection.Deg, day.WindSpeed.Mps,
		day.Symbol.Name, day.Clouds.All,
		precip, day.Symbol.Var,
	)
}

func precipKind(s string) (PrecipKind, bool) {
	for _, kind := range PrecipKinds {
		if string(kind) == s {
			return kind, true
		}
	}
	return "", false
}

// buildForecast assembles the canonical record and enforces its invariants:
// temperatures ordered, bearing folded into [0, 360).
func buildForecast(high, low, bearing, speedMps float64, sky string, cloud float64, precip map[PrecipKind]float64, icon string) (*DailyForecast, error) {
	if high < low {
		return nil, fmt.Errorf("%w: high %.1f below low %.1f", ErrMalformedPayload, high, low)
	}
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return nil, fmt.Errorf("%w: wind bearing %v", ErrMalformedPayload, bearing)
	}

	bearing = math.Mod(bearing, 360)
	if bearing < 0 {
		bearing += 360
	}

	return &DailyForecast{
		HighTempC:         high,
		LowTempC:          low,
		WindBearingDeg:    bearing,
		WindSpeedMps:      speedMps,
		SkyDescription:    sky,
		CloudCoverPercent: cloud,
		Precipitation:     precip,
		IconCode:          icon,
	}, nil
}
