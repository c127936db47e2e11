package geofy

import (
	"bytes"
	"math/big"
	"strings"

	"github.com/bep/imagemeta"
)

// GeoCoordinate is a decimal-degree position embedded in image metadata.
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are inside their legal ranges.
func (c GeoCoordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// gpsTags maps (source, tag-name) → true for every GPS tag we care about.
var gpsTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"GPSLatitude":     true,
		"GPSLatitudeRef":  true,
		"GPSLongitude":    true,
		"GPSLongitudeRef": true,
	},
}

// ExtractLocation parses embedded GPS metadata from raw image bytes.
// Returns nil if the image carries no metadata, if either coordinate
// component is missing, or if the decoded position is out of range.
// Graceful degradation: never returns an error.
func ExtractLocation(data []byte) *GeoCoordinate {
	if len(data) == 0 {
		return nil
	}

	var (
		lat, lon       float64
		latRef, lonRef string
		hasLat, hasLon bool
	)

	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := gpsTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			switch ti.Tag {
			case "GPSLatitude":
				if v, ok := tagValueDegrees(ti.Value); ok {
					lat, hasLat = v, true
				}
			case "GPSLongitude":
				if v, ok := tagValueDegrees(ti.Value); ok {
					lon, hasLon = v, true
				}
			case "GPSLatitudeRef":
				latRef = tagValueRef(ti.Value)
			case "GPSLongitudeRef":
				lonRef = tagValueRef(ti.Value)
			}
			return nil
		},
	})
	if err != nil || !hasLat || !hasLon {
		return nil
	}

	coord := GeoCoordinate{
		Lat: applyHemisphere(lat, latRef),
		Lon: applyHemisphere(lon, lonRef),
	}
	if !coord.Valid() {
		return nil
	}
	return &coord
}

// DMSToDecimal converts a degrees/minutes/seconds triple to decimal
// degrees. A reference hemisphere of "S" or "W" negates the magnitude.
func DMSToDecimal(deg, min, sec float64, ref string) float64 {
	return applyHemisphere(deg+min/60+sec/3600, ref)
}

// applyHemisphere negates v when ref names the southern or western
// hemisphere. Magnitudes are stored unsigned in EXIF; the sign lives in
// the Ref tag.
func applyHemisphere(v float64, ref string) float64 {
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		if v > 0 {
			return -v
		}
	}
	return v
}

// tagValueDegrees coerces a GPS coordinate tag value to unsigned decimal
// degrees. Decoders surface it either as a ready decimal float or as a
// three-element DMS sequence of floats/rationals.
func tagValueDegrees(v any) (float64, bool) {
	if f, ok := tagValueFloat(v); ok {
		return f, true
	}

	var parts []float64
	switch seq := v.(type) {
	case []float64:
		parts = seq
	case []any:
		for _, e := range seq {
			f, ok := tagValueFloat(e)
			if !ok {
				return 0, false
			}
			parts = append(parts, f)
		}
	default:
		return 0, false
	}

	switch len(parts) {
	case 1:
		return parts[0], true
	case 2:
		return parts[0] + parts[1]/60, true
	case 3:
		return parts[0] + parts[1]/60 + parts[2]/3600, true
	default:
		return 0, false
	}
}

func tagValueFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case *big.Rat:
		f, _ := val.Float64()
		return f, true
	case big.Rat:
		f, _ := val.Float64()
		return f, true
	default:
		if i, ok := tagValueInt(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// tagValueRef extracts the hemisphere reference ("N", "S", "E", "W").
func tagValueRef(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
