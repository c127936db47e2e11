package geofy

import (
	"math"
	"testing"
)

func TestDMSToDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		deg, min, sec float64
		ref           string
		want          float64
	}{
		{name: "north positive", deg: 48, min: 51, sec: 30.24, ref: "N", want: 48.8584},
		{name: "east positive", deg: 2, min: 17, sec: 40.2, ref: "E", want: 2.2945},
		{name: "south negative", deg: 33, min: 51, sec: 54, ref: "S", want: -33.865},
		{name: "west negative", deg: 122, min: 25, sec: 9.84, ref: "W", want: -122.4194},
		{name: "lowercase ref", deg: 10, min: 0, sec: 0, ref: "s", want: -10},
		{name: "ref with whitespace", deg: 10, min: 0, sec: 0, ref: " W ", want: -10},
		{name: "no ref keeps sign", deg: 10, min: 30, sec: 0, ref: "", want: 10.5},
		{name: "zero stays zero", deg: 0, min: 0, sec: 0, ref: "S", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DMSToDecimal(tc.deg, tc.min, tc.sec, tc.ref)
			if math.Abs(got-tc.want) > 1e-4 {
				t.Errorf("DMSToDecimal(%v, %v, %v, %q) = %v, want %v",
					tc.deg, tc.min, tc.sec, tc.ref, got, tc.want)
			}
		})
	}
}

func TestDMSHemisphereSign(t *testing.T) {
	t.Parallel()

	// For any valid magnitude, S/W yields a negative value and N/E a
	// non-negative one.
	magnitudes := []struct{ deg, min, sec float64 }{
		{0, 0, 1}, {1, 2, 3}, {89, 59, 59}, {179, 0, 0}, {45, 30, 15.5},
	}
	for _, m := range magnitudes {
		for _, ref := range []string{"S", "W"} {
			if v := DMSToDecimal(m.deg, m.min, m.sec, ref); v >= 0 {
				t.Errorf("DMSToDecimal(%v,%v,%v,%q) = %v, want negative", m.deg, m.min, m.sec, ref, v)
			}
		}
		for _, ref := range []string{"N", "E"} {
			if v := DMSToDecimal(m.deg, m.min, m.sec, ref); v < 0 {
				t.Errorf("DMSToDecimal(%v,%v,%v,%q) = %v, want non-negative", m.deg, m.min, m.sec, ref, v)
			}
		}
	}
}

func TestGeoCoordinateValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		coord GeoCoordinate
		want  bool
	}{
		{name: "paris", coord: GeoCoordinate{Lat: 48.8584, Lon: 2.2945}, want: true},
		{name: "poles", coord: GeoCoordinate{Lat: -90, Lon: 180}, want: true},
		{name: "zero zero", coord: GeoCoordinate{}, want: true},
		{name: "lat too big", coord: GeoCoordinate{Lat: 90.1}, want: false},
		{name: "lat too small", coord: GeoCoordinate{Lat: -90.1}, want: false},
		{name: "lon too big", coord: GeoCoordinate{Lon: 180.1}, want: false},
		{name: "lon too small", coord: GeoCoordinate{Lon: -181}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.coord.Valid(); got != tc.want {
				t.Errorf("Valid(%+v) = %v, want %v", tc.coord, got, tc.want)
			}
		})
	}
}

func TestExtractLocationNoMetadata(t *testing.T) {
	t.Parallel()

	if got := ExtractLocation(nil); got != nil {
		t.Errorf("ExtractLocation(nil) = %+v, want nil", got)
	}
	if got := ExtractLocation([]byte{}); got != nil {
		t.Errorf("ExtractLocation(empty) = %+v, want nil", got)
	}
	if got := ExtractLocation([]byte("not an image at all")); got != nil {
		t.Errorf("ExtractLocation(garbage) = %+v, want nil", got)
	}
}

func TestExtractLocationPlainPNG(t *testing.T) {
	t.Parallel()

	// PNG without EXIF: no coordinates, no error.
	data := testPNG(t, 4, 4, testWhite)
	if got := ExtractLocation(data); got != nil {
		t.Errorf("ExtractLocation(plain png) = %+v, want nil", got)
	}
}

func TestTagValueDegrees(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{name: "decimal float", in: 48.8584, want: 48.8584, ok: true},
		{name: "dms float slice", in: []float64{48, 51, 30.24}, want: 48.8584, ok: true},
		{name: "dms any slice", in: []any{48.0, 51.0, 30.24}, want: 48.8584, ok: true},
		{name: "deg min only", in: []float64{48, 30}, want: 48.5, ok: true},
		{name: "single element", in: []float64{48}, want: 48, ok: true},
		{name: "string rejected", in: "48.85", ok: false},
		{name: "empty slice rejected", in: []float64{}, ok: false},
		{name: "four elements rejected", in: []float64{1, 2, 3, 4}, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tagValueDegrees(tc.in)
			if ok != tc.ok {
				t.Fatalf("tagValueDegrees(%v) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if ok && math.Abs(got-tc.want) > 1e-4 {
				t.Errorf("tagValueDegrees(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
