package geofy

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// unitVec builds a 2-dim unit vector whose dot product with the test
// image embedding [1,0] equals sim.
func unitVec(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

var testImageVec = []float32{1, 0}

var testWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

var errTest = errors.New("boom")

// mockEmbedder maps full prompt strings to fixed embeddings.
type mockEmbedder struct {
	imageVec   []float32
	imageErr   error
	textVecs   map[string][]float32
	defaultVec []float32
	textErr    error
	imageCalls int
	textCalls  [][]string
}

func (m *mockEmbedder) EncodeImage(_ context.Context, _ *ImageBuffer) ([]float32, error) {
	m.imageCalls++
	if m.imageErr != nil {
		return nil, m.imageErr
	}
	return append([]float32(nil), m.imageVec...), nil
}

func (m *mockEmbedder) EncodeText(_ context.Context, prompts []string) ([][]float32, error) {
	m.textCalls = append(m.textCalls, append([]string(nil), prompts...))
	if m.textErr != nil {
		return nil, m.textErr
	}
	out := make([][]float32, len(prompts))
	for i, p := range prompts {
		v, ok := m.textVecs[p]
		if !ok {
			v = m.defaultVec
		}
		if v == nil {
			v = unitVec(0)
		}
		out[i] = append([]float32(nil), v...)
	}
	return out, nil
}

// mockTextReader is a test double for the OCR engine.
type mockTextReader struct {
	spans    []TextSpan
	spansErr error
	langs    []LanguageScore
	langsErr error
}

func (m *mockTextReader) ReadText(_ context.Context, _ *ImageBuffer) ([]TextSpan, error) {
	return m.spans, m.spansErr
}

func (m *mockTextReader) DetectLanguages(_ context.Context, _ *ImageBuffer) ([]LanguageScore, error) {
	return m.langs, m.langsErr
}

// mockGeocoder fails a fixed number of times, then answers.
type mockGeocoder struct {
	place    *Place
	failures int
	calls    int
}

func (m *mockGeocoder) Reverse(_ context.Context, _, _ float64) (*Place, error) {
	m.calls++
	if m.calls <= m.failures {
		return nil, errors.New("service timeout")
	}
	return m.place, nil
}

// mockCache is a JSON-free in-memory cache for InferenceResult values.
type mockCache struct {
	store map[string]InferenceResult
	sets  int
}

func (m *mockCache) Key(prefix, value string) string { return prefix + ":" + value }

func (m *mockCache) Get(_ context.Context, key string, dest any) bool {
	v, ok := m.store[key]
	if !ok {
		return false
	}
	if p, ok := dest.(*InferenceResult); ok {
		*p = v
		return true
	}
	return false
}

func (m *mockCache) Set(_ context.Context, key string, value any) {
	if m.store == nil {
		m.store = make(map[string]InferenceResult)
	}
	if r, ok := value.(*InferenceResult); ok {
		m.store[key] = *r
		m.sets++
	}
}

// testPNG encodes a solid-color image for decode paths.
func testPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// embedderInit wraps a ready mock in a constructor.
func embedderInit(m *mockEmbedder) func() (Embedder, error) {
	return func() (Embedder, error) { return m, nil }
}

func textReaderInit(m *mockTextReader) func() (TextReader, error) {
	return func() (TextReader, error) { return m, nil }
}
