package geofy

import (
	"context"
	"net/http"
)

// Default tuning values. Zero-value Config fields fall back to these.
const (
	// DefaultLandmarkThreshold is the minimum cosine similarity for a
	// landmark match to count as a positive detection.
	DefaultLandmarkThreshold = 0.22

	// DefaultSpanMinConfidence is the minimum per-span OCR confidence;
	// spans below it are discarded before text analysis.
	DefaultSpanMinConfidence = 0.3

	// DefaultPromptBatchSize bounds how many text prompts are encoded in
	// one embedding call during landmark matching.
	DefaultPromptBatchSize = 20
)

// Embedder abstracts a vision-language embedding model: images and text
// prompts are mapped into a shared vector space so that their dot product
// (after L2 normalization) measures semantic similarity.
type Embedder interface {
	EncodeImage(ctx context.Context, img *ImageBuffer) ([]float32, error)
	EncodeText(ctx context.Context, prompts []string) ([][]float32, error)
}

// TextSpan is one recognized text fragment with its OCR confidence.
type TextSpan struct {
	Text       string
	Confidence float64
}

// LanguageScore is a detected language code with its relative weight.
type LanguageScore struct {
	Code   string
	Weight float64
}

// TextReader abstracts an OCR engine.
type TextReader interface {
	ReadText(ctx context.Context, img *ImageBuffer) ([]TextSpan, error)
	DetectLanguages(ctx context.Context, img *ImageBuffer) ([]LanguageScore, error)
}

// Place is a reverse-geocoding result.
type Place struct {
	CountryCode string
	CountryName string
}

// Geocoder abstracts a reverse-geocoding service.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
}

// Cache abstracts key-value caching (Redis, sync.Map, etc.)
type Cache interface {
	Key(prefix, value string) string
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

// InferenceEvent is emitted via Config.OnInference for every completed
// inference, including undetermined ones.
type InferenceEvent struct {
	Method     Method
	Country    string
	Confidence float64
	CacheHit   bool
}

// Config holds all dependencies injected by the consumer.
//
// The embedding model and OCR engine are expensive to load, so they are
// injected as constructors and built lazily, at most once per Config.
// A failed load is sticky: the affected detectors report the failure on
// every call while the remaining detectors keep working.
type Config struct {
	NewEmbedder   func() (Embedder, error)   // nil = landmark/clip detectors unavailable
	NewTextReader func() (TextReader, error) // nil = OCR detector unavailable
	Geocoder      Geocoder                   // nil = geotag stage stops at extraction
	Cache         Cache                      // optional: perceptual-hash result cache

	HTTPClient *http.Client // default http client for NominatimGeocoder (nil = http.DefaultClient)
	UserAgent  string       // default: "Mozilla/5.0 (compatible; go-geofy/1.0)"

	LandmarkThreshold float64 // default: DefaultLandmarkThreshold (0.22)
	SpanMinConfidence float64 // default: DefaultSpanMinConfidence (0.3)
	PromptBatchSize   int     // default: DefaultPromptBatchSize (20)

	// ClassifierFloor is an optional minimum softmax score for the
	// zero-shot country classifier. The classifier itself has no hard
	// gate; 0 accepts whatever ranks first.
	ClassifierFloor float64

	// Landmarks overrides the built-in country → landmark vocabulary.
	Landmarks map[string][]string

	// Countries overrides the built-in candidate country list.
	Countries []string

	// Optional callbacks for metrics/logging.
	OnPanic     func(tag string, r any)
	OnInference func(InferenceEvent)

	embedder   lazy[Embedder]
	textReader lazy[TextReader]
}

// defaults fills zero-value fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.LandmarkThreshold <= 0 {
		cfg.LandmarkThreshold = DefaultLandmarkThreshold
	}
	if cfg.SpanMinConfidence <= 0 {
		cfg.SpanMinConfidence = DefaultSpanMinConfidence
	}
	if cfg.PromptBatchSize <= 0 {
		cfg.PromptBatchSize = DefaultPromptBatchSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; go-geofy/1.0)"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Landmarks == nil {
		cfg.Landmarks = DefaultLandmarks
	}
	if len(cfg.Countries) == 0 {
		cfg.Countries = DefaultCountries
	}
}
