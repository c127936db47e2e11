package geofy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corona10/goimagehash"
)

// Method identifies which detector produced an inference result.
type Method int

const (
	MethodNone Method = iota // undetermined
	MethodGeotag
	MethodLandmark
	MethodCLIP
	MethodOCR
	MethodHeuristic // degraded pixel-statistics substitute for landmark
)

func (m Method) String() string {
	switch m {
	case MethodGeotag:
		return "geotag"
	case MethodLandmark:
		return "landmark"
	case MethodCLIP:
		return "clip"
	case MethodOCR:
		return "ocr"
	case MethodHeuristic:
		return "heuristic"
	default:
		return ""
	}
}

// MarshalJSON encodes the method as its string tag so cached results
// round-trip through JSON-backed caches.
func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Method) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "geotag":
		*m = MethodGeotag
	case "landmark":
		*m = MethodLandmark
	case "clip":
		*m = MethodCLIP
	case "ocr":
		*m = MethodOCR
	case "heuristic":
		*m = MethodHeuristic
	default:
		*m = MethodNone
	}
	return nil
}

// StageStatus records how a detector stage ended.
type StageStatus int

const (
	StageOK     StageStatus = iota // produced a confident result
	StageEmpty                     // ran fine, found no evidence
	StageFailed                    // internal failure, degraded to no-result
)

func (s StageStatus) String() string {
	switch s {
	case StageOK:
		return "ok"
	case StageEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// StageTrace is one attempted stage in the arbitration sequence. Failures
// degrade to "no result" by contract, but their reasons stay inspectable
// here instead of being discarded.
type StageTrace struct {
	Stage  Method      `json:"stage"`
	Status StageStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// InferenceResult is the arbitrator's output. Country is empty only when
// no detector produced a confident result; Confidence is always in [0,1].
type InferenceResult struct {
	Country     string         `json:"country"`
	Confidence  float64        `json:"confidence"`
	Method      Method         `json:"method"`
	Landmark    string         `json:"landmark,omitempty"`
	Coordinates *GeoCoordinate `json:"coordinates,omitempty"`
	Candidates  []CountryScore `json:"candidates,omitempty"`
	Text        string         `json:"detected_text,omitempty"`
	Languages   []string       `json:"detected_languages,omitempty"`
	Trace       []StageTrace   `json:"trace,omitempty"`
}

// Determined reports whether any detector produced a country.
func (r *InferenceResult) Determined() bool {
	return r.Method != MethodNone && r.Country != ""
}

// DetectOpts narrows an inference call.
type DetectOpts struct {
	Candidates []string // optional candidate-country list (default: Config.Countries)
	Continent  string   // optional continent prefilter for the classifier
}

// maxReportedCandidates caps how much of the classifier ranking is
// attached to the result.
const maxReportedCandidates = 5

// DetectCountry infers the most probable country for an uploaded image.
//
// Detectors run in fixed priority order — geotag, landmark, zero-shot
// classifier, OCR — short-circuiting at the first confident result.
// Embedded coordinates are ground truth and always win; visual and text
// signals are inference. When the embedding model cannot be loaded, a
// degraded pixel-statistics guess substitutes in the landmark slot under
// its own method tag.
//
// Every stage is fail-soft: internal failures (including panics) are
// recorded in the trace and the next stage runs. DetectCountry never
// returns an error; exhausting all detectors yields an explicit
// undetermined result.
func (cfg *Config) DetectCountry(ctx context.Context, data []byte, opts DetectOpts) *InferenceResult {
	cfg.defaults()

	img, decodeErr := DecodeImage(data)

	// Repeated uploads of the same photo skip the models entirely.
	cacheKey := ""
	if cfg.Cache != nil && img != nil {
		if h, err := goimagehash.DifferenceHash(img.Pixels); err == nil {
			cacheKey = cfg.Cache.Key("geofy_inference", h.ToString())
			var cached InferenceResult
			if cfg.Cache.Get(ctx, cacheKey, &cached) {
				cfg.emit(&cached, true)
				return &cached
			}
		}
	}

	var trace []StageTrace

	// Stage 1: geotag. Works off raw bytes — metadata can survive even
	// when the pixel data is too corrupt to decode.
	res, st := cfg.runStage(MethodGeotag, func() (*InferenceResult, error) {
		coord := ExtractLocation(data)
		if coord == nil {
			return nil, nil
		}
		place := cfg.ReverseGeocode(ctx, *coord)
		if place == nil {
			return nil, nil
		}
		return &InferenceResult{
			Country:     place.CountryName,
			Confidence:  1.0,
			Method:      MethodGeotag,
			Coordinates: coord,
		}, nil
	})
	trace = append(trace, st)
	if res != nil {
		return cfg.finish(ctx, res, trace, cacheKey)
	}

	if decodeErr != nil {
		// Visual and OCR stages all need pixels.
		trace = append(trace,
			StageTrace{Stage: MethodLandmark, Status: StageFailed, Reason: decodeErr.Error()},
			StageTrace{Stage: MethodCLIP, Status: StageFailed, Reason: decodeErr.Error()},
			StageTrace{Stage: MethodOCR, Status: StageFailed, Reason: decodeErr.Error()},
		)
		return cfg.finish(ctx, &InferenceResult{Method: MethodNone}, trace, "")
	}

	// Stage 2: landmark, or the degraded heuristic when the embedding
	// model was configured but failed to load. A consumer that never
	// wired an embedder opted out of visual detection; no guessing on
	// their behalf.
	if _, err := cfg.getEmbedder(); err != nil && !errors.Is(err, ErrNotConfigured) {
		trace = append(trace, StageTrace{Stage: MethodLandmark, Status: StageFailed, Reason: err.Error()})
		res, st = cfg.runStage(MethodHeuristic, func() (*InferenceResult, error) {
			guess := heuristicGuess(img)
			if guess == nil {
				return nil, nil
			}
			return &InferenceResult{
				Country:    guess.Country,
				Confidence: guess.Confidence,
				Method:     MethodHeuristic,
			}, nil
		})
	} else {
		res, st = cfg.runStage(MethodLandmark, func() (*InferenceResult, error) {
			match, err := cfg.DetectLandmark(ctx, img)
			if err != nil || match == nil {
				return nil, err
			}
			return &InferenceResult{
				Country:    match.Country,
				Confidence: match.Confidence,
				Method:     MethodLandmark,
				Landmark:   match.Landmark,
			}, nil
		})
	}
	trace = append(trace, st)
	if res != nil {
		return cfg.finish(ctx, res, trace, cacheKey)
	}

	// Stage 3: zero-shot country classification.
	res, st = cfg.runStage(MethodCLIP, func() (*InferenceResult, error) {
		scores := cfg.ClassifyCountries(ctx, img, opts.Candidates, opts.Continent)
		if len(scores) == 0 || scores[0].Score < cfg.ClassifierFloor {
			return nil, nil
		}
		top := scores
		if len(top) > maxReportedCandidates {
			top = top[:maxReportedCandidates]
		}
		return &InferenceResult{
			Country:    scores[0].Country,
			Confidence: scores[0].Score,
			Method:     MethodCLIP,
			Candidates: top,
		}, nil
	})
	trace = append(trace, st)
	if res != nil {
		return cfg.finish(ctx, res, trace, cacheKey)
	}

	// Stage 4: on-image text.
	res, st = cfg.runStage(MethodOCR, func() (*InferenceResult, error) {
		det, err := cfg.DetectTextCountries(ctx, img)
		if err != nil || det == nil {
			return nil, err
		}
		return &InferenceResult{
			Country:    det.Countries[0],
			Confidence: det.Confidence,
			Method:     MethodOCR,
			Text:       det.Text,
			Languages:  det.Languages,
		}, nil
	})
	trace = append(trace, st)
	if res != nil {
		return cfg.finish(ctx, res, trace, cacheKey)
	}

	// Every detector exhausted: explicit undetermined result, never a
	// fabricated country.
	return cfg.finish(ctx, &InferenceResult{Method: MethodNone}, trace, "")
}

// runStage executes one detector with the fail-soft contract: errors and
// panics become a failed trace entry, not a propagated failure.
func (cfg *Config) runStage(stage Method, fn func() (*InferenceResult, error)) (res *InferenceResult, st StageTrace) {
	st = StageTrace{Stage: stage}
	defer func() {
		if r := recover(); r != nil {
			if cfg.OnPanic != nil {
				cfg.OnPanic("detect:"+stage.String(), r)
			}
			slog.Warn("geofy: detector panic", "stage", stage.String(), "panic", fmt.Sprint(r))
			res = nil
			st.Status = StageFailed
			st.Reason = fmt.Sprintf("panic: %v", r)
		}
	}()

	out, err := fn()
	switch {
	case errors.Is(err, ErrNotConfigured):
		// A detector whose collaborator was never injected simply has
		// nothing to say; the reason stays visible in the trace.
		st.Status = StageEmpty
		st.Reason = err.Error()
	case err != nil:
		slog.Warn("geofy: detector failed", "stage", stage.String(), "error", err.Error())
		st.Status = StageFailed
		st.Reason = err.Error()
	case out == nil:
		st.Status = StageEmpty
	default:
		st.Status = StageOK
		res = out
	}
	return res, st
}

// finish attaches the trace, caches determined results, and emits the
// inference event.
func (cfg *Config) finish(ctx context.Context, res *InferenceResult, trace []StageTrace, cacheKey string) *InferenceResult {
	res.Trace = trace
	if cfg.Cache != nil && cacheKey != "" && res.Determined() {
		cfg.Cache.Set(ctx, cacheKey, res)
	}
	cfg.emit(res, false)
	return res
}

func (cfg *Config) emit(res *InferenceResult, cacheHit bool) {
	slog.Debug("geofy: inference",
		"method", res.Method.String(), "country", res.Country,
		"confidence", res.Confidence, "cache_hit", cacheHit)
	if cfg.OnInference != nil {
		cfg.OnInference(InferenceEvent{
			Method:     res.Method,
			Country:    res.Country,
			Confidence: res.Confidence,
			CacheHit:   cacheHit,
		})
	}
}
