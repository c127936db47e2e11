package geofy

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/hupe1980/vecgo/distance"
)

// CountryScore is one ranked candidate from zero-shot classification.
type CountryScore struct {
	Country string  `json:"country"`
	Score   float64 `json:"score"`
}

// ClassifyCountries runs zero-shot classification of the image against
// candidate countries. When continent is non-empty, candidates are first
// narrowed to that continent.
//
// Each candidate prompt is encoded individually (not batched) to avoid
// cross-prompt padding artifacts, then all raw similarities are jointly
// softmax-normalized into a probability distribution. The returned list
// is sorted descending by score; ties keep the original candidate order.
//
// On any processing error the result is an empty list — callers treat
// empty as "no signal".
func (cfg *Config) ClassifyCountries(ctx context.Context, img *ImageBuffer, candidates []string, continent string) []CountryScore {
	cfg.defaults()

	if len(candidates) == 0 {
		candidates = cfg.Countries
	}
	if continent != "" {
		candidates = filterByContinent(candidates, continent)
	}
	if len(candidates) == 0 {
		return nil
	}

	emb, err := cfg.getEmbedder()
	if err != nil {
		slog.Debug("geofy: classifier unavailable", "error", err.Error())
		return nil
	}

	imgVec, err := emb.EncodeImage(ctx, img)
	if err != nil {
		slog.Debug("geofy: classify encode image failed", "error", err.Error())
		return nil
	}
	imgVec, ok := distance.NormalizeL2Copy(imgVec)
	if !ok {
		return nil
	}

	raw := make([]float64, len(candidates))
	for i, cand := range candidates {
		vecs, err := emb.EncodeText(ctx, []string{"a travel photo from " + cand})
		if err != nil || len(vecs) != 1 {
			slog.Debug("geofy: classify encode prompt failed", "candidate", cand)
			return nil
		}
		v := vecs[0]
		if !distance.NormalizeL2InPlace(v) {
			return nil
		}
		raw[i] = float64(distance.Dot(imgVec, v))
	}

	probs := softmax(raw)

	scores := make([]CountryScore, len(candidates))
	for i, cand := range candidates {
		scores[i] = CountryScore{Country: cand, Score: probs[i]}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// PredictContinent reuses the zero-shot routine with continents as
// candidates. Returns "" when classification produced no signal.
func (cfg *Config) PredictContinent(ctx context.Context, img *ImageBuffer, continents []string) string {
	if len(continents) == 0 {
		continents = DefaultContinents
	}
	scores := cfg.ClassifyCountries(ctx, img, continents, "")
	if len(scores) == 0 {
		return ""
	}
	return scores[0].Country
}

// filterByContinent keeps only candidates assigned to the continent.
// Candidates missing from the assignment table are dropped: an unknown
// country cannot satisfy the filter.
func filterByContinent(candidates []string, continent string) []string {
	var out []string
	for _, c := range candidates {
		if countryContinent[c] == continent {
			out = append(out, c)
		}
	}
	return out
}

// softmax converts raw scores into a probability distribution summing
// to 1. The max is subtracted first for numerical stability.
func softmax(raw []float64) []float64 {
	maxv := raw[0]
	for _, v := range raw[1:] {
		if v > maxv {
			maxv = v
		}
	}

	out := make([]float64, len(raw))
	var sum float64
	for i, v := range raw {
		out[i] = math.Exp(v - maxv)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
