package geofy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/vecgo/distance"
)

// LandmarkMatch is a positive zero-shot landmark detection.
type LandmarkMatch struct {
	Country    string
	Landmark   string
	Confidence float64
}

// DetectLandmark scores the image against the landmark vocabulary and
// returns the best match above the confidence gate.
//
// The image is encoded once; the vocabulary is encoded in fixed-size
// prompt batches to bound peak memory. Both sides are L2-normalized
// before the dot product, so scores from different batches are true
// cosine similarities against the same image embedding and the global
// argmax is exact.
//
// Returns (nil, nil) when the best score stays below the gate — no
// guessing. Returns an error only when the embedding model itself is
// unavailable or fails.
func (cfg *Config) DetectLandmark(ctx context.Context, img *ImageBuffer) (*LandmarkMatch, error) {
	cfg.defaults()

	emb, err := cfg.getEmbedder()
	if err != nil {
		return nil, err
	}

	imgVec, err := emb.EncodeImage(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("geofy: encode image: %w", err)
	}
	imgVec, ok := distance.NormalizeL2Copy(imgVec)
	if !ok {
		return nil, fmt.Errorf("geofy: zero-norm image embedding")
	}

	entries := FlattenLandmarks(cfg.Landmarks)
	if len(entries) == 0 {
		return nil, nil
	}

	var (
		best      float32
		bestEntry LandmarkEntry
		found     bool
	)

	for start := 0; start < len(entries); start += cfg.PromptBatchSize {
		end := min(start+cfg.PromptBatchSize, len(entries))
		batch := entries[start:end]

		prompts := make([]string, len(batch))
		for i, e := range batch {
			prompts[i] = "a photo of " + e.Landmark
		}

		vecs, err := emb.EncodeText(ctx, prompts)
		if err != nil {
			return nil, fmt.Errorf("geofy: encode landmark batch: %w", err)
		}
		if len(vecs) != len(batch) {
			return nil, fmt.Errorf("geofy: landmark batch size mismatch: got %d vectors for %d prompts", len(vecs), len(batch))
		}

		for i, v := range vecs {
			if !distance.NormalizeL2InPlace(v) {
				continue
			}
			score := distance.Dot(imgVec, v)
			if !found || score > best {
				best = score
				bestEntry = batch[i]
				found = true
			}
		}
	}

	if !found || float64(best) < cfg.LandmarkThreshold {
		slog.Debug("geofy: no landmark above gate",
			"best", best, "threshold", cfg.LandmarkThreshold)
		return nil, nil
	}

	return &LandmarkMatch{
		Country:    bestEntry.Country,
		Landmark:   bestEntry.Landmark,
		Confidence: float64(best),
	}, nil
}
