package geofy

import (
	"context"
	"math"
	"testing"
)

// landmarkVocab is a small fixed vocabulary: five labels, three countries.
var landmarkVocab = map[string][]string{
	"France": {"Eiffel Tower", "Louvre Museum"},
	"Italy":  {"Colosseum", "Trevi Fountain"},
	"Japan":  {"Mount Fuji"},
}

func landmarkEmbedder(sims map[string]float64) *mockEmbedder {
	vecs := make(map[string][]float32, len(sims))
	for landmark, sim := range sims {
		vecs["a photo of "+landmark] = unitVec(sim)
	}
	return &mockEmbedder{imageVec: testImageVec, textVecs: vecs}
}

func TestDetectLandmarkGlobalArgmax(t *testing.T) {
	t.Parallel()

	sims := map[string]float64{
		"Eiffel Tower":  0.35,
		"Louvre Museum": 0.28,
		"Colosseum":     0.31,
		"Trevi Fountain": 0.05,
		"Mount Fuji":    0.33,
	}

	// Batched (2 labels per call) and single-batch runs must agree on
	// the global best: batching must not lose the true maximum.
	var results []*LandmarkMatch
	for _, batchSize := range []int{2, 100} {
		cfg := &Config{
			NewEmbedder:     embedderInit(landmarkEmbedder(sims)),
			Landmarks:       landmarkVocab,
			PromptBatchSize: batchSize,
		}
		match, err := cfg.DetectLandmark(context.Background(), testBuffer(t))
		if err != nil {
			t.Fatalf("batch size %d: %v", batchSize, err)
		}
		if match == nil {
			t.Fatalf("batch size %d: no match, want Eiffel Tower", batchSize)
		}
		results = append(results, match)
	}

	for i, match := range results {
		if match.Landmark != "Eiffel Tower" || match.Country != "France" {
			t.Errorf("run %d: best = %q/%q, want Eiffel Tower/France", i, match.Landmark, match.Country)
		}
		if math.Abs(match.Confidence-0.35) > 1e-4 {
			t.Errorf("run %d: confidence = %v, want 0.35", i, match.Confidence)
		}
	}
	if results[0].Landmark != results[1].Landmark || math.Abs(results[0].Confidence-results[1].Confidence) > 1e-6 {
		t.Errorf("batched and single-batch disagree: %+v vs %+v", results[0], results[1])
	}
}

func TestDetectLandmarkBatchingRespectsBatchSize(t *testing.T) {
	t.Parallel()

	emb := landmarkEmbedder(map[string]float64{"Eiffel Tower": 0.4})
	cfg := &Config{
		NewEmbedder:     embedderInit(emb),
		Landmarks:       landmarkVocab, // 5 labels
		PromptBatchSize: 2,
	}

	if _, err := cfg.DetectLandmark(context.Background(), testBuffer(t)); err != nil {
		t.Fatal(err)
	}
	if len(emb.textCalls) != 3 { // 2 + 2 + 1
		t.Errorf("got %d batches for 5 labels at size 2, want 3", len(emb.textCalls))
	}
	for i, call := range emb.textCalls {
		if len(call) > 2 {
			t.Errorf("batch %d has %d prompts, want <= 2", i, len(call))
		}
	}
	if emb.imageCalls != 1 {
		t.Errorf("image encoded %d times, want once", emb.imageCalls)
	}
}

func TestDetectLandmarkConfidenceGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		best      float64
		threshold float64
		wantMatch bool
	}{
		{name: "above default gate", best: 0.35, threshold: 0, wantMatch: true},
		{name: "just above gate", best: 0.23, threshold: 0, wantMatch: true},
		{name: "below default gate", best: 0.21, threshold: 0, wantMatch: false},
		{name: "well below gate", best: 0.05, threshold: 0, wantMatch: false},
		// Monotonicity: a score accepted at 0.22 is rejected once the
		// threshold moves above it.
		{name: "raised threshold rejects", best: 0.35, threshold: 0.4, wantMatch: false},
		{name: "raised threshold still accepts higher", best: 0.45, threshold: 0.4, wantMatch: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{
				NewEmbedder:       embedderInit(landmarkEmbedder(map[string]float64{"Eiffel Tower": tc.best})),
				Landmarks:         map[string][]string{"France": {"Eiffel Tower"}},
				LandmarkThreshold: tc.threshold,
			}
			match, err := cfg.DetectLandmark(context.Background(), testBuffer(t))
			if err != nil {
				t.Fatal(err)
			}
			if (match != nil) != tc.wantMatch {
				t.Errorf("best %v threshold %v: match = %v, want match %v",
					tc.best, tc.threshold, match, tc.wantMatch)
			}
		})
	}
}

func TestDetectLandmarkErrors(t *testing.T) {
	t.Parallel()

	t.Run("no embedder configured", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Landmarks: landmarkVocab}
		if _, err := cfg.DetectLandmark(context.Background(), testBuffer(t)); err == nil {
			t.Error("want error when no embedder is configured")
		}
	})

	t.Run("image encoding failure propagates", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			NewEmbedder: embedderInit(&mockEmbedder{imageErr: errTest}),
			Landmarks:   landmarkVocab,
		}
		if _, err := cfg.DetectLandmark(context.Background(), testBuffer(t)); err == nil {
			t.Error("want error when image encoding fails")
		}
	})

	t.Run("sticky load failure", func(t *testing.T) {
		t.Parallel()
		calls := 0
		cfg := &Config{
			NewEmbedder: func() (Embedder, error) {
				calls++
				return nil, errTest
			},
			Landmarks: landmarkVocab,
		}
		for i := 0; i < 3; i++ {
			if _, err := cfg.DetectLandmark(context.Background(), testBuffer(t)); err == nil {
				t.Fatal("want sticky load error")
			}
		}
		if calls != 1 {
			t.Errorf("constructor ran %d times, want once", calls)
		}
	})
}
