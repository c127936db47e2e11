package geofy

import (
	"image/color"
	"testing"
)

func TestHeuristicGuessDeterministic(t *testing.T) {
	t.Parallel()

	img := testBuffer(t)
	first := heuristicGuess(img)
	if first == nil {
		t.Fatal("no guess for a valid image")
	}
	for i := 0; i < 5; i++ {
		again := heuristicGuess(img)
		if again == nil || again.Country != first.Country {
			t.Fatalf("guess changed between runs: %+v vs %+v", first, again)
		}
	}
}

func TestHeuristicGuessConfidence(t *testing.T) {
	t.Parallel()

	colors := []color.NRGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 10, G: 80, B: 160, A: 255},
		{R: 200, G: 30, B: 30, A: 255},
	}
	for _, c := range colors {
		img, err := DecodeImage(testPNG(t, 16, 9, c))
		if err != nil {
			t.Fatal(err)
		}
		guess := heuristicGuess(img)
		if guess == nil {
			t.Fatal("no guess")
		}
		if guess.Confidence != HeuristicConfidence {
			t.Errorf("confidence = %v, want fixed %v", guess.Confidence, HeuristicConfidence)
		}
		if guess.Country == "" {
			t.Error("empty country")
		}
	}
}

func TestHeuristicGuessNilImage(t *testing.T) {
	t.Parallel()

	if g := heuristicGuess(nil); g != nil {
		t.Errorf("guess for nil image: %+v", g)
	}
	if g := heuristicGuess(&ImageBuffer{}); g != nil {
		t.Errorf("guess for empty buffer: %+v", g)
	}
}
