package geofy

// HeuristicConfidence is the fixed confidence of the degraded
// pixel-statistics detector. Deliberately below every real detector's
// useful range so consumers can tell the two regimes apart.
const HeuristicConfidence = 0.1

// heuristicCountries is the candidate pool for the degraded guess,
// ordered roughly by how often travel photos feature each country.
var heuristicCountries = []string{
	"France", "Italy", "Spain", "United States", "Japan",
	"United Kingdom", "Greece", "Thailand", "Mexico", "Australia",
}

// HeuristicGuess is the output of the degraded detector that substitutes
// for landmark matching when the embedding model is unavailable. It maps
// coarse pixel statistics (mean color, aspect ratio) to a country pick.
// The guess is deterministic for a given image but carries almost no
// evidence; it exists so the pipeline still answers when the model can't
// be loaded, under its own clearly-separated method tag.
type HeuristicGuess struct {
	Country    string
	Confidence float64
}

func heuristicGuess(img *ImageBuffer) *HeuristicGuess {
	if img == nil || img.Pixels == nil || img.Width == 0 || img.Height == 0 {
		return nil
	}

	// Sample a coarse grid rather than every pixel; the statistics are
	// crude either way.
	const grid = 16
	b := img.Pixels.Bounds()
	var rSum, gSum, bSum, n uint64
	for gy := 0; gy < grid; gy++ {
		for gx := 0; gx < grid; gx++ {
			x := b.Min.X + gx*b.Dx()/grid
			y := b.Min.Y + gy*b.Dy()/grid
			r, g, bl, _ := img.Pixels.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(bl >> 8)
			n++
		}
	}
	if n == 0 {
		return nil
	}

	meanR := rSum / n
	meanG := gSum / n
	meanB := bSum / n

	// Bucket the aspect ratio: 0 portrait, 1 squarish, 2 landscape.
	aspect := 1
	switch {
	case img.Width*4 < img.Height*3:
		aspect = 0
	case img.Width*3 > img.Height*4:
		aspect = 2
	}

	idx := (meanR + meanG*3 + meanB*7 + uint64(aspect)*11) % uint64(len(heuristicCountries))
	return &HeuristicGuess{
		Country:    heuristicCountries[idx],
		Confidence: HeuristicConfidence,
	}
}
