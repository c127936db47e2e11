package geofy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

const (
	maxKeywordCountries  = 3
	maxLanguageCountries = 5
)

// TextDetection is the OCR detector's output: countries ordered by
// evidence strength, plus the raw material they were derived from.
type TextDetection struct {
	Countries  []string
	Languages  []string
	Confidence float64
	Text       string
}

// DetectTextCountries extracts on-image text and derives candidate
// countries from it.
//
// Spans below the per-span confidence floor are discarded; the overall
// confidence is the mean of the survivors. Street-sign keyword matches
// fully replace the language-derived candidate list — keyword evidence
// is more specific than language evidence. Only when zero keywords match
// does the language mapping apply.
//
// Returns (nil, nil) when no text survives filtering or no countries are
// identified. Returns an error only when the OCR engine itself is
// unavailable or fails.
func (cfg *Config) DetectTextCountries(ctx context.Context, img *ImageBuffer) (*TextDetection, error) {
	cfg.defaults()

	tr, err := cfg.getTextReader()
	if err != nil {
		return nil, err
	}

	spans, err := tr.ReadText(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("geofy: read text: %w", err)
	}

	var (
		kept []string
		sum  float64
		n    int
	)
	for _, s := range spans {
		if s.Confidence < cfg.SpanMinConfidence || strings.TrimSpace(s.Text) == "" {
			continue
		}
		kept = append(kept, s.Text)
		sum += s.Confidence
		n++
	}
	if n == 0 {
		return nil, nil
	}

	text := strings.Join(kept, " ")
	confidence := sum / float64(n)

	// Language detection failing is not fatal: keywords can still pin a
	// country without it.
	var languages []string
	langs, err := tr.DetectLanguages(ctx, img)
	if err != nil {
		slog.Debug("geofy: language detection failed", "error", err.Error())
	} else {
		for _, l := range langs {
			languages = append(languages, l.Code)
		}
	}

	countries := keywordCountries(text)
	if len(countries) == 0 {
		countries = languageDerivedCountries(languages)
	}
	if len(countries) == 0 {
		return nil, nil
	}

	return &TextDetection{
		Countries:  countries,
		Languages:  languages,
		Confidence: confidence,
		Text:       text,
	}, nil
}

// keywordCountries scans the concatenated lowercase text against the
// per-country street-sign vocabulary and ranks countries by hit count
// (top 3). Ties are broken by country name so the ranking is stable.
func keywordCountries(text string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		country string
		count   int
	}
	var hits []hit
	for country, keywords := range countryKeywords {
		count := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count > 0 {
			hits = append(hits, hit{country: country, count: count})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return hits[i].country < hits[j].country
	})

	out := make([]string, 0, maxKeywordCountries)
	for _, h := range hits {
		out = append(out, h.country)
		if len(out) == maxKeywordCountries {
			break
		}
	}
	return out
}

// languageDerivedCountries expands detected language codes into their
// plausible countries, preserving insertion order and deduplicating,
// capped at 5.
func languageDerivedCountries(languages []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, code := range languages {
		for _, country := range languageCountries[strings.ToLower(code)] {
			if seen[country] {
				continue
			}
			seen[country] = true
			out = append(out, country)
			if len(out) == maxLanguageCountries {
				return out
			}
		}
	}
	return out
}
