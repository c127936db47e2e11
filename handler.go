package geofy

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
)

const maxUploadBytes = 20 << 20 // 20MB

// inferenceResponse is the wire shape of an inference answer. Detector
// disagreement or exhaustion is success=false with HTTP 200, never a 5xx.
type inferenceResponse struct {
	Success     bool           `json:"success"`
	Country     string         `json:"country"`
	Confidence  float64        `json:"confidence"`
	Method      string         `json:"method,omitempty"`
	Candidates  []CountryScore `json:"candidates,omitempty"`
	Landmark    string         `json:"landmark,omitempty"`
	Coordinates *GeoCoordinate `json:"coordinates,omitempty"`
	Text        string         `json:"detected_text,omitempty"`
}

// InferenceHandler returns an HTTP handler for the inference entry
// point. It accepts POST requests carrying image bytes either as a
// multipart "file" field or as the raw request body, with optional
// "candidates" (comma-separated) and "continent" parameters.
func (cfg *Config) InferenceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
			return
		}

		data, err := readUpload(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if len(data) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no image data"})
			return
		}

		opts := DetectOpts{Continent: readParam(r, "continent")}
		if raw := readParam(r, "candidates"); raw != "" {
			for _, c := range strings.Split(raw, ",") {
				if c = strings.TrimSpace(c); c != "" {
					opts.Candidates = append(opts.Candidates, c)
				}
			}
		}

		res := cfg.DetectCountry(r.Context(), data, opts)

		writeJSON(w, http.StatusOK, inferenceResponse{
			Success:     res.Determined(),
			Country:     res.Country,
			Confidence:  res.Confidence,
			Method:      res.Method.String(),
			Candidates:  res.Candidates,
			Landmark:    res.Landmark,
			Coordinates: res.Coordinates,
			Text:        res.Text,
		})
	}
}

// readUpload pulls image bytes from a multipart "file" field or the raw
// request body.
func readUpload(r *http.Request) ([]byte, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxUploadBytes))
	}
	return io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
}

// readParam reads a parameter from the form (multipart) or the query.
func readParam(r *http.Request, name string) string {
	if v := r.FormValue(name); v != "" {
		return v
	}
	return r.URL.Query().Get(name)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("geofy: write response", "error", err.Error())
	}
}
