// Package server exposes the importer over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/importer"
	"github.com/ardesh/lancelet-gh/internal/render"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

// Routes returns the API router.
func (s *ServerContext) Routes() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/api/units", s.HandleUnits)
	router.HandlerFunc(http.MethodGet, "/api/anchor", s.HandleAnchor)
	router.HandlerFunc(http.MethodGet, "/api/transform", s.HandleTransform)
	router.HandlerFunc(http.MethodPost, "/api/import", s.HandleImport)
	router.HandlerFunc(http.MethodPost, "/api/info", s.HandleInfo)
	router.HandlerFunc(http.MethodPost, "/api/preview.svg", s.HandlePreview)
	router.HandlerFunc(http.MethodPost, "/api/preview.webp", s.HandlePreview)
	return router
}

type unitInfo struct {
	Name  geo.Unit `json:"name"`
	Scale float64  `json:"scale"`
}

// HandleUnits lists the supported design units.
func (s *ServerContext) HandleUnits(w http.ResponseWriter, r *http.Request) {
	units := make([]unitInfo, 0, len(geo.Units()))
	for _, u := range geo.Units() {
		units = append(units, unitInfo{Name: u, Scale: u.Scale()})
	}
	writeJSON(w, http.StatusOK, units)
}

// HandleAnchor serves the active anchor and unit.
func (s *ServerContext) HandleAnchor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"anchor": s.Transformer.Anchor(),
		"unit":   s.Config.Unit,
		"scale":  s.Transformer.Scale(),
	})
}

// HandleTransform converts a single lon/lat query pair.
func (s *ServerContext) HandleTransform(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	if errLon != nil || errLat != nil || !finite(lon, lat) {
		writeError(w, http.StatusBadRequest, geo.KindInput, errors.New("lon and lat must be finite numbers"))
		return
	}

	p := s.Transformer.Transform(lon, lat)
	if !finite(p.X, p.Y, p.Z) {
		writeError(w, http.StatusBadRequest, geo.KindInput, errors.New("lon and lat are too far from the anchor"))
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// HandleImport walks the GeoJSON request body.
func (s *ServerContext) HandleImport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.importBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleInfo summarizes the GeoJSON request body.
func (s *ServerContext) HandleInfo(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	summary, err := importer.Info(data, s.Config)
	if err != nil {
		s.failed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandlePreview renders the GeoJSON request body as SVG or WebP, chosen by path.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	res, ok := s.importBody(w, r)
	if !ok {
		return
	}

	if r.URL.Path == "/api/preview.webp" {
		w.Header().Set("Content-Type", "image/webp")
		if err := render.WebP(w, res, s.Render); err != nil {
			log.Error().Err(err).Msg("Failed to encode webp")
		}
		return
	}

	out, err := render.SVG(res, s.Render)
	if err != nil {
		s.failed(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(out)
}

func (s *ServerContext) importBody(w http.ResponseWriter, r *http.Request) (*walker.Result, bool) {
	data, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}

	res, err := importer.Import(data, s.Config)
	if err != nil {
		s.failed(w, r, err)
		return nil, false
	}
	return res, true
}

func (s *ServerContext) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, geo.KindInput, err)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, geo.KindInput, err)
		return nil, false
	}
	return data, true
}

func (s *ServerContext) failed(w http.ResponseWriter, r *http.Request, err error) {
	kind := geo.KindOf(err)
	status := http.StatusInternalServerError
	if kind == geo.KindInput || kind == geo.KindShape {
		status = http.StatusBadRequest
	}

	log.Debug().
		Err(err).
		Str("path", r.URL.Path).
		Str("kind", kind.String()).
		Msg("Request failed")

	writeError(w, status, kind, err)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeError(w http.ResponseWriter, status int, kind geo.ErrorKind, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind.String()})
}

// writeJSON encodes v before writing the header; encoding failures become a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: err.Error(), Kind: geo.KindOther.String()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(append(data, '\n'))
}
