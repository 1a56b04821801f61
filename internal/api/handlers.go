package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"pantry-finder/internal/db"
	"pantry-finder/internal/geo"
	"pantry-finder/internal/locate"
	"pantry-finder/internal/search"
)

// candidateLimit caps how many stored pantries a nearest query scans
const candidateLimit = 10000

// Handlers contains HTTP handlers and their dependencies
type Handlers struct {
	db       *db.DB
	resolver *locate.Resolver
	metrics  *metrics
}

// NewHandlers creates a new Handlers instance
func NewHandlers(database *db.DB, resolver *locate.Resolver, m *metrics) *Handlers {
	return &Handlers{db: database, resolver: resolver, metrics: m}
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListPantries handles GET /api/pantries
func (h *Handlers) ListPantries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := db.PantryFilter{}

	if v := q.Get("name"); v != "" {
		filter.Name = &v
	}

	// Parse pagination
	if v := q.Get("limit"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 && val <= 500 {
			filter.Limit = val
		}
	}
	if v := q.Get("offset"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			filter.Offset = val
		}
	}

	pantries, err := h.db.ListPantries(filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"pantries": pantries,
		"count":    len(pantries),
	})
}

// GetPantry handles GET /api/pantries/{id}
func (h *Handlers) GetPantry(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid pantry ID", http.StatusBadRequest)
		return
	}

	pantry, err := h.db.GetPantry(id)
	if err != nil {
		http.Error(w, "pantry not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pantry)
}

// NearestRequest is the request body for a nearest-pantry query. The
// caller supplies either a free-text address or an explicit coordinate
// pair, never both.
type NearestRequest struct {
	Address  string   `json:"address"`
	Lat      *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng      *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Limit    int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
	RadiusKm *float64 `json:"radius_km" validate:"omitempty,gt=0"`
}

func (req *NearestRequest) Bind(r *http.Request) error {
	if req.Address == "" && (req.Lat == nil || req.Lng == nil) {
		return errors.New("either address or a lat/lng pair is required")
	}
	if req.Address != "" && (req.Lat != nil || req.Lng != nil) {
		return errors.New("provide either address or lat/lng, not both")
	}
	return nil
}

// NearestResponse carries the resolved origin and the ranked matches
type NearestResponse struct {
	Origin  geo.Coordinate `json:"origin"`
	Matches []search.Match `json:"matches"`
	Count   int            `json:"count"`
}

// Nearest handles POST /api/nearest
func (h *Handlers) Nearest(w http.ResponseWriter, r *http.Request) {
	data := &NearestRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	var origin geo.Coordinate
	if data.Lat != nil && data.Lng != nil {
		origin = geo.Coordinate{Latitude: *data.Lat, Longitude: *data.Lng}
		h.metrics.NearestQueryCount.WithLabelValues("coordinates").Inc()
	} else {
		h.metrics.NearestQueryCount.WithLabelValues("address").Inc()
		var err error
		origin, err = h.resolver.Resolve(r.Context(), data.Address)
		if err != nil {
			render.Render(w, r, ErrUnprocessable(err))
			return
		}
	}

	pantries, err := h.db.ListPantries(db.PantryFilter{Limit: candidateLimit})
	if err != nil {
		render.Render(w, r, ErrInternalServerErrorRend(errors.New("internal server error")))
		return
	}

	limit := data.Limit
	if limit == 0 {
		limit = 1
	}

	matches := search.Nearest(origin, pantries, limit, data.RadiusKm)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearestResponse{Origin: origin, Matches: matches, Count: len(matches)})
}

// ErrResponse is the error envelope rendered for failed requests
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrUnprocessable(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 422,
		StatusText:     "Could not resolve location.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf("%s", e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
