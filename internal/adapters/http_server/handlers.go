// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"estate_inquiry/internal/domain"
)

const maxInquiryBody = 64 << 10

type Catalog interface {
	ListResidences(ctx context.Context, f domain.ResidenceFilter) ([]domain.Residence, error)
	GetResidence(ctx context.Context, id int64) (domain.Residence, error)
}

type Inquiries interface {
	Handle(ctx context.Context, in domain.Inquiry) (domain.Receipt, error)
}

type Handlers struct {
	Catalog   Catalog
	Inquiries Inquiries
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// inquiryRequest accepts residence as a JSON number or a numeric string.
type inquiryRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Message   string      `json:"message"`
	Residence json.Number `json:"residence"`
}

type inquiryResponse struct {
	Receipt domain.Receipt `json:"receipt"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/residences", h.listResidences)
	s.mux.Get("/v1/residences/{id}", h.getResidence)
	s.mux.With(MaxBody(maxInquiryBody)).Post("/v1/inquiries", h.createInquiry)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		if errors.Is(err, http.ErrHandlerTimeout) {
			log.Warn().Err(err).Int("status", status).Msg("problem response dropped after timeout")
			return
		}
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON unless the client already holds the same ETag.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func parseFilter(q map[string][]string) (domain.ResidenceFilter, string) {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	f := domain.ResidenceFilter{City: get("city"), Type: get("type")}
	for _, k := range []string{"min_price", "max_price"} {
		s := get(k)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return f, k + " must be a non-negative number"
		}
		if k == "min_price" {
			f.MinPrice = &v
		} else {
			f.MaxPrice = &v
		}
	}
	if s := get("min_bedrooms"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return f, "min_bedrooms must be a non-negative integer"
		}
		f.MinBedrooms = &n
	}
	return f, ""
}

func (h *Handlers) listResidences(w http.ResponseWriter, r *http.Request) {
	f, bad := parseFilter(r.URL.Query())
	if bad != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", bad)
		return
	}
	out, err := h.Catalog.ListResidences(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list residences failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list residences")
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) getResidence(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	res, err := h.Catalog.GetResidence(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "residence not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("get residence failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load residence")
		return
	}
	writeCached(w, r, res)
}

var errUnsupportedMedia = errors.New("content type must be JSON or a form post")

// decodeInquiry reads a JSON body, or an HTML form post in either encoding.
func decodeInquiry(r *http.Request) (domain.Inquiry, error) {
	var req inquiryRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if ct == "multipart/form-data" {
			err = r.ParseMultipartForm(maxInquiryBody)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return domain.Inquiry{}, err
		}
		req = inquiryRequest{
			Name:      r.PostForm.Get("name"),
			Email:     r.PostForm.Get("email"),
			Message:   r.PostForm.Get("message"),
			Residence: json.Number(strings.TrimSpace(r.PostForm.Get("residence"))),
		}
	case "", "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return domain.Inquiry{}, err
		}
	default:
		return domain.Inquiry{}, errUnsupportedMedia
	}

	id, err := req.Residence.Int64()
	if err != nil {
		return domain.Inquiry{}, errors.New("residence must be an integer id")
	}
	return domain.Inquiry{Name: req.Name, Email: req.Email, Message: req.Message, ResidenceID: id}, nil
}

func (h *Handlers) createInquiry(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInquiry(r)
	if errors.Is(err, errUnsupportedMedia) {
		writeProblem(w, http.StatusUnsupportedMediaType, "Unsupported Media Type", err.Error())
		return
	}
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid inquiry", err.Error())
		return
	}

	receipt, err := h.Inquiries.Handle(r.Context(), in)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	case errors.Is(err, domain.ErrDelivery):
		writeProblem(w, http.StatusBadGateway, "Delivery Failed", err.Error())
		return
	default:
		log.Error().Err(err).Int64("residence", in.ResidenceID).Msg("inquiry failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not process inquiry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(inquiryResponse{Receipt: receipt}); err != nil {
		log.Error().Err(err).Msg("failed to write inquiry response")
	}
}
