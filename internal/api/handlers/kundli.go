package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"kundli-service/internal/api/dto"
	"kundli-service/internal/domain"
	"kundli-service/internal/platform/obs"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// ChartCaster is satisfied by services.KundliService.
type ChartCaster interface {
	Cast(ctx context.Context, q domain.BirthQuery) (*domain.Chart, error)
}

type KundliHandler struct {
	Service ChartCaster

	// DefaultAyanamsa applies when the request names none.
	DefaultAyanamsa domain.Ayanamsa

	// StrictStatus maps failures to 4xx/5xx. Off, every outcome is a 200
	// and clients tell errors apart by the "error" key.
	StrictStatus bool
}

// Cast answers a birth chart for the posted dob/tob/city/country.
func (h *KundliHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req dto.KundliRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		h.fail(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	if field := missingField(req); field != "" {
		msg := fmt.Sprintf("missing required field %q", field)
		h.fail(w, r, http.StatusBadRequest, msg, domain.ErrInvalidInput)
		return
	}

	q, err := h.query(req)
	if err != nil {
		status, msg := classify(err)
		h.fail(w, r, status, msg, err)
		return
	}

	chart, err := h.Service.Cast(r.Context(), q)
	if err != nil {
		status, msg := classify(err)
		h.fail(w, r, status, msg, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.KundliResponse{
		Graha:     chart.Names(),
		Longitude: chart.Longitudes(),
		Formatted: chart.Formatted(),
	})
}

func (h *KundliHandler) query(req dto.KundliRequest) (domain.BirthQuery, error) {
	q, err := domain.NewBirthQuery(req.Dob, req.Tob, req.City, req.Country)
	if err != nil {
		return domain.BirthQuery{}, err
	}

	name := req.Ayanamsa
	if strings.TrimSpace(name) == "" {
		name = string(h.DefaultAyanamsa)
	}
	mode, err := domain.ParseAyanamsa(name)
	if err != nil {
		return domain.BirthQuery{}, err
	}
	q.Ayanamsa = mode

	return q, nil
}

func (h *KundliHandler) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	logrus.WithFields(logrus.Fields{
		"req_id": obs.RequestID(r.Context()),
		"status": status,
	}).WithError(err).Info("kundli request failed")

	if !h.StrictStatus {
		status = http.StatusOK
	}
	writeError(w, r, status, msg)
}

func missingField(req dto.KundliRequest) string {
	switch {
	case req.Dob == "":
		return "dob"
	case req.Tob == "":
		return "tob"
	case req.City == "":
		return "city"
	case req.Country == "":
		return "country"
	}
	return ""
}

// classify picks the strict-mode status and the client-facing message.
func classify(err error) (int, string) {
	var tzErr *domain.TimezoneError
	switch {
	case errors.Is(err, domain.ErrLocationUnresolved):
		return http.StatusUnprocessableEntity, domain.ErrLocationUnresolved.Error()
	case errors.As(err, &tzErr):
		return http.StatusUnprocessableEntity, tzErr.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
