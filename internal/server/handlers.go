package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomaszchojnowski/heatcalc/internal/export"
	"github.com/tomaszchojnowski/heatcalc/internal/history"
	"github.com/tomaszchojnowski/heatcalc/pkg/assess"
	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
	"github.com/tomaszchojnowski/heatcalc/pkg/heatloss"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error      string             `json:"error"`
	Validation *validation.Report `json:"validation,omitempty"`
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Error: err.Error()}

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		body.Validation = verr.Report
	case errors.Is(err, template.ErrNotFound),
		errors.Is(err, history.ErrNotFound),
		errors.Is(err, building.ErrSpaceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, assess.ErrInvalidPostcode),
		errors.Is(err, assess.ErrUnknownPackage),
		errors.Is(err, heatloss.ErrUnknownUpgrade),
		errors.Is(err, heatloss.ErrInvalidUpgrade),
		errors.Is(err, building.ErrInvalidDimensions),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, body)
}

var errBadRequest = errors.New("bad request")

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type templateSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Era            string  `json:"era"`
	CommonBedrooms int     `json:"commonBedrooms"`
	Floors         int     `json:"floors"`
	Rooms          int     `json:"rooms"`
	FloorArea      float64 `json:"floorArea"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	all := s.assessor.Templates().All()
	out := make([]templateSummary, len(all))
	for i, t := range all {
		out[i] = templateSummary{
			ID:             t.ID,
			Name:           t.Name,
			Era:            t.Era,
			CommonBedrooms: t.CommonBedrooms,
			Floors:         len(t.Layout),
			Rooms:          t.RoomCount(),
			FloorArea:      t.FloorArea(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.assessor.Templates().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleValidateTemplate checks a posted template document and returns the
// full validation report. Nothing is registered.
func (s *Server) handleValidateTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	t, err := template.ParseJSON(data)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateTemplate(t))
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, climate.Regions())
}

func (s *Server) handleClimate(w http.ResponseWriter, r *http.Request) {
	pc := chi.URLParam(r, "postcode")
	if !climate.ValidatePostcode(pc) {
		s.writeError(w, r, fmt.Errorf("%w: %q", assess.ErrInvalidPostcode, pc))
		return
	}
	writeJSON(w, http.StatusOK, climate.ForPostcode(climate.FormatPostcode(pc)))
}

type assessmentResponse struct {
	SessionID string         `json:"sessionId"`
	CanUndo   bool           `json:"canUndo"`
	CanRedo   bool           `json:"canRedo"`
	Result    *assess.Result `json:"result"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assess.Request
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.assessor.Assess(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Assessment(res.Building.PropertyType, res.Building.TotalHeatLoss)

	sess := &history.Session{
		ID:            res.Building.ID,
		Postcode:      res.Climate.Postcode,
		Conditions:    res.Conditions,
		IncludeGrants: !req.NoGrants,
		History:       history.NewLog(history.DefaultLimit),
	}
	if err := s.record(r, sess, res.Building); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, assessmentResponse{
		SessionID: sess.ID,
		CanUndo:   sess.History.CanUndo(),
		CanRedo:   sess.History.CanRedo(),
		Result:    res,
	})
}

// record pushes the building onto the session history and saves it.
func (s *Server) record(r *http.Request, sess *history.Session, b *building.Building) error {
	snap, err := b.ToJSON()
	if err != nil {
		return err
	}
	sess.History.Push(snap)
	sess.UpdatedAt = time.Now().UTC()
	return s.store.Put(r.Context(), sess)
}

// current loads a session and decodes its current building.
func (s *Server) current(r *http.Request) (*history.Session, *building.Building, error) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, nil, err
	}
	snap, ok := sess.Building()
	if !ok {
		return nil, nil, fmt.Errorf("%w: session %s has no building", history.ErrNotFound, sess.ID)
	}
	b, err := building.FromJSON(snap)
	if err != nil {
		return nil, nil, err
	}
	return sess, b, nil
}

type buildingResponse struct {
	Building *building.Building `json:"building"`
	CanUndo  bool               `json:"canUndo"`
	CanRedo  bool               `json:"canRedo"`
}

func (s *Server) handleBuilding(w http.ResponseWriter, r *http.Request) {
	sess, b, err := s.current(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buildingResponse{
		Building: b,
		CanUndo:  sess.History.CanUndo(),
		CanRedo:  sess.History.CanRedo(),
	})
}

type resizeRequest struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

func (s *Server) handleResizeSpace(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.edits.Lock()
	defer s.edits.Unlock()

	sess, b, err := s.current(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := b.UpdateSpaceDimensions(chi.URLParam(r, "spaceID"), req.Width, req.Depth); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.evaluate(r, sess, b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.record(r, sess, b); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assessmentResponse{
		SessionID: sess.ID,
		CanUndo:   sess.History.CanUndo(),
		CanRedo:   sess.History.CanRedo(),
		Result:    res,
	})
}

func (s *Server) evaluate(r *http.Request, sess *history.Session, b *building.Building) (*assess.Result, error) {
	res, err := s.assessor.Evaluate(r.Context(), b, sess.Conditions, sess.IncludeGrants, nil)
	if err != nil {
		return nil, err
	}
	res.Climate = climate.ForPostcode(sess.Postcode)
	res.RegionalGas = climate.AnnualHeatingCost(b.TotalHeatLoss, res.Climate.Key, climate.Gas)
	return res, nil
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, (*history.Log).Undo)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, (*history.Log).Redo)
}

// step moves the session history cursor. Nothing to undo or redo is a
// conflict.
func (s *Server) step(w http.ResponseWriter, r *http.Request, move func(*history.Log) ([]byte, bool)) {
	s.edits.Lock()
	defer s.edits.Unlock()

	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, ok := move(sess.History)
	if !ok {
		writeJSON(w, http.StatusConflict, errorBody{Error: "nothing to restore"})
		return
	}
	b, err := building.FromJSON(snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buildingResponse{
		Building: b,
		CanUndo:  sess.History.CanUndo(),
		CanRedo:  sess.History.CanRedo(),
	})
}

type upgradeRequest struct {
	Package  string             `json:"package,omitempty"`
	Upgrades []heatloss.Upgrade `json:"upgrades,omitempty"`
}

func (s *Server) handleUpgrades(w http.ResponseWriter, r *http.Request) {
	var req upgradeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	upgrades := req.Upgrades
	if req.Package != "" {
		p, ok := heatloss.LookupPackage(req.Package)
		if !ok {
			s.writeError(w, r, fmt.Errorf("%w: %q", assess.ErrUnknownPackage, req.Package))
			return
		}
		upgrades = append(p.Upgrades, upgrades...)
	}
	if len(upgrades) == 0 {
		s.writeError(w, r, fmt.Errorf("%w: no upgrades given", errBadRequest))
		return
	}

	sess, b, err := s.current(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	calc, err := heatloss.New(sess.Conditions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	impact, err := calc.UpgradeImpact(b, upgrades)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, b, err := s.current(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.evaluate(r, sess, b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", b.ID+".xlsx"))
	if err := export.WriteXLSX(w, res); err != nil {
		s.logger.Error("writing export", "building", b.ID, "err", err)
	}
}
