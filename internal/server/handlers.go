package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/docdraft/internal/drafter"
	"github.com/sells-group/docdraft/internal/job"
	"github.com/sells-group/docdraft/internal/model"
	"github.com/sells-group/docdraft/internal/schema"
	"github.com/sells-group/docdraft/internal/store"
)

const maxBodyBytes = 10 << 20

// FinanceRequest is the body of POST /v1/finance.
type FinanceRequest struct {
	Period string            `json:"period"`
	Rows   []model.LedgerRow `json:"rows"`
}

// PolicyRequest is the body of POST /v1/policy.
type PolicyRequest struct {
	Policy    string   `json:"policy"`
	Questions []string `json:"questions"`
}

// PolicyResponse pairs each question with its answer, in request order.
type PolicyResponse struct {
	Answers []model.PolicyAnswer `json:"answers"`
}

// ContractsRequest is the body of POST /v1/contracts.
type ContractsRequest struct {
	Contracts []string `json:"contracts"`
}

// ContractsResponse holds one summary per contract, in request order.
type ContractsResponse struct {
	Summaries []model.ContractSummary `json:"summaries"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"mode":   string(s.drafter.Mode()),
	})
}

func (s *Server) draftFinance(w http.ResponseWriter, r *http.Request) {
	var req FinanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Period) == "" {
		req.Period = job.DefaultPeriod
	}

	report, err := s.drafter.Finance(r.Context(), req.Period, req.Rows)
	store.Record(r.Context(), s.store, model.KindFinance, s.drafter.Mode(), req.Period, report, err)
	if err != nil {
		writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) draftPolicy(w http.ResponseWriter, r *http.Request) {
	var req PolicyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "questions is required", Field: "questions"})
		return
	}

	answers, err := drafter.PolicyBatch(r.Context(), s.drafter, req.Policy, req.Questions, s.cfg.MaxConcurrency)
	if err != nil {
		store.Record(r.Context(), s.store, model.KindPolicy, s.drafter.Mode(), strings.Join(req.Questions, " | "), nil, err)
		writeDraftError(w, err)
		return
	}
	for i, a := range answers {
		store.Record(r.Context(), s.store, model.KindPolicy, s.drafter.Mode(), req.Questions[i], a, nil)
	}
	writeJSON(w, http.StatusOK, PolicyResponse{Answers: answers})
}

func (s *Server) draftContracts(w http.ResponseWriter, r *http.Request) {
	var req ContractsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Contracts) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "contracts is required", Field: "contracts"})
		return
	}

	summaries, err := drafter.ContractBatch(r.Context(), s.drafter, req.Contracts, s.cfg.MaxConcurrency)
	if err != nil {
		store.Record(r.Context(), s.store, model.KindContract, s.drafter.Mode(), "http", nil, err)
		writeDraftError(w, err)
		return
	}
	for i, sum := range summaries {
		store.Record(r.Context(), s.store, model.KindContract, s.drafter.Mode(), "http#"+strconv.Itoa(i), sum, nil)
	}
	writeJSON(w, http.StatusOK, ContractsResponse{Summaries: summaries})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "run log is disabled"})
		return
	}

	q := r.URL.Query()
	filter := store.RunFilter{
		Kind:   model.DocumentKind(q.Get("kind")),
		Status: model.RunStatus(q.Get("status")),
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer", Field: "limit"})
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "offset must be a non-negative integer", Field: "offset"})
		return
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("server: list runs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list runs"})
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "run log is disabled"})
		return
	}

	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "run not found"})
		return
	}
	if err != nil {
		zap.L().Error("server: get run", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get run"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeDraftError maps a drafting failure to a status. A schema violation
// is the upstream service's fault.
func writeDraftError(w http.ResponseWriter, err error) {
	var ve *schema.ViolationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: ve.Error(), Field: ve.Field})
		return
	}
	zap.L().Error("server: drafting failed", zap.Error(err))
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "drafting failed: " + err.Error()})
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}
