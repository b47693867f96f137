package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gastos/internal/core"
)

// handleAnalytics computes aggregate statistics over the currently
// filtered collection. Responses are cached per filter and invalidated
// whenever the store reports a change.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	userID := userIDFromQuery(r)

	cacheKey := fmt.Sprintf("%s|%s|%s", userID, filter.Query, filter.Category)
	if cached, ok := s.analyticsCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	expenses, err := s.expenses.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	scoped := filter.Apply(expenses)

	total := core.Total(scoped)
	byCategory := make([]categoryBreakdown, 0)
	for _, sum := range core.ByCategory(scoped) {
		byCategory = append(byCategory, categoryBreakdown{
			Category:   sum.Category,
			Amount:     sum.Amount,
			Percentage: core.PercentageOfTotal(sum.Amount, total),
		})
	}

	byMonth := core.ByMonth(scoped)
	if byMonth == nil {
		byMonth = []core.MonthSum{}
	}

	resp := analyticsResponse{
		Stats:      core.Snapshot(scoped),
		ByCategory: byCategory,
		ByMonth:    byMonth,
	}
	s.analyticsCache.Set(cacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.budget.Get())
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.budget.Update(req.toUpdate())
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		// The merge succeeded but the write failed; answer with the
		// merged settings anyway, the next update retries the write.
		writeJSON(w, http.StatusOK, updated)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context(), userIDFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := core.EvaluateBudget(s.budget.Get(), expenses, time.Now())
	writeJSON(w, http.StatusOK, status)
}
