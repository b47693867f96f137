package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"gastos/internal/core"
)

// filterFromQuery reads the active filter from the q and category params.
// An absent category means the "all" sentinel.
func filterFromQuery(r *http.Request) core.Filter {
	f := core.Filter{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}
	if f.Category == "" {
		f.Category = core.AllCategories
	}
	return f
}

func userIDFromQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("userId"))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context(), userIDFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	categories, err := s.expenses.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	filtered := filterFromQuery(r).Apply(expenses)
	if filtered == nil {
		filtered = []core.Expense{}
	}

	writeJSON(w, http.StatusOK, listExpensesResponse{
		Expenses:   filtered,
		Categories: categories,
		Total:      core.Total(filtered),
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.expenses.Create(r.Context(), req.toDraft())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.expenses.Update(r.Context(), r.PathValue("id"), req.toUpdate())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}
