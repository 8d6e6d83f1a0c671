package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/types"
)

var logger = diag.CreateLogger()

// app is a presentation layer of the ledger. The ledger manager is not
// safe for concurrent use so every call goes through the mutex
type app struct {
	mu     sync.Mutex
	ledger *ledger.Manager
	now    func() time.Time
}

type appOpt func(a *app)

func withNow(now func() time.Time) appOpt {
	return func(a *app) {
		a.now = now
	}
}

func (a *app) renderPage(h router.HandlerToolkit, filter ledger.Filter, form transactionForm, formErr error) error {
	filter = normalizeFilter(filter)
	if form.Date == "" {
		form.Date = types.DateOf(a.now()).Value()
	}

	a.mu.Lock()
	view := pageView{
		Summary:          newSummaryView(a.ledger.Aggregate()),
		Transactions:     newTransactionViews(a.ledger.List(filter)),
		Filter:           filter,
		FilterTypes:      filterTypes(),
		FilterCategories: filterCategories(),
		Form:             newFormView(form),
	}
	a.mu.Unlock()

	decorators := []router.ResponseDecorator{}
	if formErr != nil {
		view.Error = formErr.(router.HTTPError).Message
		decorators = append(decorators, h.WithStatus(http.StatusBadRequest))
	}
	return h.WriteHTML(pageTemplate, "index", view, decorators...)
}

func (a *app) handleIndex(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var filter ledger.Filter
	if err := h.BindParams().
		QueryParam("type").Default(ledger.FilterAll).String(&filter.Type).
		QueryParam("category").Default(ledger.FilterAll).String(&filter.Category).
		Validate(&filter); err != nil {
		return err
	}
	return a.renderPage(h, filter, transactionForm{}, nil)
}

func bindFormFilter(binder *router.ParamsBinder, filter *ledger.Filter) *router.ParamsBinder {
	return binder.
		FormParam("filter-type").Default(ledger.FilterAll).String(&filter.Type).
		FormParam("filter-category").Default(ledger.FilterAll).String(&filter.Category)
}

func (a *app) handleAddForm(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var form transactionForm
	var filter ledger.Filter
	if err := bindFormFilter(h.BindParams(), &filter).
		FormParam("description").String(&form.Description).
		FormParam("amount").String(&form.Amount).
		FormParam("type").String(&form.Type).
		FormParam("category").String(&form.Category).
		FormParam("date").String(&form.Date).
		Validate(&form); err != nil {
		return err
	}

	newTrx, err := form.toNewTransaction()
	if err != nil {
		logger.WithError(err).Info(req.Context(), "Rejected new transaction")
		return a.renderPage(h, filter, form, err)
	}

	a.mu.Lock()
	_, err = a.ledger.Add(req.Context(), newTrx)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return h.Redirect(pageLocation(filter))
}

func (a *app) handleDeleteForm(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var id int64
	var filter ledger.Filter
	if err := bindFormFilter(h.BindParams().PathParam("id").Int64(&id), &filter).
		Validate(&filter); err != nil {
		return err
	}

	a.mu.Lock()
	err := a.ledger.Delete(req.Context(), id)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return h.Redirect(pageLocation(filter))
}

func (a *app) handleListTransactions(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var filter ledger.Filter
	if err := h.BindParams().
		QueryParam("type").String(&filter.Type).
		QueryParam("category").String(&filter.Category).
		Validate(&filter); err != nil {
		return err
	}
	a.mu.Lock()
	transactions := a.ledger.List(filter)
	a.mu.Unlock()
	return h.WriteJSON(transactions)
}

type transactionPayload struct {
	Description string      `json:"description" validate:"required"`
	Amount      json.Number `json:"amount" validate:"required"`
	Type        string      `json:"type" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Date        string      `json:"date" validate:"required"`
}

func (a *app) handleAddTransaction(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var payload transactionPayload
	if err := h.BindPayload(&payload); err != nil {
		return err
	}
	newTrx, err := transactionForm{
		Description: payload.Description,
		Amount:      payload.Amount.String(),
		Type:        payload.Type,
		Category:    payload.Category,
		Date:        payload.Date,
	}.toNewTransaction()
	if err != nil {
		return err
	}

	a.mu.Lock()
	trx, err := a.ledger.Add(req.Context(), newTrx)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return h.WriteJSON(trx, h.WithStatus(http.StatusCreated))
}

func (a *app) handleDeleteTransaction(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var id int64
	if err := h.BindParams().PathParam("id").Int64(&id).Validate(&struct{}{}); err != nil {
		return err
	}
	a.mu.Lock()
	err := a.ledger.Delete(req.Context(), id)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// SummaryResponse is a payload of the summary endpoint
type SummaryResponse struct {
	ledger.Summary
	Positive  bool             `json:"positive"`
	Formatted FormattedSummary `json:"formatted"`
}

// FormattedSummary holds currency formatted totals
type FormattedSummary struct {
	Balance      string `json:"balance"`
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
}

func (a *app) handleSummary(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	a.mu.Lock()
	summary := a.ledger.Aggregate()
	a.mu.Unlock()
	view := newSummaryView(summary)
	return h.WriteJSON(SummaryResponse{
		Summary:  summary,
		Positive: view.Positive,
		Formatted: FormattedSummary{
			Balance:      view.Balance,
			TotalIncome:  view.TotalIncome,
			TotalExpense: view.TotalExpense,
		},
	})
}

func (a *app) handleCategories(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	var trxType string
	if err := h.BindParams().PathParam("type").String(&trxType).Validate(&struct{}{}); err != nil {
		return err
	}
	return h.WriteJSON(ledger.Categories(ledger.TransactionType(trxType)))
}

func handlePing(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
	return h.WriteJSON(map[string]string{"status": "ok"})
}

// SetupRoutes registers the page and the json api of the ledger
func SetupRoutes(r router.Router, manager *ledger.Manager, opts ...appOpt) {
	a := &app{ledger: manager, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	r.Use(router.MiddlewareFunc(diag.NewRequestIDMiddleware()))
	r.Use(router.MiddlewareFunc(diag.NewLogRequestsMiddleware(diag.IgnorePath("/v1/healthcheck/ping"))))

	r.Handle("GET", "/", router.ToolkitHandlerFunc(a.handleIndex))
	r.Handle("POST", "/transactions", router.ToolkitHandlerFunc(a.handleAddForm))
	r.Handle("POST", "/transactions/:id/delete", router.ToolkitHandlerFunc(a.handleDeleteForm))

	r.Handle("GET", "/v1/transactions", router.ToolkitHandlerFunc(a.handleListTransactions))
	r.Handle("POST", "/v1/transactions", router.ToolkitHandlerFunc(a.handleAddTransaction))
	r.Handle("DELETE", "/v1/transactions/:id", router.ToolkitHandlerFunc(a.handleDeleteTransaction))
	r.Handle("GET", "/v1/summary", router.ToolkitHandlerFunc(a.handleSummary))
	r.Handle("GET", "/v1/categories/:type", router.ToolkitHandlerFunc(a.handleCategories))
	r.Handle("GET", "/v1/healthcheck/ping", router.ToolkitHandlerFunc(handlePing))
}
