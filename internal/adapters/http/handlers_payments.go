package web

import (
	"net/http"

	"clubadmin/internal/application/listutil"
	"clubadmin/internal/application/orchestrators"
	"clubadmin/internal/application/projections"
	"clubadmin/internal/domain/payment"
)

// handlePaymentList handles GET /payments
func (s *server) handlePaymentList(w http.ResponseWriter, r *http.Request) {
	q := listutil.ParseQuery(r.URL.Query())
	result, err := projections.QueryPaymentOverview(r.Context(), q, projections.PaymentOverviewDeps{
		Gateway: s.API,
		Clock:   s.Clock,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "payments_list.html", map[string]any{
		"L":              result,
		"PerPageOptions": listutil.PerPageOptions,
	}, result)
}

// handlePaymentDetail handles GET /payments/{id}
func (s *server) handlePaymentDetail(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryPaymentDetail(r.Context(), pathID(r, "id"), projections.PaymentDetailDeps{
		Gateway: s.API,
		Clock:   s.Clock,
	})
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	respond(w, r, "payment_detail.html", map[string]any{"P": result}, result)
}

func (s *server) renderPaymentForm(w http.ResponseWriter, r *http.Request, form payment.Form, msg string) {
	opts, err := projections.QueryFormOptions(r.Context(),
		projections.FormOptionsQuery{Players: true},
		projections.FormOptionsDeps{Players: s.API},
	)
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	renderTemplate(w, r, "payment_new.html", map[string]any{
		"Form":     form,
		"Error":    msg,
		"Options":  opts,
		"Methods":  payment.Methods,
		"Concepts": payment.Concepts,
	})
}

// handlePaymentNew handles GET /payments/new. ?player= preselects a player.
func (s *server) handlePaymentNew(w http.ResponseWriter, r *http.Request) {
	s.renderPaymentForm(w, r, payment.Form{
		PlayerID:      r.URL.Query().Get("player"),
		Concept:       payment.Concepts[0],
		PaymentMethod: payment.Methods[0],
		DueDate:       s.Clock.Now().In(s.Config.Location()).Format("2006-01-02"),
	}, "")
}

// handlePaymentCreate handles POST /payments
func (s *server) handlePaymentCreate(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	form := payment.Form{
		PlayerID:      r.FormValue("playerId"),
		Amount:        r.FormValue("amount"),
		Concept:       r.FormValue("concept"),
		DueDate:       r.FormValue("dueDate"),
		PaymentMethod: r.FormValue("paymentMethod"),
		Notes:         r.FormValue("notes"),
	}
	id, err := orchestrators.ExecuteCreatePayment(r.Context(), form, s.API)
	if err != nil {
		msg, handled := s.formFailed(w, r, err)
		if !handled {
			s.renderPaymentForm(w, r, form, msg)
		}
		return
	}
	http.Redirect(w, r, "/payments/"+id.String(), http.StatusSeeOther)
}

// handlePaymentMarkPaid handles POST /payments/{id}/mark-paid
func (s *server) handlePaymentMarkPaid(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	id := pathID(r, "id")
	back := "/payments/" + id.String()
	if err := orchestrators.ExecuteMarkPaymentPaid(r.Context(), id, r.FormValue("transactionReference"), s.API); err != nil {
		s.commandError(w, r, err, back)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handlePaymentDelete handles POST /payments/{id}/delete
func (s *server) handlePaymentDelete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	if err := orchestrators.ExecuteDelete(r.Context(), "pago", id, s.API.DeletePayment); err != nil {
		s.commandError(w, r, err, "/payments/"+id.String())
		return
	}
	http.Redirect(w, r, "/payments", http.StatusSeeOther)
}
