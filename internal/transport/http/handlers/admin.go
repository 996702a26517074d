package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/commentary/internal/transport/http/errors"
)

// Административные маршруты. Доступ к ним ограничивает апстрим (шлюз).

func (h *Handlers) AdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.Service.AdminDeleteComment(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteFromModel(res))
}

func (h *Handlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in SetStatusRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("bad body"))
		return
	}

	c, err := h.Service.SetStatus(r.Context(), id, in.Status)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentFromModel(*c))
}

func (h *Handlers) ReorderAll(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	rep, err := h.Service.ReorderAll(r.Context(), scope)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ReorderResponse{Total: rep.Total, Updated: rep.Updated, Orphans: rep.Orphans})
}
