package handlers

import (
	"net/http"

	"github.com/pribylovaa/commentary/internal/service"
	apierrors "github.com/pribylovaa/commentary/internal/transport/http/errors"
)

func (h *Handlers) React(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in ReactRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("bad body"))
		return
	}

	res, err := h.Service.React(r.Context(), service.ReactInput{CommentID: id, UserID: user, Type: in.Type})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reactFromModel(res))
}

func (h *Handlers) UserReactions(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	list, err := h.Service.UserReactions(r.Context(), scope, user)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, UserReactionsResponse{Reactions: list})
}
