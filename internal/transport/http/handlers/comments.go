package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pribylovaa/commentary/internal/service"
	apierrors "github.com/pribylovaa/commentary/internal/transport/http/errors"
)

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	author, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in CreateCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("bad body"))
		return
	}

	name := strings.TrimSpace(r.Header.Get(HeaderUserName))
	if name == "" {
		name = in.AuthorName
	}

	c, err := h.Service.CreateComment(r.Context(), service.CreateCommentInput{
		Scope:      scope,
		ParentID:   in.ParentID,
		AuthorID:   author,
		AuthorName: name,
		Content:    in.Content,
		OwnerID:    r.Header.Get(HeaderSiteOwnerID),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentFromModel(*c))
}

func (h *Handlers) ListThread(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in := service.ListThreadInput{Scope: scope, PageToken: r.URL.Query().Get("page_token")}

	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			apierrors.WriteError(w, r, errInvalidArgument("bad page_size"))
			return
		}

		in.PageSize = int32(n)
	}

	page, err := h.Service.ListThread(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, threadFromModel(page))
}

func (h *Handlers) ListFlat(w http.ResponseWriter, r *http.Request) {
	scope, err := scopeFrom(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.Service.ListFlat(r.Context(), scope)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, flatFromModel(items))
}

func (h *Handlers) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	v, err := h.Service.CommentByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentFromView(*v))
}

func (h *Handlers) ListReplies(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.Service.ListReplies(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, repliesFromModel(items))
}

func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	requester, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in EditCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("bad body"))
		return
	}

	c, err := h.Service.EditComment(r.Context(), service.EditCommentInput{ID: id, RequesterID: requester, Content: in.Content})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentFromModel(*c))
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	requester, err := userID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.Service.DeleteComment(r.Context(), id, requester)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteFromModel(res))
}
