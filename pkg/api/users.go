package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"pulse/pkg/models"
)

func (api *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := api.svc.Users.GetAll(r.Context())
	if err != nil {
		writeError(w, r, "listUsers", err)
		return
	}
	writeJSON(w, r, http.StatusOK, users)
}

func (api *API) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := api.svc.Users.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "getUser", err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (api *API) createUser(w http.ResponseWriter, r *http.Request) {
	var draft models.UserDraft
	if err := decodeBody(r, &draft); err != nil {
		badRequest(w, r, "createUser", err)
		return
	}

	user, err := api.svc.Users.Create(r.Context(), draft)
	if err != nil {
		writeError(w, r, "createUser", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, user)
}

func (api *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decodeBody(r, &patch); err != nil {
		badRequest(w, r, "updateUser", err)
		return
	}

	user, err := api.svc.Users.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, "updateUser", err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (api *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	ok, err := api.svc.Users.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "deleteUser", err)
		return
	}
	writeJSON(w, r, http.StatusOK, DeleteResponse{Deleted: ok})
}

func (api *API) followUser(w http.ResponseWriter, r *http.Request) {
	user, err := api.svc.Users.Follow(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "followUser", err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (api *API) unfollowUser(w http.ResponseWriter, r *http.Request) {
	user, err := api.svc.Users.Unfollow(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "unfollowUser", err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}
