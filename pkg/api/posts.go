package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"pulse/pkg/models"
)

func (api *API) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := api.svc.Posts.GetAll(r.Context())
	if err != nil {
		writeError(w, r, "listPosts", err)
		return
	}
	writeJSON(w, r, http.StatusOK, posts)
}

func (api *API) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := api.svc.Posts.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "getPost", err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}

func (api *API) userPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := api.svc.Posts.GetByUserID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "userPosts", err)
		return
	}
	writeJSON(w, r, http.StatusOK, posts)
}

func (api *API) createPost(w http.ResponseWriter, r *http.Request) {
	var draft models.PostDraft
	if err := decodeBody(r, &draft); err != nil {
		badRequest(w, r, "createPost", err)
		return
	}
	if err := api.check(draft.Content); err != nil {
		writeError(w, r, "createPost", err)
		return
	}

	post, err := api.svc.Posts.Create(r.Context(), draft)
	if err != nil {
		writeError(w, r, "createPost", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, post)
}

func (api *API) updatePost(w http.ResponseWriter, r *http.Request) {
	var patch models.PostPatch
	if err := decodeBody(r, &patch); err != nil {
		badRequest(w, r, "updatePost", err)
		return
	}
	if patch.Content != nil {
		if err := api.check(*patch.Content); err != nil {
			writeError(w, r, "updatePost", err)
			return
		}
	}

	post, err := api.svc.Posts.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, "updatePost", err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}

func (api *API) deletePost(w http.ResponseWriter, r *http.Request) {
	ok, err := api.svc.Posts.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "deletePost", err)
		return
	}
	writeJSON(w, r, http.StatusOK, DeleteResponse{Deleted: ok})
}

func (api *API) likePost(w http.ResponseWriter, r *http.Request) {
	post, err := api.svc.Posts.Like(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "likePost", err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}

func (api *API) unlikePost(w http.ResponseWriter, r *http.Request) {
	post, err := api.svc.Posts.Unlike(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "unlikePost", err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}
