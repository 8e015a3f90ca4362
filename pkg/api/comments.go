package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"pulse/pkg/models"
)

func (api *API) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := api.svc.Comments.GetAll(r.Context())
	if err != nil {
		writeError(w, r, "listComments", err)
		return
	}
	writeJSON(w, r, http.StatusOK, comments)
}

func (api *API) getComment(w http.ResponseWriter, r *http.Request) {
	comment, err := api.svc.Comments.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "getComment", err)
		return
	}
	writeJSON(w, r, http.StatusOK, comment)
}

// postComments lists the comments whose postId equals the path id exactly.
func (api *API) postComments(w http.ResponseWriter, r *http.Request) {
	comments, err := api.svc.Comments.GetByPostID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "postComments", err)
		return
	}
	writeJSON(w, r, http.StatusOK, comments)
}

func (api *API) createComment(w http.ResponseWriter, r *http.Request) {
	var draft models.CommentDraft
	if err := decodeBody(r, &draft); err != nil {
		badRequest(w, r, "createComment", err)
		return
	}
	if err := api.check(draft.Content); err != nil {
		writeError(w, r, "createComment", err)
		return
	}

	comment, err := api.svc.Comments.Create(r.Context(), draft)
	if err != nil {
		writeError(w, r, "createComment", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, comment)
}

func (api *API) updateComment(w http.ResponseWriter, r *http.Request) {
	var patch models.CommentPatch
	if err := decodeBody(r, &patch); err != nil {
		badRequest(w, r, "updateComment", err)
		return
	}
	if patch.Content != nil {
		if err := api.check(*patch.Content); err != nil {
			writeError(w, r, "updateComment", err)
			return
		}
	}

	comment, err := api.svc.Comments.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, "updateComment", err)
		return
	}
	writeJSON(w, r, http.StatusOK, comment)
}

func (api *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	ok, err := api.svc.Comments.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "deleteComment", err)
		return
	}
	writeJSON(w, r, http.StatusOK, DeleteResponse{Deleted: ok})
}

func (api *API) likeComment(w http.ResponseWriter, r *http.Request) {
	comment, err := api.svc.Comments.Like(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "likeComment", err)
		return
	}
	writeJSON(w, r, http.StatusOK, comment)
}
