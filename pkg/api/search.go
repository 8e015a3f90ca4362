package api

import (
	"net/http"

	"pulse/pkg/search"
)

func (api *API) searchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := api.svc.Posts.GetAll(r.Context())
	if err != nil {
		writeError(w, r, "searchPosts", err)
		return
	}
	writeJSON(w, r, http.StatusOK, search.Posts(posts, r.URL.Query().Get("q")))
}

func (api *API) searchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := api.svc.Users.GetAll(r.Context())
	if err != nil {
		writeError(w, r, "searchUsers", err)
		return
	}
	writeJSON(w, r, http.StatusOK, search.Users(users, r.URL.Query().Get("q")))
}

func (api *API) searchHashtags(w http.ResponseWriter, r *http.Request) {
	posts, err := api.svc.Posts.GetAll(r.Context())
	if err != nil {
		writeError(w, r, "searchHashtags", err)
		return
	}
	writeJSON(w, r, http.StatusOK, search.Hashtags(posts, r.URL.Query().Get("q")))
}
