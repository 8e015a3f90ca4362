// Package api exposes the post, comment and user services over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"pulse/pkg/service"
)

// Services are the backends the API serves.
type Services struct {
	Posts    service.Posts
	Comments service.Comments
	Users    service.Users
}

// Checker validates user-written content. Failures are reported as 422.
type Checker interface {
	Validate(text string) error
}

type API struct {
	ServiceName string

	r       *mux.Router
	svc     Services
	checker Checker
	kw      MessageWriter
}

// New builds the router. checker and kafkaWriter may be nil; without a writer
// request logs are not shipped.
func New(name string, svc Services, checker Checker, kafkaWriter MessageWriter) *API {
	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		svc:         svc,
		checker:     checker,
		kw:          kafkaWriter,
	}
	api.endpoints()

	return &api
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)
	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}

	api.r.HandleFunc("/posts", api.listPosts).Methods(http.MethodGet)
	api.r.HandleFunc("/posts", api.createPost).Methods(http.MethodPost)
	api.r.HandleFunc("/posts/{id}", api.getPost).Methods(http.MethodGet)
	api.r.HandleFunc("/posts/{id}", api.updatePost).Methods(http.MethodPatch)
	api.r.HandleFunc("/posts/{id}", api.deletePost).Methods(http.MethodDelete)
	api.r.HandleFunc("/posts/{id}/like", api.likePost).Methods(http.MethodPost)
	api.r.HandleFunc("/posts/{id}/like", api.unlikePost).Methods(http.MethodDelete)
	api.r.HandleFunc("/posts/{id}/comments", api.postComments).Methods(http.MethodGet)

	api.r.HandleFunc("/comments", api.listComments).Methods(http.MethodGet)
	api.r.HandleFunc("/comments", api.createComment).Methods(http.MethodPost)
	api.r.HandleFunc("/comments/{id}", api.getComment).Methods(http.MethodGet)
	api.r.HandleFunc("/comments/{id}", api.updateComment).Methods(http.MethodPatch)
	api.r.HandleFunc("/comments/{id}", api.deleteComment).Methods(http.MethodDelete)
	api.r.HandleFunc("/comments/{id}/like", api.likeComment).Methods(http.MethodPost)

	api.r.HandleFunc("/users", api.listUsers).Methods(http.MethodGet)
	api.r.HandleFunc("/users", api.createUser).Methods(http.MethodPost)
	api.r.HandleFunc("/users/{id}", api.getUser).Methods(http.MethodGet)
	api.r.HandleFunc("/users/{id}", api.updateUser).Methods(http.MethodPatch)
	api.r.HandleFunc("/users/{id}", api.deleteUser).Methods(http.MethodDelete)
	api.r.HandleFunc("/users/{id}/follow", api.followUser).Methods(http.MethodPost)
	api.r.HandleFunc("/users/{id}/follow", api.unfollowUser).Methods(http.MethodDelete)
	api.r.HandleFunc("/users/{id}/posts", api.userPosts).Methods(http.MethodGet)

	api.r.HandleFunc("/search/posts", api.searchPosts).Methods(http.MethodGet)
	api.r.HandleFunc("/search/users", api.searchUsers).Methods(http.MethodGet)
	api.r.HandleFunc("/search/hashtags", api.searchHashtags).Methods(http.MethodGet)
}

// DeleteResponse is the body of a successful DELETE.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("[api][%s] error encoding response: %v", shorten(GetRequestID(r.Context())), err)
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (api *API) check(text string) error {
	if api.checker == nil {
		return nil
	}
	return api.checker.Validate(text)
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
