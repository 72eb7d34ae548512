package http

import (
	"net/http"
	"strconv"
	"strings"
)

// RouterConfig wires the handlers the router should expose. A nil handler
// leaves its routes unregistered.
type RouterConfig struct {
	Persons *PersonHandler
	Rooms   *RoomHandler
	Usages  *UsageHandler
}

// NewRouter builds the HTTP route table for the registry API.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Persons != nil {
		mux.HandleFunc("/students", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Persons.CreateStudent(w, r)
		})
		mux.HandleFunc("/professors", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Persons.CreateProfessor(w, r)
		})
		mux.HandleFunc("/admins", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Persons.CreateAdmin(w, r)
		})
		mux.HandleFunc("/persons", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Persons.List(w, r)
		})
		mux.HandleFunc("/persons/", func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.URL.Path, "/persons/")
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithPersonID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.Persons.Update(w, r)
			case http.MethodDelete:
				cfg.Persons.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Rooms != nil {
		mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Rooms.List(w, r)
			case http.MethodPost:
				cfg.Rooms.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
	}

	if cfg.Usages != nil {
		mux.HandleFunc("/usages", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Usages.List(w, r)
			case http.MethodPost:
				cfg.Usages.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
	}

	return mux
}
