package apitest

import (
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
)

const sessionCookie = "jwt"

// admin lets through requests carrying a valid session cookie with the
// admin role. Anything else gets a 401 envelope.
func admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil || claims["role"] != "admin" {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, envelope{Success: false, Message: "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// faults short-circuits routes the test has told to misbehave.
func (s *Server) faults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.count(r.URL.Path)

		fault, ok := s.fault(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		switch {
		case fault.Hang:
			<-r.Context().Done()
		case fault.Status != 0:
			render.Status(r, fault.Status)
			render.JSON(w, r, envelope{Success: false, Message: http.StatusText(fault.Status)})
		case fault.Reject:
			render.JSON(w, r, envelope{Success: false})
		case fault.Garbage:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":[{"name":`))
		}
	})
}
