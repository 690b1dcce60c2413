package controllers

import (
	"net/http"

	"github.com/panoport/panoport-backend/api/middleware"
	"github.com/panoport/panoport-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func SessionPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "session", "status": "ok"}
		if session := middleware.SessionIDFromContext(r.Context()); session != "" {
			payload["session_id"] = session
		}
		responses.WriteSuccess(w, payload)
	}
}
