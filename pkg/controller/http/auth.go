package http

import (
	"net/http"
	"strings"

	"github.com/hutarka-ai/hutarka/pkg/usecase"
	"github.com/hutarka-ai/hutarka/pkg/utils/errutil"
)

// bearerToken extracts the credential from the Authorization header.
// Returns an empty string when no bearer credential is present.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func authInitHandler(auth *usecase.AuthUseCase) http.HandlerFunc {
	type response struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cred, id, err := auth.Init(r.Context(), bearerToken(r))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		respondJSON(w, r, http.StatusOK, response{
			Token:  cred,
			UserID: id.String(),
		})
	}
}
