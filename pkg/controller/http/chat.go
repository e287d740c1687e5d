package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/hutarka-ai/hutarka/pkg/usecase"
	"github.com/hutarka-ai/hutarka/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func chatHandler(auth *usecase.AuthUseCase, chat *usecase.ChatUseCase) http.HandlerFunc {
	type request struct {
		Message string `json:"message"`
	}
	type response struct {
		Reply string `json:"reply"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode chat request"), http.StatusBadRequest)
			return
		}

		reply, err := chat.Handle(r.Context(), id, req.Message)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, types.ErrEmptyMessage) {
				status = http.StatusBadRequest
			}
			errutil.HandleHTTP(r.Context(), w, err, status)
			return
		}

		respondJSON(w, r, http.StatusOK, response{Reply: reply})
	}
}
