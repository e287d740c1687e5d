package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/hutarka-ai/hutarka/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// HandleHTTP logs the error and writes a JSON error response.
// All errors, especially 5xx errors, are logged with their goerr context.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	body, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, body)
}
