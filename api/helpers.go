package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/confidsys/batchsettle/settle"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"go.vocdoni.io/dvote/log"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	n, err := w.Write(jdata)
	if err != nil {
		log.Warnw("failed to write http response", "error", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
	log.Debugw("api response", "bytes", n, "data", strings.ReplaceAll(string(jdata), "\"", ""))
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// actorFromRequest extracts the caller identity from the X-Actor header.
func actorFromRequest(r *http.Request) (common.Address, bool) {
	raw := r.Header.Get(ActorHeader)
	if !common.IsHexAddress(raw) {
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// batchIDFromRequest parses the batch id URL parameter.
func batchIDFromRequest(r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, BatchURLParam)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// errorToAPI maps engine errors to their API counterparts. Unrecognized
// errors become a generic internal server error carrying the message.
func errorToAPI(err error) Error {
	switch {
	case errors.Is(err, settle.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, settle.ErrPaused):
		return ErrSystemPaused
	case errors.Is(err, settle.ErrCooldownActive):
		return ErrCooldownActive
	case errors.Is(err, settle.ErrBatchNotOpen):
		return ErrBatchNotOpen
	case errors.Is(err, settle.ErrBatchAlreadyOpen):
		return ErrBatchOpen
	case errors.Is(err, settle.ErrBatchNotClosed):
		return ErrBatchNotClosed
	case errors.Is(err, settle.ErrBatchNotFound):
		return ErrBatchNotFound
	case errors.Is(err, settle.ErrEmptyBatch):
		return ErrEmptyBatch
	case errors.Is(err, settle.ErrUnknownToken):
		return ErrUnknownToken
	case errors.Is(err, settle.ErrReplayRejected):
		return ErrReplayRejected
	case errors.Is(err, settle.ErrIntegrityMismatch):
		return ErrIntegrityFailed
	case errors.Is(err, settle.ErrInvalidProof):
		return ErrInvalidProof
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}
