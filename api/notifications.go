package api

import (
	"net/http"
	"strconv"
)

// defaultNotificationsPageSize bounds how many feed records a single
// request returns.
const defaultNotificationsPageSize = 100

// notifications returns the append-only observer feed, starting at the
// given sequence number.
// GET /notifications?from=<seq>&max=<n>
func (a *API) notifications(w http.ResponseWriter, r *http.Request) {
	var from uint64
	if raw := r.URL.Query().Get("from"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ErrMalformedParam.Withf("invalid from: %v", err).Write(w)
			return
		}
		from = v
	}
	max := defaultNotificationsPageSize
	if raw := r.URL.Query().Get("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			ErrMalformedParam.Withf("invalid max").Write(w)
			return
		}
		if v < max {
			max = v
		}
	}
	notes, err := a.engine.Notifications(from, max)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, notes)
}
