package api

import (
	"encoding/json"
	"net/http"
)

// submitContribution records a contribution in the open batch. Providers only.
// POST /contributions
func (a *API) submitContribution(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	req := &ContributionRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if req.Cost == nil || req.Budget == nil {
		ErrMalformedBody.Withf("cost and budget are required").Write(w)
		return
	}
	if req.Handle.IsZero() {
		ErrMalformedBody.Withf("ciphertext handle is required").Write(w)
		return
	}
	contrib, err := a.engine.SubmitContribution(actor, req.Cost.MathBigInt(), req.Budget.MathBigInt(), req.Handle)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, contrib)
}
