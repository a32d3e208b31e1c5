package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.vocdoni.io/dvote/log"
)

// requestSettlement triggers the settlement of a closed batch. Any
// registered actor may trigger; the caller does not learn the cleartext.
// POST /settlements
func (a *API) requestSettlement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	req := &SettlementTriggerRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	sr, err := a.engine.RequestSettlement(r.Context(), actor, req.BatchID)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, &SettlementTriggerResponse{
		Token:   sr.Token,
		BatchID: sr.BatchID,
	})
}

// settlement returns a settlement request by its oracle token.
// GET /settlements/{token}
func (a *API) settlement(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, TokenURLParam)
	if token == "" {
		ErrMalformedParam.Withf("missing token").Write(w)
		return
	}
	sr, err := a.engine.SettlementRequest(token)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, sr)
}

// settlementResult is the inbound callback delivering a decryption result.
// The token itself is the capability, so no actor header is required.
// POST /settlements/{token}/result
func (a *API) settlementResult(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, TokenURLParam)
	if token == "" {
		ErrMalformedParam.Withf("missing token").Write(w)
		return
	}
	req := &DecryptionResultRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}
	if req.Cleartext == nil {
		ErrMalformedBody.Withf("cleartext is required").Write(w)
		return
	}
	sr, err := a.engine.OnDecryptionResult(token, req.Cleartext.MathBigInt(), req.Proof)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	log.Infow("settlement finalized", "token", sr.Token, "batchId", sr.BatchID)
	httpWriteJSON(w, sr)
}
