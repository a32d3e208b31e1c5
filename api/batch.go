package api

import (
	"net/http"
)

// openBatch opens the next sequential batch. Administrator only.
// POST /batches
func (a *API) openBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	batch, err := a.engine.OpenBatch(actor)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, batch)
}

// closeBatch closes the currently open batch. Administrator only.
// POST /batches/close
func (a *API) closeBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		ErrMalformedActor.Write(w)
		return
	}
	batch, err := a.engine.CloseBatch(actor)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, batch)
}

// batch returns a single batch.
// GET /batches/{batchId}
func (a *API) batch(w http.ResponseWriter, r *http.Request) {
	id, ok := batchIDFromRequest(r)
	if !ok {
		ErrMalformedBatchID.Write(w)
		return
	}
	batch, err := a.engine.Batch(id)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, batch)
}

// batchContributions lists the contributions of a batch in submission order.
// GET /batches/{batchId}/contributions
func (a *API) batchContributions(w http.ResponseWriter, r *http.Request) {
	id, ok := batchIDFromRequest(r)
	if !ok {
		ErrMalformedBatchID.Write(w)
		return
	}
	if _, err := a.engine.Batch(id); err != nil {
		errorToAPI(err).Write(w)
		return
	}
	contribs, err := a.engine.Contributions(id)
	if err != nil {
		errorToAPI(err).Write(w)
		return
	}
	httpWriteJSON(w, contribs)
}
