package api

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error codes in the 40001-49999 range are the caller's fault,
// codes in the 50001-59999 range are the server's fault.
var (
	ErrResourceNotFound = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody    = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrMalformedActor   = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed actor address")}
	ErrMalformedBatchID = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed batch id")}
	ErrBatchNotFound    = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("batch not found")}
	ErrMalformedParam   = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed URL parameter")}

	ErrUnauthorized    = Error{Code: 40010, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("actor not authorized")}
	ErrSystemPaused    = Error{Code: 40011, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("system is paused")}
	ErrCooldownActive  = Error{Code: 40012, HTTPstatus: http.StatusTooManyRequests, Err: fmt.Errorf("cooldown active")}
	ErrBatchNotOpen    = Error{Code: 40013, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("no open batch")}
	ErrBatchOpen       = Error{Code: 40014, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("a batch is already open")}
	ErrBatchNotClosed  = Error{Code: 40015, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("batch is not closed")}
	ErrEmptyBatch      = Error{Code: 40016, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("batch has no contributions")}
	ErrUnknownToken    = Error{Code: 40017, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("unknown settlement token")}
	ErrReplayRejected  = Error{Code: 40018, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("settlement result already processed")}
	ErrIntegrityFailed = Error{Code: 40019, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("batch integrity check failed")}
	ErrInvalidProof    = Error{Code: 40020, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid decryption proof")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)
