package api

import (
	"net/http"
	"strings"

	"loyalty-ledger/internal/handler/httperr"
	"loyalty-ledger/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthorized = errs.New("unauthorized")
	errInvalidID    = errs.Wrap(errs.ErrInvalidRequest, "invalid id")
)

type statusRule struct {
	sentinel error
	status   int
}

// Order matters: the typed errors carry more than one sentinel's worth of meaning.
var statusRules = []statusRule{
	{errs.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{errs.ErrNotFound, http.StatusNotFound},
	{errs.ErrConflict, http.StatusConflict},
	{errs.ErrInvalidState, http.StatusConflict},
	{errs.ErrInvalidRequest, http.StatusBadRequest},
	{errs.ErrLimitExceeded, http.StatusForbidden},
	{errs.ErrStorageFailure, http.StatusServiceUnavailable},
}

type insufficientBalanceDetail struct {
	CurrentBalance int64 `json:"currentBalance"`
	RequiredPoints int64 `json:"requiredPoints"`
}

type conflictDetail struct {
	TransactionReference  string `json:"transactionReference"`
	ExistingTransactionID string `json:"existingTransactionId,omitempty"`
	Replay                bool   `json:"replay"`
}

// abortWithDomainError maps the shared error taxonomy onto HTTP.
func abortWithDomainError(c *gin.Context, err error) {
	var insufficient *errs.InsufficientBalanceError
	if errs.As(err, &insufficient) {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, insufficient.Error(), insufficientBalanceDetail{
			CurrentBalance: insufficient.Current,
			RequiredPoints: insufficient.Required,
		})
		return
	}

	var conflict *errs.ConflictError
	if errs.As(err, &conflict) {
		httperr.AbortWithError(c, http.StatusConflict, err, conflict.Error(), conflictDetail{
			TransactionReference:  conflict.Reference,
			ExistingTransactionID: conflict.ExistingEntry,
			Replay:                conflict.Replay,
		})
		return
	}

	for _, r := range statusRules {
		if !errs.Is(err, r.sentinel) {
			continue
		}
		msg := publicMessage(err, r.sentinel)
		if r.status == http.StatusServiceUnavailable {
			msg = "Service temporarily unavailable, retry with the same transaction reference"
		}
		httperr.AbortWithError(c, r.status, err, msg, nil)
		return
	}

	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

// publicMessage drops the trailing sentinel text added by errs.Wrap.
func publicMessage(err, sentinel error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" {
		return sentinel.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func abortUnauthorized(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
}

func abortBadRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrInvalidRequest), "Invalid request", err.Error())
}
