package aiusage

import "errors"

// ErrQuotaExhausted is returned when a client has no assistant requests left this month.
var ErrQuotaExhausted = errors.New("assistant quota exhausted")

// DefaultRequests is the number of assistant requests granted per client per month.
const DefaultRequests = 100
