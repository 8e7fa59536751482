package guard

import (
	"encoding/json"
	"net/http"

	"github.com/candlepilots/planguard/pkg/plan"
)

// Denial is a structured refusal produced by the guard. It carries enough
// machine-readable data for a client to render an upgrade prompt without
// string-matching the message.
type Denial struct {
	Status int
	body   any
}

type unauthorizedBody struct {
	Error string `json:"error"`
}

type limitBody struct {
	Error           string     `json:"error"`
	Limit           plan.Limit `json:"limit"`
	Current         int64      `json:"current"`
	UpgradeRequired bool       `json:"upgradeRequired"`
}

type featureBody struct {
	Error           string `json:"error"`
	Feature         string `json:"feature"`
	UpgradeRequired bool   `json:"upgradeRequired"`
}

type serverErrorBody struct {
	Error string `json:"error"`
}

// Unauthorized is the denial for requests without a valid session.
func Unauthorized() Denial {
	return Denial{
		Status: http.StatusUnauthorized,
		body:   unauthorizedBody{Error: "Authentication required"},
	}
}

// LimitDenial wraps a failed limit check.
func LimitDenial(result plan.LimitCheckResult) Denial {
	msg := result.Message
	if msg == "" {
		msg = "Resource limit reached"
	}
	return Denial{
		Status: http.StatusForbidden,
		body: limitBody{
			Error:           msg,
			Limit:           result.Limit,
			Current:         result.Current,
			UpgradeRequired: true,
		},
	}
}

// FeatureDenial wraps a failed feature check.
func FeatureDenial(feature plan.Feature) Denial {
	return Denial{
		Status: http.StatusForbidden,
		body: featureBody{
			Error:           "This feature is not available on your current plan",
			Feature:         string(feature),
			UpgradeRequired: true,
		},
	}
}

// serverError is the fallback for unexpected failures (persistence down).
// It is not part of the denial taxonomy; the body stays generic.
func serverError() Denial {
	return Denial{
		Status: http.StatusInternalServerError,
		body:   serverErrorBody{Error: "Internal server error"},
	}
}

// Write serializes the denial to the response.
func (d Denial) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(d.Status)
	_ = json.NewEncoder(w).Encode(d.body)
}
