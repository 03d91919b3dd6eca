package coupon

type Reason string

const (
	ReasonInvalidCode          Reason = "invalid_code"
	ReasonNotFound             Reason = "not_found"
	ReasonMinimumOrderNotMet   Reason = "minimum_order_not_met"
	ReasonNotStarted           Reason = "not_started"
	ReasonExpired              Reason = "expired"
	ReasonInactive             Reason = "inactive"
	ReasonUsageLimitReached    Reason = "usage_limit_reached"
	ReasonPerUserLimitReached  Reason = "per_user_limit_reached"
	ReasonAllProductsExcluded  Reason = "all_products_excluded"
	ReasonNoApplicableProducts Reason = "no_applicable_products"
)

// Outcome is the result of applying a coupon. Ineligibility is an expected
// outcome carried in Reason, not an error.
type Outcome struct {
	Code           Code
	Applied        bool
	Reason         Reason
	DiscountAmount int64
}

func Ineligible(code Code, reason Reason) Outcome {
	return Outcome{Code: code, Reason: reason}
}

// MetricLabel is "applied" or the ineligibility reason.
func (o Outcome) MetricLabel() string {
	if o.Applied {
		return "applied"
	}
	return string(o.Reason)
}
