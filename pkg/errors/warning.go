package errors

import "fmt"

// WarnCodeUnroutedDemand marks a demand whose endpoints have no route in the
// routing table. The demand is skipped and the run continues.
const WarnCodeUnroutedDemand Code = "UNROUTED_DEMAND"

// Warning is a non-fatal condition reported alongside a valid result.
type Warning struct {
	Code    Code    `json:"code" yaml:"code" bson:"code"`
	Message string  `json:"message" yaml:"message" bson:"message"`
	From    int     `json:"from_id" yaml:"from_id" bson:"from_id"`
	To      int     `json:"to_id" yaml:"to_id" bson:"to_id"`
	Volume  float64 `json:"volume" yaml:"volume" bson:"volume"`
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// UnroutedDemand builds the warning for a demand with no route.
func UnroutedDemand(from, to int, volume float64) Warning {
	return Warning{
		Code:    WarnCodeUnroutedDemand,
		Message: fmt.Sprintf("no route from %d to %d, %g units not assigned", from, to, volume),
		From:    from,
		To:      to,
		Volume:  volume,
	}
}
