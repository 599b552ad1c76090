package network

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/matzehuels/netplan/pkg/errors"
)

// SaturatedText is how a saturated delay is spelled in JSON documents.
const SaturatedText = "inf"

// Delay is a link delay in milliseconds with a JSON form that can carry
// [Saturated]. It encodes as a number, or as the string "inf" when
// saturated, and decodes "inf", "Infinity" and "+Inf" back to Saturated.
type Delay float64

// MarshalJSON implements json.Marshaler.
func (d Delay) MarshalJSON() ([]byte, error) {
	v := float64(d)
	if IsSaturated(v) {
		return json.Marshal(SaturatedText)
	}
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "delay %g cannot be encoded", v)
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Delay) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(s) {
		case "inf", "+inf", "infinity", "+infinity":
			*d = Delay(Saturated)
			return nil
		}
		return errors.New(errors.ErrCodeInvalidFormat, "invalid delay %q", s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid delay")
	}
	*d = Delay(v)
	return nil
}
