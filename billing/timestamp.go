package billing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/alvr10/caffeine-tracker-backend/utils"
)

// Epochs past year 9999 convert to dates the JSON encoder refuses to marshal,
// so they count as invalid rather than being clamped.
const maxEpochSeconds = 253402300799

// NormalizeEpoch converts an epoch-seconds value of uncertain quality into a
// UTC timestamp. Stripe delivers the field as int64, float64 or not at all
// depending on API version, so the input is deliberately untyped. Returns nil
// when the value is absent, non-numeric, NaN or outside the representable
// date range. Invalid input is logged and never interrupts the caller; bad
// timestamps are an expected condition, not a failure.
func NormalizeEpoch(value interface{}) *time.Time {
	if value == nil {
		return nil
	}
	epoch, ok := epochSeconds(value)
	if !ok || epoch <= 0 || epoch > maxEpochSeconds {
		utils.LogError(nil, fmt.Sprintf("Ignoring invalid epoch timestamp %v in NormalizeEpoch", value))
		return nil
	}
	t := time.Unix(epoch, 0).UTC()
	return &t
}

func epochSeconds(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
