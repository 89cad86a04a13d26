package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Salary accepts a JSON number or a numeric string ("50000") and
// normalizes it to an integer amount.
type Salary int64

func (s *Salary) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid salary: %w", err)
		}
		raw = strings.TrimSpace(str)
	}

	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*s = Salary(v)
		return nil
	}

	// JSON numbers may arrive with a fractional part
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*s = Salary(int64(f))
		return nil
	}

	return fmt.Errorf("invalid salary %q: not a number", raw)
}

func (s Salary) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(s), 10)), nil
}
