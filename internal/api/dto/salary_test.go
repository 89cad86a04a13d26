package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalary_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Salary
		wantErr bool
	}{
		{name: "number", in: `50000`, want: 50000},
		{name: "float number truncated", in: `50000.75`, want: 50000},
		{name: "numeric string", in: `"50000"`, want: 50000},
		{name: "numeric string with spaces", in: `" 50000 "`, want: 50000},
		{name: "empty string", in: `""`, want: 0},
		{name: "null", in: `null`, want: 0},
		{name: "negative", in: `-1`, want: -1},
		{name: "non numeric string", in: `"lots"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Salary
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSalary_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Salary(75000))
	require.NoError(t, err)
	assert.Equal(t, `75000`, string(out))
}
