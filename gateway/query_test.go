package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b interface{}
		want int
	}{
		{"numbers", 2.0, 10.0, -1},
		{"equal numbers", 3.0, 3.0, 0},
		{"text", "b", "a", 1},
		{"timestamps across offsets", "2026-01-01T10:00:00+02:00", "2026-01-01T09:00:00Z", -1},
		{"timestamps with fractions", "2026-01-01T00:00:00.5Z", "2026-01-01T00:00:00Z", 1},
		{"nil first", nil, "a", -1},
		{"nil last", 1.0, nil, 1},
		{"bools", false, true, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareValues(tt.a, tt.b))
		})
	}
}

func TestMergeFieldsKeepsUntouchedKeys(t *testing.T) {
	merged, err := mergeFields([]byte(`{"name":"bag","price":100}`), map[string]interface{}{"price": 80, "id": "x"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"bag","price":80}`, string(merged))
}

func TestEncodeRecordRejectsNonObjects(t *testing.T) {
	_, err := encodeRecord([]int{1, 2})
	assert.Error(t, err)
}
