package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "两位小数", input: "35.00", want: 3500},
		{name: "一位小数补齐", input: "35.5", want: 3550},
		{name: "无小数", input: "35", want: 3500},
		{name: "零头", input: "0.99", want: 99},
		{name: "三位小数拒绝", input: "35.005", wantErr: true},
		{name: "负数拒绝", input: "-5.00", wantErr: true},
		{name: "负零头拒绝", input: "-0.50", wantErr: true},
		{name: "非数字拒绝", input: "abc", wantErr: true},
		{name: "空串拒绝", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "35.00", FormatPrice(3500))
	assert.Equal(t, "25.00", FormatPrice(2500))
	assert.Equal(t, "35.50", FormatPrice(3550))
	assert.Equal(t, "0.99", FormatPrice(99))
	assert.Equal(t, "0.05", FormatPrice(5))
}

func TestPriceCentsUnmarshal(t *testing.T) {
	t.Run("数字写法", func(t *testing.T) {
		var req CreateBookRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Test book 1","price":35.00}`), &req))
		assert.Equal(t, PriceCents(3500), req.Price)
	})

	t.Run("字符串写法", func(t *testing.T) {
		var req CreateBookRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Test book 1","price":"35.00"}`), &req))
		assert.Equal(t, PriceCents(3500), req.Price)
	})

	t.Run("超过两位小数拒绝", func(t *testing.T) {
		var req CreateBookRequest
		assert.Error(t, json.Unmarshal([]byte(`{"name":"x","price":35.005}`), &req))
	})
}
