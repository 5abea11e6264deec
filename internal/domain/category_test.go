package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"weed", CategoryWeed},
		{"weeds", CategoryWeed},
		{"WEEDS", CategoryWeed},
		{"failure", CategoryFailure},
		{" Failures ", CategoryFailure},
		{"vigor", CategoryVigor},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCategory("pests")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "W", CategoryWeed.Prefix())
	assert.Equal(t, "F", CategoryFailure.Prefix())
	assert.Equal(t, "V", CategoryVigor.Prefix())

	assert.Equal(t, "weeds", CategoryWeed.ListType())
	assert.Equal(t, "failures", CategoryFailure.ListType())

	assert.Equal(t, "Setor W", CategoryWeed.DefaultLabel())
	assert.Equal(t, "Falha", CategoryFailure.DefaultLabel())

	assert.True(t, CategoryVigor.Valid())
	assert.False(t, Category("weeds").Valid())
}
