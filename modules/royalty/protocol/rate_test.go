package protocol

import (
	"fmt"
	"testing"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRate(t *testing.T) {
	testcases := []struct {
		input       uint64
		shouldError bool
	}{
		{0, false},
		{1, false},
		{250000, false},
		{10_000_000, false},
		{10_000_001, true},
		{1 << 40, true},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprint(tc.input), func(t *testing.T) {
			rate, err := NewRate(tc.input)
			if tc.shouldError {
				assert.ErrorIs(t, err, errs.MalformedRate)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.input, rate)
			assert.NoError(t, rate.Validate())
		})
	}
	assert.ErrorIs(t, Rate(MaxRate+1).Validate(), errs.MalformedRate)
}

func TestNewRateFromPercent(t *testing.T) {
	testcases := []struct {
		input       string
		expected    Rate
		shouldError bool
	}{
		{input: "0", expected: 0},
		{input: "2.5", expected: 250000},
		{input: "5", expected: 500000},
		{input: "0.00001", expected: 1},
		{input: "100", expected: MaxRate},
		{input: "100.00001", shouldError: true},
		{input: "0.000001", shouldError: true},
		{input: "-1", shouldError: true},
		{input: "abc", shouldError: true},
	}
	for _, tc := range testcases {
		t.Run(tc.input, func(t *testing.T) {
			rate, err := NewRateFromPercent(tc.input)
			if tc.shouldError {
				assert.ErrorIs(t, err, errs.MalformedRate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rate)
			assert.Equal(t, tc.input, rate.Percent().String())
		})
	}
}
