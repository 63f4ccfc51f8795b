package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   *string
		want    []int64
		wantErr bool
	}{
		{name: "nil pointer", input: nil, want: nil},
		{name: "empty string", input: strPtr(""), want: nil},
		{name: "single id", input: strPtr("7"), want: []int64{7}},
		{name: "ordered list", input: strPtr("1,9,3"), want: []int64{1, 9, 3}},
		{name: "duplicates preserved", input: strPtr("2,2,5"), want: []int64{2, 2, 5}},
		{name: "whitespace tolerated", input: strPtr("1, 2, 3"), want: []int64{1, 2, 3}},
		{name: "non-numeric element", input: strPtr("1,x,3"), wantErr: true},
		{name: "zero id rejected", input: strPtr("0,1"), wantErr: true},
		{name: "negative id rejected", input: strPtr("-4"), wantErr: true},
		{name: "trailing comma rejected", input: strPtr("1,2,"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseList(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", JoinList(nil))
	assert.Equal(t, "", JoinList([]int64{}))
	assert.Equal(t, "7", JoinList([]int64{7}))
	assert.Equal(t, "1,9,3", JoinList([]int64{1, 9, 3}))
}

func TestParseJoinRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	list := "5,1,4,1,2"
	ids, err := ParseList(&list)
	require.NoError(t, err)
	assert.Equal(t, list, JoinList(ids))
}
