package alloc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/newtron-network/fabricgen/pkg/alloc"
	"github.com/newtron-network/fabricgen/pkg/util"
)

func TestAssign(t *testing.T) {
	leaf := alloc.Domain{Device: "DC1-N9K-LEAF01", Class: alloc.ClassSingleHomed}

	for _, test := range []struct {
		name     string
		rng      alloc.Range[int]
		static   []int
		pending  int
		expected []int
		err      bool
	}{
		{
			name:    "nothing-pending",
			rng:     alloc.Range[int]{First: 1, Last: 3},
			pending: 0,
		},
		{
			name:     "fill-in-order",
			rng:      alloc.Range[int]{First: 13, Last: 32},
			pending:  3,
			expected: []int{13, 14, 15},
		},
		{
			name:     "skip-static",
			rng:      alloc.Range[int]{First: 1, Last: 3},
			static:   []int{2},
			pending:  2,
			expected: []int{1, 3},
		},
		{
			name:    "capacity-exceeded",
			rng:     alloc.Range[int]{First: 1, Last: 3},
			static:  []int{2},
			pending: 3,
			err:     true,
		},
		{
			name:     "static-outside-range-ignored",
			rng:      alloc.Range[int]{First: 1, Last: 3},
			static:   []int{7, 40},
			pending:  3,
			expected: []int{1, 2, 3},
		},
		{
			name:     "duplicate-static",
			rng:      alloc.Range[int]{First: 10, Last: 14},
			static:   []int{11, 11, 13},
			pending:  3,
			expected: []int{10, 12, 14},
		},
		{
			name:    "empty-range",
			rng:     alloc.Range[int]{First: 5, Last: 4},
			pending: 1,
			err:     true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := alloc.Assign(leaf, test.rng, test.static, test.pending)
			if test.err {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	d := alloc.Domain{Device: "DC1-N9K-BORDER01", Class: alloc.ClassPortChannel}
	rng := alloc.Range[int]{First: 13, Last: 32}
	static := []int{15, 13, 20}

	first, err := alloc.Assign(d, rng, static, 6)
	require.NoError(t, err)
	second, err := alloc.Assign(d, rng, static, 6)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []int{14, 16, 17, 18, 19, 21}, first)
}

func TestAssignExclusive(t *testing.T) {
	d := alloc.Domain{Device: "DC1-N9K-LEAF02", Class: alloc.ClassDualHomed}
	static := []int{13, 17, 21}

	got, err := alloc.Assign(d, alloc.Range[int]{First: 13, Last: 32}, static, 17)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, v := range append(append([]int{}, static...), got...) {
		require.False(t, seen[v], "value %d handed out twice", v)
		seen[v] = true
	}
	require.Len(t, seen, 20)
}

func TestAssignCapacityError(t *testing.T) {
	d := alloc.Domain{Device: "DC1-N9K-LEAF01", Class: alloc.ClassLoopback}

	_, err := alloc.Assign(d, alloc.Range[int]{First: 11, Last: 12}, nil, 3)
	require.ErrorIs(t, err, util.ErrCapacity)

	var ce *util.CapacityError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "DC1-N9K-LEAF01", ce.Device)
	require.Equal(t, "loopback", ce.Class)
	require.Equal(t, 3, ce.Requested)
	require.Equal(t, 2, ce.Available)
}

func TestPoolFree(t *testing.T) {
	pool := alloc.NewPool(alloc.Range[uint8]{First: 250, Last: 255})
	pool.Reserve(251)
	pool.Reserve(254)
	pool.Reserve(9)
	require.Equal(t, []uint8{250, 252, 253, 255}, pool.Free())

	require.Empty(t, alloc.NewPool(alloc.Range[int]{First: 2, Last: 1}).Free())
}

func TestRange(t *testing.T) {
	r := alloc.Range[int]{First: 33, Last: 40}
	require.Equal(t, 8, r.Size())
	require.True(t, r.Contains(33))
	require.True(t, r.Contains(40))
	require.False(t, r.Contains(41))
	require.Equal(t, 0, alloc.Range[int]{First: 2, Last: 1}.Size())
}
