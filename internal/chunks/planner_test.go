package chunks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Examples(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		length int64
		want   []Chunk
	}{
		{
			name:   "remainder chunk",
			total:  100,
			length: 40,
			want:   []Chunk{{0, 0, 40}, {1, 40, 40}, {2, 80, 20}},
		},
		{
			name:   "exact fit",
			total:  40,
			length: 40,
			want:   []Chunk{{0, 0, 40}},
		},
		{
			name:   "empty file",
			total:  0,
			length: 40,
			want:   []Chunk{{0, 0, 0}},
		},
		{
			name:   "smaller than one chunk",
			total:  7,
			length: DefaultLength,
			want:   []Chunk{{0, 0, 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.total, tt.length)
			require.Equal(t, tt.want, got)

			for i, c := range got {
				assert.Equal(t, i == len(got)-1, c.IsLast(len(got)), "chunk %d", i)
			}
		})
	}
}

func TestPlan_Properties(t *testing.T) {
	lengths := []int64{1, 3, 40, 1024}
	for _, length := range lengths {
		for total := int64(0); total <= 2500; total += 37 {
			plan := Plan(total, length)

			wantN := (total + length - 1) / length
			if total == 0 {
				wantN = 1
			}
			require.Len(t, plan, int(wantN), "total=%d length=%d", total, length)

			var sum int64
			finals := 0
			for i, c := range plan {
				require.Equal(t, int64(i), c.Index)
				require.Equal(t, int64(i)*length, c.Offset)
				require.LessOrEqual(t, c.Size, length)
				sum += c.Size
				if c.IsLast(len(plan)) {
					finals++
				}
			}
			require.Equal(t, total, sum, "total=%d length=%d", total, length)
			require.Equal(t, 1, finals)
			last := plan[len(plan)-1]
			require.Equal(t, total, last.Offset+last.Size)
		}
	}
}

func TestPlan_LargeValues(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		length int64
		want   []Chunk
	}{
		{
			name:   "huge chunk length",
			total:  10,
			length: math.MaxInt64,
			want:   []Chunk{{0, 0, 10}},
		},
		{
			name:   "max size in one chunk",
			total:  math.MaxInt64,
			length: math.MaxInt64,
			want:   []Chunk{{0, 0, math.MaxInt64}},
		},
		{
			name:   "max size in halves",
			total:  math.MaxInt64,
			length: math.MaxInt64 / 2,
			want: []Chunk{
				{0, 0, math.MaxInt64 / 2},
				{1, math.MaxInt64 / 2, math.MaxInt64 / 2},
				{2, math.MaxInt64 - 1, 1},
			},
		},
		{
			name:   "max size exact split",
			total:  math.MaxInt64 - 1,
			length: math.MaxInt64 / 2,
			want: []Chunk{
				{0, 0, math.MaxInt64 / 2},
				{1, math.MaxInt64 / 2, math.MaxInt64 / 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.total, tt.length)
			require.Equal(t, tt.want, got)
			assert.True(t, got[len(got)-1].IsLast(len(got)))
		})
	}
}

func TestPlan_PanicsOnInvalidInput(t *testing.T) {
	require.Panics(t, func() { Plan(10, 0) })
	require.Panics(t, func() { Plan(10, -1) })
	require.Panics(t, func() { Plan(-1, 10) })
}
