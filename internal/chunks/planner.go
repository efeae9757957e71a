// Package chunks splits a byte length into the ordered, fixed-size ranges
// that are uploaded one request at a time.
package chunks

import "fmt"

// DefaultLength is the chunk length expected by the upload endpoint (50 MiB).
const DefaultLength int64 = 52428800

// Chunk is a contiguous byte range of a file.
type Chunk struct {
	Index  int64
	Offset int64
	Size   int64
}

// IsLast reports whether c is the final chunk of a plan with n entries.
func (c Chunk) IsLast(n int) bool {
	return c.Index == int64(n-1)
}

// Plan returns ceil(totalSize/chunkLength) chunks in index order. The sizes
// always sum to totalSize; only the last chunk may be shorter than
// chunkLength. An empty input produces a single zero-size chunk so the
// upload still carries a final marker.
//
// Plan panics if chunkLength is not positive or totalSize is negative.
func Plan(totalSize, chunkLength int64) []Chunk {
	if chunkLength <= 0 {
		panic(fmt.Sprintf("chunks: non-positive chunk length %d", chunkLength))
	}
	if totalSize < 0 {
		panic(fmt.Sprintf("chunks: negative total size %d", totalSize))
	}

	if totalSize == 0 {
		return []Chunk{{Index: 0, Offset: 0, Size: 0}}
	}

	n := totalSize / chunkLength
	if totalSize%chunkLength != 0 {
		n++
	}
	plan := make([]Chunk, 0, n)
	for i := int64(0); i < n; i++ {
		offset := i * chunkLength
		size := chunkLength
		if chunkLength > totalSize-offset {
			size = totalSize - offset
		}
		plan = append(plan, Chunk{Index: i, Offset: offset, Size: size})
	}
	return plan
}
