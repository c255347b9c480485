package table

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/gorgo/lr/sparse"
)

func appendInt32(buf []byte, v int32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(v))
	return append(buf, tmp[:]...)
}

func readInt32(data []byte) int32 {
	return int32(binary.BigEndian.Uint32(data[:4]))
}

// appendMatrix serializes an m x n IntMatrix densely: row-major int32
// cells. The underlying storage is sparse (COO), but a generated grammar's
// tables are small enough that a dense on-disk encoding keeps the format
// simple; sparsity is purely an in-memory concern.
func appendMatrix(buf []byte, m *sparse.IntMatrix, rows, cols int) []byte {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			buf = appendInt32(buf, m.Value(i, j))
		}
	}
	return buf
}

func readMatrix(data []byte, rows, cols int) (*sparse.IntMatrix, []byte, error) {
	need := rows * cols * 4
	if len(data) < need {
		return nil, nil, fmt.Errorf("table: truncated matrix data: need %d bytes, have %d", need, len(data))
	}

	m := sparse.NewIntMatrix(rows, cols, nullValue)
	off := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := readInt32(data[off:])
			if v != nullValue {
				m.Set(i, j, v)
			}
			off += 4
		}
	}

	return m, data[need:], nil
}
