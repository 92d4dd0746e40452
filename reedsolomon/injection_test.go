package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// errorInjectionCase describes one (field, data size, correction capacity)
// combination to exercise: encode, corrupt up to t codewords, and check the
// decoder recovers the original data using no more than 2t EC codewords.
type errorInjectionCase struct {
	name     string
	field    *GenericGF
	dataSize int
	t        int // correctable error count; ecSize = 2*t
}

func TestErrorInjectionGrid(t *testing.T) {
	cases := []errorInjectionCase{
		{"QR/t1", QRCodeField256, 8, 1},
		{"QR/t2", QRCodeField256, 8, 2},
		{"QR/t3", QRCodeField256, 10, 3},
		{"QR/t5", QRCodeField256, 12, 5},
		{"DataMatrix/t1", DataMatrixField256, 8, 1},
		{"DataMatrix/t3", DataMatrixField256, 10, 3},
		{"AztecParam/t1", AztecParam, 2, 1},
		{"AztecData6/t2", AztecData6, 6, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ecSize := 2 * tc.t
			original := make([]int, tc.dataSize+ecSize)
			maxSymbol := tc.field.Size() - 1
			for i := 0; i < tc.dataSize; i++ {
				original[i] = (i*31 + 7) % maxSymbol
				if original[i] == 0 {
					original[i] = 1
				}
			}

			enc := NewEncoder(tc.field)
			enc.Encode(original, ecSize)

			received := make([]int, len(original))
			copy(received, original)
			for e := 0; e < tc.t; e++ {
				pos := (e * 3) % len(received)
				received[pos] = (received[pos] + 1 + e) % tc.field.Size()
			}

			dec := NewDecoder(tc.field)
			corrected, err := dec.Decode(received, ecSize)
			require.NoError(t, err, "decode with %d injected errors (t=%d)", tc.t, tc.t)
			require.LessOrEqual(t, corrected, tc.t)
			require.Equal(t, original, received, "corrected codewords must match the original")
		})
	}
}

// TestErrorInjectionExceedsCapacity checks that injecting more errors than a
// field/ecSize pair can correct is reported as a checksum failure rather
// than silently returning wrong data.
func TestErrorInjectionExceedsCapacity(t *testing.T) {
	field := QRCodeField256
	ecSize := 4 // corrects up to 2 errors
	dataSize := 6
	original := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		original[i] = i + 1
	}

	enc := NewEncoder(field)
	enc.Encode(original, ecSize)

	received := make([]int, len(original))
	copy(received, original)
	received[0] = (received[0] + 50) % field.Size()
	received[2] = (received[2] + 90) % field.Size()
	received[4] = (received[4] + 130) % field.Size()

	dec := NewDecoder(field)
	_, err := dec.Decode(received, ecSize)
	require.Error(t, err)
}
