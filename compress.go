// Compressed containers.
//
// Containers may be stored zstd-compressed, either named with a trailing
// .zst or detected by the zstd frame magic. Decoding needs random access,
// so compressed inputs are decompressed whole before decoding.
package gck

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Shared decoder, documented as safe for concurrent use. Allocated once
// because construction is expensive.
var zstdDecoder, _ = zstd.NewReader(nil)

// compressed reports whether data starts with a zstd frame.
func compressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

func decompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return out, nil
}
