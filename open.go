// Path-based entry point.
package gck

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Open reads and decodes the container at path. The subtype comes from
// the extension (see FileTypeFromPath). Compressed files are decompressed
// first, and the File's Digest is taken over the container bytes.
func Open(path string, opts DecodeOptions) (*File, error) {
	typ, err := FileTypeFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if compressed(data) {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	alg := opts.Digest
	if alg == 0 {
		alg = AlgXXHash3
	}
	sum, err := digest(data, alg)
	if err != nil {
		return nil, err
	}
	opts.Logger = opts.logger().With(zap.String("file", path), zap.String("digest", sum))

	f, err := Decode(bytes.NewReader(data), int64(len(data)), typ, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	f.Digest = sum
	return f, nil
}
