package vectorstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

//nolint:gochecknoglobals // fixed namespace for point identifiers
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rios0rios0/repominer/points"))

// pointID derives a stable identifier from the repository, the token position
// and the token itself, so re-saving the same pass yields the same ids.
func pointID(repository string, index int, token string) string {
	key := repository + "\x00" + strconv.Itoa(index) + "\x00" + token
	return uuid.NewSHA1(pointNamespace, []byte(key)).String()
}

// encodeDocument renders the repository document and compresses it.
func encodeDocument(repo *entities.RepositoryInfo) ([]byte, error) {
	raw, err := json.Marshal(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	defer func() { _ = encoder.Close() }()
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil //nolint:mnd // initial capacity guess
}

func decodeDocument(compressed []byte) (*entities.RepositoryInfo, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress document: %w", err)
	}
	var repo entities.RepositoryInfo
	if err = json.Unmarshal(raw, &repo); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &repo, nil
}

// encodeVector packs v as little-endian float32 values.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v)) //nolint:mnd // float32 width
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("vector blob of %d bytes is not a float32 array", len(buf))
	}
	v := make([]float32, len(buf)/4) //nolint:mnd // float32 width
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v, nil
}
