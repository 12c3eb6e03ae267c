package vectorstore

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashingEmbedder is a deterministic, model-free embedder: each token is
// hashed into one of the vector's buckets with a hash-derived sign, and the
// result is L2-normalized. Similar texts share tokens and therefore
// buckets, which is enough for the store's ranking to be meaningful in
// tests and local setups. Deployments wanting semantic quality plug in
// their own Embedder.
type HashingEmbedder struct {
	dims int
}

func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = 256
	}
	return &HashingEmbedder{dims: dims}
}

func (e *HashingEmbedder) Dimensions() int {
	return e.dims
}

func (e *HashingEmbedder) Embed(text string) []float32 {
	vec := make([]float32, e.dims)
	for _, token := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()
		bucket := int(sum % uint64(e.dims))
		sign := float32(1)
		if (sum>>63)&1 == 1 {
			sign = -1
		}
		vec[bucket] += sign
	}
	normalize(vec)
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
