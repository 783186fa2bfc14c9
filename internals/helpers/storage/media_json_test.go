package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImagePairsRoundTrip(t *testing.T) {
	in := []ImagePair{
		{Original: "/upload/a.png", Compressed: "/upload/a-compressed.webp"},
		{Original: "/upload/b.png", Compressed: "/upload/b.png"},
	}
	out := DecodeImagePairs(EncodeImagePairs(in))
	assert.Equal(t, in, out)
}

func TestDecodeImagePairsCorruptPayload(t *testing.T) {
	assert.Nil(t, DecodeImagePairs([]byte("{bukan json")))
	assert.Nil(t, DecodeImagePairs(nil))
}

func TestDecodeImagePairEmpty(t *testing.T) {
	assert.Nil(t, DecodeImagePair(nil))
	assert.Nil(t, DecodeImagePair([]byte("null")))
}

func TestFileRefsRoundTrip(t *testing.T) {
	in := []FileRef{{FilePath: "/upload/x.pdf", FileName: "laporan x.pdf"}}
	out := DecodeFileRefs(EncodeFileRefs(in))
	assert.Equal(t, in, out)
}
