// file: internals/helpers/storage/media_json.go
package storage

import "encoding/json"

// Codec kecil untuk kolom JSON media. Payload korup didegradasi ke kosong
// (record lama tetap bisa diproses job relokasi tanpa meledak).

func DecodeImagePairs(b []byte) []ImagePair {
	if len(b) == 0 {
		return nil
	}
	var out []ImagePair
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func EncodeImagePairs(v []ImagePair) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func DecodeImagePair(b []byte) *ImagePair {
	if len(b) == 0 {
		return nil
	}
	var out ImagePair
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	if out.Original == "" && out.Compressed == "" {
		return nil
	}
	return &out
}

func EncodeImagePair(v ImagePair) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}

func DecodeFileRefs(b []byte) []FileRef {
	if len(b) == 0 {
		return nil
	}
	var out []FileRef
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func EncodeFileRefs(v []FileRef) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}
