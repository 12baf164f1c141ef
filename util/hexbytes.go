package util

import (
	"encoding/hex"
	"encoding/json"
)

// HexBytes is a byte slice that marshals as a hex string in JSON.
type HexBytes []byte

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *HexBytes) UnmarshalJSON(j []byte) (err error) {
	var s string
	err = json.Unmarshal(j, &s)
	if err != nil {
		return
	}
	*b, err = hex.DecodeString(s)
	return
}
