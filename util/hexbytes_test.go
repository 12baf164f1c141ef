package util

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestHexBytes(t *testing.T) {
	j, err := json.Marshal(HexBytes{0xDE, 0xAD, 0xBE, 0xEF})
	if err != nil {
		t.Fatal(err)
	}
	if actual, expected := string(j), `"deadbeef"`; actual != expected {
		t.Errorf("marshal = %s, expected %s", actual, expected)
	}

	var b HexBytes
	if err = json.Unmarshal([]byte(`"a55a"`), &b); err != nil {
		t.Fatal(err)
	}
	if actual, expected := []byte(b), []byte{0xA5, 0x5A}; !bytes.Equal(actual, expected) {
		t.Errorf("unmarshal = %v, expected %v", actual, expected)
	}

	if err = json.Unmarshal([]byte(`"zz"`), &b); err == nil {
		t.Error("bad hex should fail to unmarshal")
	}
}
