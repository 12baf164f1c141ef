package uartbridge

import (
	"bytes"
	"errors"
	"testing"
)

func TestTxFrame(t *testing.T) {
	tests := []struct {
		name     string
		addr     uint16
		wbuf     []byte
		rlen     int
		expected []byte
	}{
		{
			name:     "write only",
			addr:     0x70,
			wbuf:     []byte{0x00, 0x01, 0x02},
			rlen:     0,
			expected: []byte{'I', '2', 'C', 'B', OpTX, 0x70, 3, 0, 0x00, 0x01, 0x02},
		},
		{
			name:     "write then read",
			addr:     0x70,
			wbuf:     []byte{0x04},
			rlen:     16,
			expected: []byte{'I', '2', 'C', 'B', OpTX, 0x70, 1, 16, 0x04},
		},
		{
			name:     "bare read",
			addr:     0x21,
			wbuf:     nil,
			rlen:     2,
			expected: []byte{'I', '2', 'C', 'B', OpTX, 0x21, 0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := txFrame(tt.addr, tt.wbuf, tt.rlen)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(frame, tt.expected) {
				t.Errorf("frame = % x, expected % x", frame, tt.expected)
			}
		})
	}
}

func TestTxFrameTooLarge(t *testing.T) {
	if _, err := txFrame(0x70, make([]byte, maxDataLen+1), 0); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("oversize write should fail, found [%v]", err)
	}
	if _, err := txFrame(0x70, nil, maxDataLen+1); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("oversize read should fail, found [%v]", err)
	}
}

func TestInfoFrame(t *testing.T) {
	expected := []byte{'I', '2', 'C', 'B', OpINFO, 0, 0, 2}
	if actual := infoFrame(); !bytes.Equal(actual, expected) {
		t.Errorf("frame = % x, expected % x", actual, expected)
	}
}
