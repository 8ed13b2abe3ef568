package protocol

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// MaxDataLen is the maximum number of data bytes in a single frame.
const MaxDataLen = 0xff

// Frame errors.
var (
	ErrFrameFormat = errors.New("protocol: malformed frame")
	ErrFrameLength = errors.New("protocol: frame data too long")
)

// ChecksumError is returned for frames that fail checksum verification.
type ChecksumError struct {
	Want, Got byte
}

func (err *ChecksumError) Error() string {
	return fmt.Sprintf("protocol: frame checksum is %#02x, expected %#02x", err.Got, err.Want)
}

// MsgType identifies the message carried by a frame.
type MsgType uint8

// Frame is the low level unit transferred on the bus.
type Frame struct {
	Address Address
	Type    MsgType
	Data    []byte
}

func (f Frame) String() string {
	return fmt.Sprintf("frame type=%#02x address=%#04x data=[% X]", uint8(f.Type), uint16(f.Address), f.Data)
}

func (f Frame) checksum() byte {
	sum := byte(len(f.Data)) + byte(f.Address>>8) + byte(f.Address) + byte(f.Type)
	for _, b := range f.Data {
		sum += b
	}
	return -sum
}

// MarshalText encodes the frame, including the trailing CR LF.
func (f Frame) MarshalText() ([]byte, error) {
	if len(f.Data) > MaxDataLen {
		return nil, ErrFrameLength
	}

	raw := make([]byte, 0, 5+len(f.Data))
	raw = append(raw, byte(len(f.Data)), byte(f.Address>>8), byte(f.Address), byte(f.Type))
	raw = append(raw, f.Data...)
	raw = append(raw, f.checksum())

	out := make([]byte, 1+hex.EncodedLen(len(raw))+2)
	out[0] = ':'
	hex.Encode(out[1:], raw)
	copy(out[len(out)-2:], "\r\n")
	return bytes.ToUpper(out), nil
}

// WriteTo writes the encoded frame to w.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	b, err := f.MarshalText()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ParseFrame decodes a single frame. Surrounding whitespace, including the line ending, is ignored.
func ParseFrame(b []byte) (Frame, error) {
	b = bytes.TrimSpace(b)
	if len(b) < 11 || b[0] != ':' || len(b)%2 != 1 {
		return Frame{}, ErrFrameFormat
	}

	raw := make([]byte, hex.DecodedLen(len(b)-1))
	if _, err := hex.Decode(raw, b[1:]); err != nil {
		return Frame{}, ErrFrameFormat
	}
	if int(raw[0]) != len(raw)-5 {
		return Frame{}, ErrFrameFormat
	}

	f := Frame{
		Address: Address(raw[1])<<8 | Address(raw[2]),
		Type:    MsgType(raw[3]),
		Data:    raw[4 : len(raw)-1],
	}
	if want, got := f.checksum(), raw[len(raw)-1]; want != got {
		return Frame{}, &ChecksumError{Want: want, Got: got}
	}
	return f, nil
}

// ReadFrame reads the next frame from r, skipping any noise before the start code.
func ReadFrame(r *bufio.Reader) (Frame, error) {
	if _, err := r.ReadBytes(':'); err != nil {
		return Frame{}, err
	}
	line, err := r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Frame{}, err
	}
	return ParseFrame(append([]byte{':'}, line...))
}
