package sign

import (
	"fmt"
	"image"
	"strings"
)

// SignType is a sign model with fixed pixel geometry.
type SignType uint8

// Supported sign types.
const (
	Max3000Side90x7 SignType = iota
	Max3000Front98x16
	Max3000Front112x16
	Max3000Rear30x10
	Max3000Dash30x10
	HorizonFront160x16
	HorizonFront140x16
	HorizonSide90x7
	HorizonDash40x12
	HorizonRear48x16
)

// Sign families, sent as the first config byte.
const (
	familyMax3000 = 0x04
	familyHorizon = 0x08
)

const configLen = 16

type signTypeInfo struct {
	name   string
	family byte
	code   byte
	width  int
	height int
}

var signTypes = [...]signTypeInfo{
	Max3000Side90x7:    {"max3000-side-90x7", familyMax3000, 0x20, 90, 7},
	Max3000Front98x16:  {"max3000-front-98x16", familyMax3000, 0x21, 98, 16},
	Max3000Front112x16: {"max3000-front-112x16", familyMax3000, 0x22, 112, 16},
	Max3000Rear30x10:   {"max3000-rear-30x10", familyMax3000, 0x23, 30, 10},
	Max3000Dash30x10:   {"max3000-dash-30x10", familyMax3000, 0x24, 30, 10},
	HorizonFront160x16: {"horizon-front-160x16", familyHorizon, 0x10, 160, 16},
	HorizonFront140x16: {"horizon-front-140x16", familyHorizon, 0x11, 140, 16},
	HorizonSide90x7:    {"horizon-side-90x7", familyHorizon, 0x12, 90, 7},
	HorizonDash40x12:   {"horizon-dash-40x12", familyHorizon, 0x13, 40, 12},
	HorizonRear48x16:   {"horizon-rear-48x16", familyHorizon, 0x14, 48, 16},
}

// SignTypes returns all supported sign types.
func SignTypes() []SignType {
	types := make([]SignType, len(signTypes))
	for i := range signTypes {
		types[i] = SignType(i)
	}
	return types
}

func (t SignType) info() signTypeInfo {
	if int(t) < len(signTypes) {
		return signTypes[t]
	}
	return signTypeInfo{}
}

// Width in pixels.
func (t SignType) Width() int { return t.info().width }

// Height in pixels.
func (t SignType) Height() int { return t.info().height }

// Size in pixels.
func (t SignType) Size() image.Point {
	return image.Pt(t.Width(), t.Height())
}

func (t SignType) String() string {
	if name := t.info().name; name != "" {
		return name
	}
	return fmt.Sprintf("sign-type(%d)", uint8(t))
}

// ConfigData returns the configuration block sent to a sign of this type.
func (t SignType) ConfigData() []byte {
	info := t.info()
	data := make([]byte, configLen)
	data[0] = info.family
	data[1] = info.code
	data[4] = byte(info.width)
	data[5] = byte(info.height)
	return data
}

// ParseSignType resolves a sign type by name, ignoring case.
func ParseSignType(name string) (SignType, error) {
	for i, info := range signTypes {
		if strings.EqualFold(info.name, name) {
			return SignType(i), nil
		}
	}
	return 0, fmt.Errorf("sign: unknown sign type %q", name)
}

// SignTypeFromConfig determines the sign type described by a configuration block.
func SignTypeFromConfig(data []byte) (SignType, error) {
	if len(data) != configLen {
		return 0, fmt.Errorf("sign: config block is %d bytes, expected %d", len(data), configLen)
	}
	for i, info := range signTypes {
		if data[0] == info.family && data[1] == info.code {
			return SignType(i), nil
		}
	}
	return 0, fmt.Errorf("sign: unknown sign type family %#02x code %#02x", data[0], data[1])
}
