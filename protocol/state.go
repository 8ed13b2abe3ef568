package protocol

import "fmt"

// Address of a sign on the bus.
type Address uint16

func (a Address) String() string {
	return fmt.Sprintf("%#04x", uint16(a))
}

// State reported by a sign.
type State uint8

// Sign states.
const (
	Unconfigured       State = 0x0f
	ConfigInProgress   State = 0x0d
	ConfigReceived     State = 0x07
	ConfigFailed       State = 0x0c
	PixelsInProgress   State = 0x03
	PixelsReceived     State = 0x01
	PixelsFailed       State = 0x0b
	PageLoaded         State = 0x10
	PageLoadInProgress State = 0x13
	PageShown          State = 0x12
	PageShowInProgress State = 0x11
	ShowingPages       State = 0x00
	ReadyToReset       State = 0x08
)

var stateNames = map[State]string{
	Unconfigured:       "unconfigured",
	ConfigInProgress:   "config in progress",
	ConfigReceived:     "config received",
	ConfigFailed:       "config failed",
	PixelsInProgress:   "pixels in progress",
	PixelsReceived:     "pixels received",
	PixelsFailed:       "pixels failed",
	PageLoaded:         "page loaded",
	PageLoadInProgress: "page load in progress",
	PageShown:          "page shown",
	PageShowInProgress: "page show in progress",
	ShowingPages:       "showing pages",
	ReadyToReset:       "ready to reset",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%#02x)", uint8(s))
}

// Operation requested from a sign.
type Operation uint8

// Sign operations.
const (
	ReceiveConfig  Operation = 0xa1
	ReceivePixels  Operation = 0xa2
	StartReset     Operation = 0xa6
	FinishReset    Operation = 0xa7
	ShowLoadedPage Operation = 0xa9
	LoadNextPage   Operation = 0xaa
)

func (op Operation) String() string {
	switch op {
	case ReceiveConfig:
		return "receive config"
	case ReceivePixels:
		return "receive pixels"
	case StartReset:
		return "start reset"
	case FinishReset:
		return "finish reset"
	case ShowLoadedPage:
		return "show loaded page"
	case LoadNextPage:
		return "load next page"
	default:
		return fmt.Sprintf("operation(%#02x)", uint8(op))
	}
}
