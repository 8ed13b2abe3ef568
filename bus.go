package flipdot

import (
	"strings"

	"github.com/BeatGlow/flipdot/sign"
	"github.com/BeatGlow/flipdot/virtual"
)

// VirtualPort is the port name that selects the virtual bus, matched ignoring case.
const VirtualPort = "virtual"

// BusKind is the kind of bus a display talks to.
type BusKind uint8

// Bus kinds.
const (
	KindVirtual BusKind = iota
	KindSerial
)

func (k BusKind) String() string {
	if k == KindSerial {
		return "serial"
	}
	return "virtual"
}

// BusType describes the bus to open.
type BusType struct {
	Kind BusKind

	// Port is the serial port device, unused for the virtual bus.
	Port string
}

// Virtual selects a simulated bus.
var Virtual = BusType{Kind: KindVirtual}

// Serial selects the serial bus on port.
func Serial(port string) BusType {
	return BusType{Kind: KindSerial, Port: port}
}

// ParseBusType returns [Virtual] for "virtual" in any case, or the serial bus on port.
func ParseBusType(port string) BusType {
	if strings.EqualFold(port, VirtualPort) {
		return Virtual
	}
	return Serial(port)
}

func (t BusType) String() string {
	if t.Kind == KindSerial {
		return t.Port
	}
	return VirtualPort
}

// OpenBus opens the bus described by t. The virtual bus has a single manual page flip sign
// at address; config may be nil to use [DefaultSerialConfig].
func OpenBus(t BusType, address sign.Address, config *SerialConfig) (*sign.SharedBus, error) {
	if t.Kind == KindSerial {
		bus, err := OpenSerial(t.Port, config)
		if err != nil {
			return nil, err
		}
		return sign.Share(bus), nil
	}

	bus := virtual.NewBus(virtual.NewSign(address, sign.Manual))
	if config != nil && config.Logger != nil {
		bus.SetLogger(config.Logger)
	}
	return sign.Share(bus), nil
}

// Open a Display for the sign at address on the bus described by t, the serial bus uses
// [DefaultSerialConfig]. No Display is returned if the bus can not be opened. Closing the
// Display closes the bus.
func Open(t BusType, address sign.Address, signType sign.SignType) (*Display, error) {
	return OpenWithConfig(t, address, signType, nil)
}

// OpenWithConfig is like [Open] with a serial bus configuration.
func OpenWithConfig(t BusType, address sign.Address, signType sign.SignType, config *SerialConfig) (*Display, error) {
	bus, err := OpenBus(t, address, config)
	if err != nil {
		return nil, err
	}
	d := New(bus, address, signType)
	d.owned = bus
	return d, nil
}
