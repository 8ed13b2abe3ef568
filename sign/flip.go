package sign

// PageFlipStyle describes how a sign activates a freshly sent page.
type PageFlipStyle uint8

const (
	// Manual signs load the page and wait for an explicit show command.
	Manual PageFlipStyle = iota

	// Automatic signs show the page as soon as it has been received.
	Automatic
)

func (s PageFlipStyle) String() string {
	if s == Automatic {
		return "automatic"
	}
	return "manual"
}
