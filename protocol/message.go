package protocol

import (
	"fmt"
)

// ChunkSize is the number of data bytes sent per SendData message.
const ChunkSize = 16

// Message types.
const (
	TypeSendData         MsgType = 0x00
	TypeDataChunksSent   MsgType = 0x01
	TypeHello            MsgType = 0x02
	TypeQueryState       MsgType = 0x03
	TypeReportState      MsgType = 0x04
	TypeRequestOperation MsgType = 0x05
	TypeAckOperation     MsgType = 0x06
	TypePixelsComplete   MsgType = 0x07
	TypeGoodbye          MsgType = 0x08
)

// Message is a decoded bus message.
type Message interface {
	fmt.Stringer

	// Frame encodes the message.
	Frame() Frame
}

// SendData carries a chunk of config or pixel data. Offset is the position of the chunk
// within the whole transfer and is sent in the address field.
type SendData struct {
	Offset uint16
	Data   []byte
}

func (m SendData) Frame() Frame {
	return Frame{Address: Address(m.Offset), Type: TypeSendData, Data: m.Data}
}

func (m SendData) String() string {
	return fmt.Sprintf("send data offset=%#04x len=%d", m.Offset, len(m.Data))
}

// DataChunksSent marks the end of a data transfer.
type DataChunksSent struct {
	Chunks uint8
}

func (m DataChunksSent) Frame() Frame {
	return Frame{Type: TypeDataChunksSent, Data: []byte{m.Chunks}}
}

func (m DataChunksSent) String() string {
	return fmt.Sprintf("data chunks sent count=%d", m.Chunks)
}

// Hello starts a session with a sign.
type Hello struct {
	Address Address
}

func (m Hello) Frame() Frame {
	return Frame{Address: m.Address, Type: TypeHello}
}

func (m Hello) String() string {
	return fmt.Sprintf("hello %s", m.Address)
}

// QueryState asks a sign for its state.
type QueryState struct {
	Address Address
}

func (m QueryState) Frame() Frame {
	return Frame{Address: m.Address, Type: TypeQueryState}
}

func (m QueryState) String() string {
	return fmt.Sprintf("query state %s", m.Address)
}

// ReportState is the answer to Hello and QueryState.
type ReportState struct {
	Address Address
	State   State
}

func (m ReportState) Frame() Frame {
	return Frame{Address: m.Address, Type: TypeReportState, Data: []byte{byte(m.State)}}
}

func (m ReportState) String() string {
	return fmt.Sprintf("report state %s: %s", m.Address, m.State)
}

// RequestOperation asks a sign to perform an operation.
type RequestOperation struct {
	Address   Address
	Operation Operation
}

func (m RequestOperation) Frame() Frame {
	return Frame{Address: m.Address, Type: TypeRequestOperation, Data: []byte{byte(m.Operation)}}
}

func (m RequestOperation) String() string {
	return fmt.Sprintf("request operation %s: %s", m.Address, m.Operation)
}

// AckOperation is the answer to RequestOperation.
type AckOperation struct {
	Address   Address
	Operation Operation
}

func (m AckOperation) Frame() Frame {
	return Frame{Address: m.Address, Type: TypeAckOperation, Data: []byte{byte(m.Operation)}}
}

func (m AckOperation) String() string {
	return fmt.Sprintf("ack operation %s: %s", m.Address, m.Operation)
}

// PixelsComplete tells a sign all pixel data has been sent.
type PixelsComplete struct {
	Address Address
}

func (m PixelsComplete) Frame() Frame {
	return Frame{Address: m.Address, Type: TypePixelsComplete}
}

func (m PixelsComplete) String() string {
	return fmt.Sprintf("pixels complete %s", m.Address)
}

// Goodbye ends a session with a sign.
type Goodbye struct {
	Address Address
}

func (m Goodbye) Frame() Frame {
	return Frame{Address: m.Address, Type: TypeGoodbye}
}

func (m Goodbye) String() string {
	return fmt.Sprintf("goodbye %s", m.Address)
}

// Unknown is a well formed frame that does not decode to a known message.
type Unknown struct {
	Raw Frame
}

func (m Unknown) Frame() Frame {
	return m.Raw
}

func (m Unknown) String() string {
	return "unknown " + m.Raw.String()
}

// ExpectsResponse reports whether the receiving sign answers msg.
func ExpectsResponse(msg Message) bool {
	switch msg.(type) {
	case Hello, QueryState, RequestOperation:
		return true
	default:
		return false
	}
}

// Parse decodes a frame into a message.
func Parse(f Frame) Message {
	switch {
	case f.Type == TypeSendData:
		return SendData{Offset: uint16(f.Address), Data: f.Data}
	case f.Type == TypeDataChunksSent && len(f.Data) == 1:
		return DataChunksSent{Chunks: f.Data[0]}
	case f.Type == TypeHello && len(f.Data) == 0:
		return Hello{Address: f.Address}
	case f.Type == TypeQueryState && len(f.Data) == 0:
		return QueryState{Address: f.Address}
	case f.Type == TypeReportState && len(f.Data) == 1:
		return ReportState{Address: f.Address, State: State(f.Data[0])}
	case f.Type == TypeRequestOperation && len(f.Data) == 1:
		return RequestOperation{Address: f.Address, Operation: Operation(f.Data[0])}
	case f.Type == TypeAckOperation && len(f.Data) == 1:
		return AckOperation{Address: f.Address, Operation: Operation(f.Data[0])}
	case f.Type == TypePixelsComplete && len(f.Data) == 0:
		return PixelsComplete{Address: f.Address}
	case f.Type == TypeGoodbye && len(f.Data) == 0:
		return Goodbye{Address: f.Address}
	default:
		return Unknown{Raw: f}
	}
}

// Chunk splits data into SendData messages of at most ChunkSize bytes.
func Chunk(data []byte) []SendData {
	var chunks []SendData
	for off := 0; off < len(data); off += ChunkSize {
		end := min(off+ChunkSize, len(data))
		chunks = append(chunks, SendData{Offset: uint16(off), Data: data[off:end]})
	}
	return chunks
}
