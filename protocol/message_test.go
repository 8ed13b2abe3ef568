package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, msg := range []Message{
		SendData{Offset: 32, Data: []byte{1, 2, 3}},
		DataChunksSent{Chunks: 3},
		Hello{Address: 1},
		QueryState{Address: 2},
		ReportState{Address: 3, State: ConfigReceived},
		RequestOperation{Address: 4, Operation: ReceivePixels},
		AckOperation{Address: 5, Operation: ShowLoadedPage},
		PixelsComplete{Address: 6},
		Goodbye{Address: 7},
	} {
		assert.Equal(t, msg, Parse(msg.Frame()), msg.String())
	}

	f := Frame{Address: 1, Type: 0x7f, Data: []byte{9}}
	assert.Equal(t, Unknown{Raw: f}, Parse(f))

	// Known type with an unexpected payload.
	f = Frame{Address: 1, Type: TypeQueryState, Data: []byte{9}}
	assert.IsType(t, Unknown{}, Parse(f))
}

func TestExpectsResponse(t *testing.T) {
	assert.True(t, ExpectsResponse(Hello{}))
	assert.True(t, ExpectsResponse(QueryState{}))
	assert.True(t, ExpectsResponse(RequestOperation{}))
	assert.False(t, ExpectsResponse(SendData{}))
	assert.False(t, ExpectsResponse(DataChunksSent{}))
	assert.False(t, ExpectsResponse(PixelsComplete{}))
	assert.False(t, ExpectsResponse(Goodbye{}))
}

func TestChunk(t *testing.T) {
	data := make([]byte, 2*ChunkSize+3)
	chunks := Chunk(data)
	if assert.Len(t, chunks, 3) {
		assert.Equal(t, uint16(0), chunks[0].Offset)
		assert.Equal(t, uint16(ChunkSize), chunks[1].Offset)
		assert.Equal(t, uint16(2*ChunkSize), chunks[2].Offset)
		assert.Len(t, chunks[2].Data, 3)
	}
	assert.Empty(t, Chunk(nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "page loaded", PageLoaded.String())
	assert.Equal(t, "state(0x55)", State(0x55).String())
	assert.Equal(t, "show loaded page", ShowLoadedPage.String())
	assert.Equal(t, "operation(0x01)", Operation(1).String())
}
