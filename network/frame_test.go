package network

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte(`{"hello":"world"}`)))

	payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, `{"hello":"world"}`, string(payload))
}

func TestFrameWireFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("abc")))

	raw := buf.Bytes()
	require.Len(t, raw, 7)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(raw[:4]))
	assert.Equal(t, "abc", string(raw[4:]))
}

func TestEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, nil))

	payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestOversizedFrameRejected(t *testing.T) {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], MaxMessageSize+1)

	_, err := ReadFrame(bytes.NewReader(header[:]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")

	err = WriteFrame(io.Discard, make([]byte, MaxMessageSize+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestCleanEOFPassesThrough(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestTruncatedFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("full payload")))
	truncated := buf.Bytes()[:buf.Len()-3]

	_, err := ReadFrame(bytes.NewReader(truncated))
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestJSONRoundtrip(t *testing.T) {
	type msg struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, msg{Type: "activity", Count: 3}))

	var got msg
	require.NoError(t, ReadJSON(&buf, &got))
	assert.Equal(t, msg{Type: "activity", Count: 3}, got)
}

func TestMultipleFramesInSequence(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("one")))
	require.NoError(t, WriteFrame(&buf, []byte("two")))

	first, err := ReadFrame(&buf)
	require.NoError(t, err)
	second, err := ReadFrame(&buf)
	require.NoError(t, err)

	assert.Equal(t, "one", string(first))
	assert.Equal(t, "two", string(second))
}
