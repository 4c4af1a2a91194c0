package conn

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()
	defer srv.Close()

	payloads := [][]byte{
		[]byte("hello"),
		{},
		make([]byte, 64*1024),
	}

	errCh := make(chan error, 1)
	go func() {
		for i, payload := range payloads {
			if err := WriteFrame(client, uint64(i+1), payload); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()

	var buf []byte
	for i, payload := range payloads {
		requestID, data, err := ReadFrame(srv, buf)
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), requestID)
		assert.Equal(t, len(payload), len(data))
		buf = data
	}

	require.NoError(t, <-errCh)
}

func TestReadFrameTruncated(t *testing.T) {
	client, srv := net.Pipe()
	defer srv.Close()

	go func() {
		// half a header, then hang up
		client.Write([]byte{0, 0, 0})
		client.Close()
	}()

	_, _, err := ReadFrame(srv, nil)
	assert.Error(t, err)
}
