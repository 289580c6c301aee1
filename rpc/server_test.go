package rpc

import (
	"testing"

	"github.com/powerman/rpc-codec/jsonrpc2"
	"github.com/stretchr/testify/assert"
)

type EchoArgs struct {
	Message string
}

type EchoService struct{}

func (s *EchoService) Say(args EchoArgs, reply *string) error {
	*reply = args.Message
	return nil
}

func (s *EchoService) Ping(noop interface{}, reply *bool) error {
	*reply = true
	return nil
}

func TestServerRoundTrip(t *testing.T) {
	srv, err := NewServer([]API{
		{Namespace: "echo", Version: "1.0", Service: &EchoService{}, Public: true},
	})
	assert.NoError(t, err)

	assert.NoError(t, srv.Start("127.0.0.1:0"))
	defer srv.Stop()

	client := jsonrpc2.NewHTTPClient("http://" + srv.Addr())
	defer client.Close()

	var reply string
	assert.NoError(t, client.Call("echo.Say", EchoArgs{Message: "hello"}, &reply))
	assert.Equal(t, "hello", reply)

	var ok bool
	assert.NoError(t, client.Call("echo.Ping", nil, &ok))
	assert.True(t, ok)

	// unknown methods come back as errors, not dropped connections
	err = client.Call("echo.Missing", nil, &reply)
	assert.Error(t, err)
}

func TestServerRejectsBadService(t *testing.T) {
	// a service with no exported rpc-shaped methods cannot register
	_, err := NewServer([]API{
		{Namespace: "bad", Version: "1.0", Service: struct{}{}, Public: true},
	})
	assert.Error(t, err)
}

func TestServerStopIdempotent(t *testing.T) {
	srv, err := NewServer([]API{
		{Namespace: "echo", Version: "1.0", Service: &EchoService{}, Public: true},
	})
	assert.NoError(t, err)

	assert.NoError(t, srv.Start("127.0.0.1:0"))
	assert.NoError(t, srv.Stop())
	assert.NoError(t, srv.Stop())
}
