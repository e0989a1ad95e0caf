package debugger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/go-delve/delve/service"
	"github.com/go-delve/delve/service/api"
	"github.com/go-delve/delve/service/rpc2"
	"github.com/go-delve/delve/service/rpccommon"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
)

// Client encapsulates the Delve debug client functionality
type Client struct {
	client    *rpc2.RPCClient
	server    *rpccommon.ServerImpl
	target    string
	tempDir   string
	lastState *api.DebuggerState

	mu      sync.Mutex
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	readers []io.Closer

	// marker names by breakpoint ID
	markers map[int]string
}

// NewClient creates a new Delve client wrapper
func NewClient() *Client {
	return &Client{markers: make(map[int]string)}
}

// IsConnected returns whether a debug session is active
func (c *Client) IsConnected() bool {
	return c.client != nil
}

// GetTarget returns the target program being debugged
func (c *Client) GetTarget() string {
	return c.target
}

// serve runs a Delve server for config and connects an RPC client to it.
func (c *Client) serve(config *service.Config) error {
	logger.Debug("Creating debug server")
	server := rpccommon.NewServer(config)
	if server == nil {
		return fmt.Errorf("failed to create debug server")
	}
	c.server = server

	serverReady := make(chan error, 1)
	go func() {
		logger.Debug("Running server")
		if err := server.Run(); err != nil {
			logger.Debug("Debug server error", "error", err)
			serverReady <- err
		}
		logger.Debug("Server run completed")
	}()

	addr := config.Listener.Addr().String()

	// Wait up to 3 seconds for server to be available
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for debug server to start")
		case err := <-serverReady:
			return fmt.Errorf("debug server failed to start: %w", err)
		default:
			client := rpc2.NewClient(addr)
			state, err := client.GetState()
			if err == nil && state != nil {
				c.client = client
				c.lastState = state
				return nil
			}
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// state returns the current debugger state, waiting briefly if the target is running.
func (c *Client) state() (*api.DebuggerState, error) {
	state, err := c.client.GetState()
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	if state.Running {
		logger.Debug("Program is running, waiting for it to stop")
		stopped, err := waitForStop(c, 2*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to wait for program to stop: %w", err)
		}
		state = stopped
	}
	return state, nil
}

// waitForStop polls the debugger until it reaches a stopped state or times out
func waitForStop(c *Client, timeout time.Duration) (*api.DebuggerState, error) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		state, err := c.client.GetState()
		if err != nil {
			return nil, fmt.Errorf("failed to get debugger state: %w", err)
		}
		if !state.Running {
			return state, nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return nil, fmt.Errorf("timeout waiting for program to stop")
}

// Helper function to get an available port
func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
