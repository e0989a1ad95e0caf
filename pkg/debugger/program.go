package debugger

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-delve/delve/pkg/logflags"
	"github.com/go-delve/delve/pkg/proc"
	"github.com/go-delve/delve/service"
	"github.com/go-delve/delve/service/debugger"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
	"github.com/sunfmin/go-debug-worksheets/pkg/types"
)

// LaunchProgram starts a new program with debugging enabled
func (c *Client) LaunchProgram(program string, args []string) (types.LaunchResponse, error) {
	if c.client != nil {
		return types.LaunchResponse{}, fmt.Errorf("debug session already active")
	}

	logger.Debug("Starting LaunchProgram", "program", program)

	absPath, err := filepath.Abs(program)
	if err != nil {
		return types.LaunchResponse{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return types.LaunchResponse{}, fmt.Errorf("program file not found: %s", absPath)
	}

	port, err := getFreePort()
	if err != nil {
		return types.LaunchResponse{}, fmt.Errorf("failed to find available port: %w", err)
	}

	// Keep Delve's own logging quiet
	logflags.Setup(false, "", "")

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return types.LaunchResponse{}, fmt.Errorf("couldn't start listener: %w", err)
	}

	stdoutReader, stdoutRedirect, err := proc.Redirector()
	if err != nil {
		listener.Close()
		return types.LaunchResponse{}, fmt.Errorf("failed to create stdout redirector: %w", err)
	}
	stderrReader, stderrRedirect, err := proc.Redirector()
	if err != nil {
		listener.Close()
		stdoutReader.Close()
		stdoutRedirect.File.Close()
		return types.LaunchResponse{}, fmt.Errorf("failed to create stderr redirector: %w", err)
	}

	config := &service.Config{
		Listener:    listener,
		APIVersion:  2,
		AcceptMulti: true,
		ProcessArgs: append([]string{absPath}, args...),
		Debugger: debugger.Config{
			WorkingDir:     "",
			Backend:        "default",
			CheckGoVersion: true,
			DisableASLR:    true,
			Stdout:         stdoutRedirect,
			Stderr:         stderrRedirect,
		},
	}

	c.readers = append(c.readers, stdoutReader, stderrReader)
	go c.captureOutput(stdoutReader, "stdout")
	go c.captureOutput(stderrReader, "stderr")

	if err := c.serve(config); err != nil {
		c.closeReaders()
		return types.LaunchResponse{}, err
	}
	c.target = absPath
	logger.Debug("Successfully launched program", "program", absPath)

	return createLaunchResponse(c.lastState, absPath, args), nil
}

// BuildAndLaunch compiles the Go package pkg inside dir with optimizations
// disabled and launches the result under the debugger.
func (c *Client) BuildAndLaunch(dir, pkg string, args []string) (types.LaunchResponse, error) {
	if c.client != nil {
		return types.LaunchResponse{}, fmt.Errorf("debug session already active")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return types.LaunchResponse{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return types.LaunchResponse{}, fmt.Errorf("source directory not found: %s", absDir)
	}

	tempDir, err := os.MkdirTemp("", "worksheet-debug-*")
	if err != nil {
		return types.LaunchResponse{}, fmt.Errorf("failed to create temp directory: %w", err)
	}
	// Removed by Close
	c.tempDir = tempDir

	outputBinary := filepath.Join(tempDir, "debug_binary")
	logger.Debug("Compiling package", "dir", absDir, "package", pkg, "output", outputBinary)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	buildCmd := exec.CommandContext(ctx, "go", "build", "-gcflags", "all=-N -l", "-o", outputBinary, pkg)
	buildCmd.Dir = absDir
	buildOutput, err := buildCmd.CombinedOutput()
	for _, line := range strings.Split(strings.TrimSpace(string(buildOutput)), "\n") {
		if line != "" {
			logger.Debug("Build output", "line", line)
		}
	}
	if err != nil {
		c.removeTempDir()
		return types.LaunchResponse{}, fmt.Errorf("failed to compile %s: %w\nOutput: %s", pkg, err, buildOutput)
	}

	response, err := c.LaunchProgram(outputBinary, args)
	if err != nil {
		c.removeTempDir()
		return types.LaunchResponse{}, fmt.Errorf("failed to launch debugger: %w", err)
	}
	response.Program = pkg
	response.DebugBinary = outputBinary
	return response, nil
}

// Close terminates the debug session
func (c *Client) Close() (types.CloseResponse, error) {
	if c.client == nil {
		return createCloseResponse(nil, nil), nil
	}

	final := c.lastState

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		err := c.client.Detach(true)
		if err != nil {
			logger.Debug("Failed to detach from debugged process", "error", err)
		}
		errChan <- err
	}()

	var detachErr error
	select {
	case detachErr = <-errChan:
	case <-ctx.Done():
		logger.Warn("Detach operation timed out after 5 seconds")
		detachErr = ctx.Err()
	}

	c.client = nil

	if c.server != nil {
		stopChan := make(chan error, 1)
		go func() {
			err := c.server.Stop()
			if err != nil {
				logger.Debug("Failed to stop debug server", "error", err)
			}
			stopChan <- err
		}()

		select {
		case <-stopChan:
		case <-time.After(5 * time.Second):
			logger.Warn("Server stop operation timed out after 5 seconds")
		}
		c.server = nil
	}

	c.closeReaders()
	c.target = ""
	c.lastState = nil
	c.markers = make(map[int]string)
	c.removeTempDir()

	// A process that already exited cannot be detached cleanly; that is not a failure.
	if final != nil && final.Exited {
		detachErr = nil
	}
	if detachErr != nil {
		return createCloseResponse(final, detachErr), detachErr
	}
	return createCloseResponse(final, nil), nil
}

func (c *Client) closeReaders() {
	for _, r := range c.readers {
		r.Close()
	}
	c.readers = nil
}

func (c *Client) removeTempDir() {
	if c.tempDir == "" {
		return
	}
	logger.Debug("Cleaning up temporary directory", "dir", c.tempDir)
	os.RemoveAll(c.tempDir)
	c.tempDir = ""
}
