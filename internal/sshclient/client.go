// Package sshclient implements the remote-command session collaborator
// used by SSH actions, backed by golang.org/x/crypto/ssh.
package sshclient

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff"
	"golang.org/x/crypto/ssh"
)

// ErrTimeout marks connect or exec attempts that exceeded the configured
// bound. Callers distinguish it from other transport failures.
var ErrTimeout = errors.New("sshclient: operation timed out")

// DefaultTimeout bounds connect and exec when the config leaves Timeout zero.
const DefaultTimeout = 30 * time.Second

// Config describes one session. Password auth is used unless UseKeyAuth
// is set with a readable private key.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	KeyPath    string
	UseKeyAuth bool
	Timeout    time.Duration
}

// ExecResult carries the remote command outcome.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Session is a single-use connection to one host.
type Session interface {
	Connect() error
	Exec(command string) (*ExecResult, error)
	Disconnect() error
	LastError() string
}

// Factory creates sessions. The engine depends on this interface so tests
// can substitute a mock transport.
type Factory interface {
	NewSession(cfg Config) (Session, error)
}

// ClientFactory is the production Factory.
type ClientFactory struct{}

func (ClientFactory) NewSession(cfg Config) (Session, error) {
	if cfg.Host == "" || cfg.Username == "" {
		return nil, fmt.Errorf("sshclient: host and username are required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg}, nil
}

// Client is a Session over x/crypto/ssh.
type Client struct {
	cfg     Config
	conn    *ssh.Client
	lastErr string
}

// Connect dials the host, retrying transient failures with exponential
// backoff until the configured timeout elapses.
func (c *Client) Connect() error {
	auth, err := c.authMethods()
	if err != nil {
		c.lastErr = err.Error()
		return err
	}

	clientCfg := &ssh.ClientConfig{
		User:            c.cfg.Username,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         c.cfg.Timeout,
	}
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))

	dial := func() error {
		conn, err := ssh.Dial("tcp", addr, clientCfg)
		if err != nil {
			if isAuthError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		c.conn = conn
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxElapsedTime = c.cfg.Timeout

	if err := backoff.Retry(dial, policy); err != nil {
		c.lastErr = err.Error()
		if isTimeout(err) {
			return fmt.Errorf("%w: connect to %s: %v", ErrTimeout, addr, err)
		}
		return fmt.Errorf("sshclient: connect to %s: %w", addr, err)
	}
	return nil
}

// Exec runs the command and captures stdout/stderr separately. A nonzero
// remote exit status is not an error; it is reported in the result.
func (c *Client) Exec(command string) (*ExecResult, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("sshclient: not connected")
	}

	sess, err := c.conn.NewSession()
	if err != nil {
		c.lastErr = err.Error()
		return nil, fmt.Errorf("sshclient: open channel: %w", err)
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	errCh := make(chan error, 1)
	go func() { errCh <- sess.Run(command) }()

	select {
	case err = <-errCh:
	case <-time.After(c.cfg.Timeout):
		c.lastErr = "command timed out"
		_ = sess.Signal(ssh.SIGKILL)
		return nil, fmt.Errorf("%w: exec %q", ErrTimeout, command)
	}

	result := &ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitStatus()
			return result, nil
		}
		c.lastErr = err.Error()
		return nil, fmt.Errorf("sshclient: exec: %w", err)
	}
	return result, nil
}

// Disconnect tears down the connection. Safe to call on every exit path,
// including after a failed Connect.
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// LastError returns the last transport error message, or "".
func (c *Client) LastError() string { return c.lastErr }

func (c *Client) authMethods() ([]ssh.AuthMethod, error) {
	if c.cfg.UseKeyAuth && c.cfg.KeyPath != "" {
		key, err := os.ReadFile(c.cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("sshclient: read key %s: %w", c.cfg.KeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("sshclient: parse key %s: %w", c.cfg.KeyPath, err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	return []ssh.AuthMethod{ssh.Password(c.cfg.Password)}, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}

func isAuthError(err error) bool {
	// x/crypto/ssh reports auth failures as "ssh: unable to authenticate";
	// retrying those only locks accounts.
	return err != nil && bytes.Contains([]byte(err.Error()), []byte("unable to authenticate"))
}
