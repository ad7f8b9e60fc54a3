package engine

import (
	"sync"

	"github.com/emberline-dev/emberline/internal/models"
	"github.com/emberline-dev/emberline/internal/sshclient"
)

// MockSSHFactory implements sshclient.Factory for testing.
type MockSSHFactory struct {
	mu       sync.Mutex
	Session  *MockSSHSession
	LastCfg  sshclient.Config
	Sessions int
}

func (f *MockSSHFactory) NewSession(cfg sshclient.Config) (sshclient.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.LastCfg = cfg
	f.Sessions++
	if f.Session == nil {
		f.Session = &MockSSHSession{}
	}
	return f.Session, nil
}

// MockSSHSession implements sshclient.Session for testing.
type MockSSHSession struct {
	mu sync.Mutex

	ConnectErr   error
	ExecResult   *sshclient.ExecResult
	ExecErr      error
	lastCommand  string
	disconnected bool
}

func (s *MockSSHSession) Connect() error { return s.ConnectErr }

func (s *MockSSHSession) Exec(command string) (*sshclient.ExecResult, error) {
	s.mu.Lock()
	s.lastCommand = command
	s.mu.Unlock()

	if s.ExecErr != nil {
		return nil, s.ExecErr
	}
	if s.ExecResult != nil {
		return s.ExecResult, nil
	}
	return &sshclient.ExecResult{ExitCode: 0, Stdout: "ok"}, nil
}

func (s *MockSSHSession) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnected = true
	return nil
}

func (s *MockSSHSession) LastError() string { return "" }

func (s *MockSSHSession) LastCommand() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCommand
}

func (s *MockSSHSession) Disconnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnected
}

// MockPublisher records published results.
type MockPublisher struct {
	mu      sync.Mutex
	Results []models.ActionResult
	Err     error
}

func (p *MockPublisher) PublishResult(action models.Action, result models.ActionResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Results = append(p.Results, result)
	return nil
}

func (p *MockPublisher) Published() []models.ActionResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]models.ActionResult, len(p.Results))
	copy(out, p.Results)
	return out
}
