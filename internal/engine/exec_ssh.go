package engine

import (
	"errors"
	"log"
	"time"

	"github.com/emberline-dev/emberline/internal/models"
	"github.com/emberline-dev/emberline/internal/sshclient"
)

// execSSH resolves the host reference, expands variables in the command
// and runs it over a fresh session. Exit code 0 maps to Success, nonzero
// to Failed; timeouts are reported as a distinct status. The session is
// torn down on every path.
func (e *Engine) execSSH(p models.SSHCommandAction) models.ActionResult {
	start := time.Now()

	host, err := e.Host(p.HostRef)
	if err != nil {
		return failure("ssh host '" + p.HostRef + "' not found")
	}

	command := e.ExpandVariables(p.Command)
	log.Printf("engine: ssh [%s]: %s", p.HostRef, command)

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = e.opts.SSHTimeout
	}

	sess, err := e.opts.SSH.NewSession(sshclient.Config{
		Host:       host.Host,
		Port:       host.Port,
		Username:   host.Username,
		Password:   host.Password,
		KeyPath:    host.KeyPath,
		UseKeyAuth: host.UseKeyAuth && host.KeyPath != "",
		Timeout:    timeout,
	})
	if err != nil {
		return failure("ssh session create failed: " + err.Error())
	}
	defer func() {
		if err := sess.Disconnect(); err != nil {
			log.Printf("engine: ssh disconnect: %v", err)
		}
	}()

	if err := sess.Connect(); err != nil {
		result := failure("ssh connect failed: " + err.Error())
		if errors.Is(err, sshclient.ErrTimeout) {
			result.Status = models.StatusTimeout
		}
		return result
	}

	var result models.ActionResult
	execRes, err := sess.Exec(command)
	if err != nil {
		result.Status = models.StatusFailed
		if errors.Is(err, sshclient.ErrTimeout) {
			result.Status = models.StatusTimeout
		}
		result.Output = models.Truncate("ssh exec failed: "+err.Error(), models.MaxOutputLen)
	} else {
		result.ExitCode = execRes.ExitCode
		out := execRes.Stdout
		if out == "" {
			out = execRes.Stderr
		}
		result.Output = models.Truncate(out, models.MaxOutputLen)
		if execRes.ExitCode == 0 {
			result.Status = models.StatusSuccess
		} else {
			result.Status = models.StatusFailed
		}
	}

	result.Duration = time.Since(start)
	result.Timestamp = time.Now()

	e.statsMu.Lock()
	e.stats.SSHCommands++
	e.statsMu.Unlock()

	return result
}
