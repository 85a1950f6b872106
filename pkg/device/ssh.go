package device

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/vrpctl/vrpctl/pkg/config"
	"github.com/vrpctl/vrpctl/pkg/util"
)

// VRP prompts: user view <hostname>, system view [hostname].
var (
	shellPromptRE = regexp.MustCompile(`(?m)(<[^>\r\n]+>|\[[^\]\r\n]+\])\s?$`)
	errorLineRE   = regexp.MustCompile(`(?m)^\s*Error:.*$`)
	ansiRE        = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
)

// SSHConfig describes how to reach a device.
type SSHConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SSHTransport is an interactive VRP shell over SSH. One session is opened
// at dial time and reused for every batch; VRP keeps mode state (system-view
// nesting) inside the session, which is exactly what the command wrapper
// relies on.
type SSHTransport struct {
	client *ssh.Client
	sess   *ssh.Session
	stdin  io.WriteCloser

	mu     sync.Mutex
	chunks chan string
	readErr chan error
}

// DialSSH connects, starts a shell, waits for the first prompt, and
// disables paging so multi-screen output comes back in one piece.
func DialSSH(cfg SSHConfig) (*SSHTransport, error) {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientCfg := &ssh.ClientConfig{
		User:    cfg.Username,
		Auth:    []ssh.AuthMethod{ssh.Password(cfg.Password)},
		Timeout: cfg.Timeout,
		// Switch deployments rotate host keys rarely but unpredictably;
		// pinning is left to the operator's known_hosts tooling.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w", addr, err)
	}

	sess, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("SSH session: %w", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 115200,
		ssh.TTY_OP_OSPEED: 115200,
	}
	if err := sess.RequestPty("vt100", 512, 256, modes); err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("request pty: %w", err)
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := sess.Shell(); err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("start shell: %w", err)
	}

	t := &SSHTransport{
		client:  client,
		sess:    sess,
		stdin:   stdin,
		chunks:  make(chan string, 64),
		readErr: make(chan error, 1),
	}
	go t.pump(stdout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	// Swallow the login banner up to the first prompt, then kill paging.
	if _, err := t.collect(ctx, nil, ""); err != nil {
		t.Close()
		return nil, fmt.Errorf("waiting for prompt: %w", err)
	}
	if _, err := t.run(ctx, config.Plain("screen-length 0 temporary")); err != nil {
		t.Close()
		return nil, fmt.Errorf("disable paging: %w", err)
	}

	util.WithDevice(cfg.Host).Debugf("SSH shell established")
	return t, nil
}

// pump feeds raw shell output into the chunk channel until EOF.
func (t *SSHTransport) pump(stdout io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			t.chunks <- string(buf[:n])
		}
		if err != nil {
			t.readErr <- err
			close(t.chunks)
			return
		}
	}
}

// RunCommands executes the batch in order, one response per command. The
// first device error or transport failure aborts the batch; commands
// already sent are not rolled back.
func (t *SSHTransport) RunCommands(ctx context.Context, cmds []config.Command) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	responses := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		out, err := t.run(ctx, cmd)
		if err != nil {
			return responses, fmt.Errorf("command %q: %w", cmd.Text, err)
		}
		responses = append(responses, out)
	}
	return responses, nil
}

// run sends one command and reads until the shell prompt returns, answering
// an interactive confirmation on the way when the command declares one.
func (t *SSHTransport) run(ctx context.Context, cmd config.Command) (string, error) {
	if _, err := io.WriteString(t.stdin, cmd.Text+"\n"); err != nil {
		return "", err
	}

	var confirmRE *regexp.Regexp
	if cmd.Interactive() {
		re, err := regexp.Compile(cmd.Prompt)
		if err != nil {
			return "", fmt.Errorf("invalid prompt pattern %q: %w", cmd.Prompt, err)
		}
		confirmRE = re
	}

	out, err := t.collect(ctx, confirmRE, cmd.Answer)
	if err != nil {
		return out, err
	}
	if m := errorLineRE.FindString(out); m != "" {
		return out, fmt.Errorf("device rejected command: %s", strings.TrimSpace(m))
	}
	return cleanResponse(out, cmd.Text), nil
}

// collect accumulates shell output until the shell prompt shows up at the
// tail. When confirmRE matches first, the expected answer is sent and
// collection continues.
func (t *SSHTransport) collect(ctx context.Context, confirmRE *regexp.Regexp, answer string) (string, error) {
	var sb strings.Builder
	answered := false

	for {
		select {
		case <-ctx.Done():
			return sb.String(), ctx.Err()
		case err := <-t.readErr:
			return sb.String(), fmt.Errorf("connection lost: %w", err)
		case chunk, ok := <-t.chunks:
			if !ok {
				return sb.String(), io.EOF
			}
			sb.WriteString(ansiRE.ReplaceAllString(chunk, ""))
			tail := sb.String()

			if confirmRE != nil && !answered && confirmRE.MatchString(tail) {
				answered = true
				if _, err := io.WriteString(t.stdin, answer+"\n"); err != nil {
					return tail, err
				}
				continue
			}
			if shellPromptRE.MatchString(tail) {
				return tail, nil
			}
		}
	}
}

// cleanResponse strips the echoed command and the trailing prompt.
func cleanResponse(out, echo string) string {
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = shellPromptRE.ReplaceAllString(out, "")
	lines := strings.Split(out, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == strings.TrimSpace(echo) {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Close shuts the shell session and the underlying connection.
func (t *SSHTransport) Close() error {
	t.stdin.Close()
	t.sess.Close()
	return t.client.Close()
}
