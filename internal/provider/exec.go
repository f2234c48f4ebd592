package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/swarm/internal/errors"
)

// ExecClient bridges the agent-calling capability to an external command.
// The full request is written to the command's stdin as JSON; whatever
// the command prints to stdout is returned verbatim as the response
// content. This keeps model access entirely outside this module.
type ExecClient struct {
	command []string
}

// execRequest is the JSON payload handed to the external command
type execRequest struct {
	Messages []Message   `json:"messages"`
	Options  ChatOptions `json:"options"`
}

// NewExecClient creates a client around a command line, e.g.
// "my-agent --fast". The command is invoked once per Chat call.
func NewExecClient(commandLine string) (*ExecClient, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.NewProviderNotConfiguredError()
	}
	return &ExecClient{command: fields}, nil
}

// Chat implements Client
func (c *ExecClient) Chat(ctx context.Context, messages []Message, opts ChatOptions) (*ChatResponse, error) {
	payload, err := json.Marshal(execRequest{Messages: messages, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("marshal agent request: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		detail := c.command[0]
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			detail = fmt.Sprintf("%s: %s", c.command[0], msg)
		}
		return nil, errors.NewProviderCallError(detail, err)
	}

	return &ChatResponse{
		Content: stdout.String(),
		Latency: time.Since(start),
	}, nil
}
