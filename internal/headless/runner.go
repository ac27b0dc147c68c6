// Package headless runs one prompt without the TUI, for scripting and
// pipelines.
package headless

import (
	"context"
	"fmt"
	"io"

	"github.com/jeanpaul/axon/internal/agent"
)

// Run sends one prompt through the agent and writes the response,
// newline-terminated, to out. Errors are returned, never printed.
func Run(ctx context.Context, agt *agent.Agent, prompt string, out io.Writer) error {
	reply, err := agt.Respond(ctx, prompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, reply)
	return err
}
