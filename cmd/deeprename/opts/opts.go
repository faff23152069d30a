package opts

import (
	"context"
	"io"

	"github.com/walteh/deeprename/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string    // Optional config file, defaults apply when empty
	Debug      bool      // Enables debug logging
	Out        io.Writer // Console output of change lines
	Prompter   Prompter  // Asks for keyword pairs when none are configured
	UserLogger *UserLogger
}

// LoadConfig loads ConfigFile, or returns the defaults when none is set
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	if o.ConfigFile == "" {
		return config.Default(), nil
	}
	return config.Load(ctx, o.ConfigFile)
}
