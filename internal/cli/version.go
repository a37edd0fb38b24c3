package cli

import (
	"context"
	"fmt"

	"github.com/YousefMohassab/hpc-container-maker/internal"
)

// Represents the 'hpccm version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
