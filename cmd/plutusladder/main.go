// Command plutusladder compiles LadderCore IR into PlutusTx validator scripts.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/roach88/plutusladder/internal/cli"
)

func main() {
	opts := &cli.RootOptions{}
	atexit.Register(opts.Sync)

	err := cli.NewRootCommandWithOptions(opts).Execute()

	// Commands print their own failures; anything else (flag parsing,
	// unknown commands) is reported here.
	code := cli.GetExitCode(err)
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code = cli.ExitCommandError
	}
	atexit.Exit(code)
}
