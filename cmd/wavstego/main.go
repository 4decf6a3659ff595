package main

import (
	"os"

	"github.com/alecthomas/kong"

	"wav-steganography/cli"
)

// version is set via ldflags at build time
var version = "dev"

var CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Encode   EncodeCmd   `cmd:"" help:"Embed a message and passphrase into a 16-bit PCM WAV file."`
	Decode   DecodeCmd   `cmd:"" help:"Recover a message from a stego WAV file."`
	Capacity CapacityCmd `cmd:"" help:"Report how much text a WAV file can carry."`
	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wavstego"),
		kong.Description("Hide a passphrase-protected message in the least-significant bits of a WAV file."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(exitCode(err))
	}
}
