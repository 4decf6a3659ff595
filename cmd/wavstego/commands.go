package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Songmu/prompter"

	"wav-steganography/audio"
	"wav-steganography/cli"
	"wav-steganography/config"
	"wav-steganography/crypto"
	"wav-steganography/models"
	"wav-steganography/server"
	"wav-steganography/stego"
)

var errAborted = errors.New("aborted")

// minPSNR is the quality floor below which encode warns.
const minPSNR = 60.0

type EncodeCmd struct {
	Carrier    string `arg:"" help:"Carrier WAV file (16-bit PCM)." type:"existingfile"`
	Message    string `arg:"" help:"Text file holding the message." type:"existingfile"`
	Output     string `short:"o" help:"Output WAV path. A generated name inside --out-dir is used when empty."`
	OutDir     string `help:"Directory for generated output names." default:"." type:"existingdir"`
	Passphrase string `help:"Passphrase; prompted for when empty." env:"STEGO_PASSPHRASE"`
	Legacy     bool   `help:"Embed without a length prefix. Decoding must then also use --legacy."`
	Whiten     bool   `help:"Whiten the payload with a passphrase-keyed cipher."`
	Force      bool   `short:"f" help:"Overwrite an existing output file without asking."`
}

func (c *EncodeCmd) Run() error {
	passphrase, err := resolvePassphrase(c.Passphrase)
	if err != nil {
		return err
	}

	message, err := os.ReadFile(c.Message)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	carrier, err := audio.LoadWAV(c.Carrier)
	if err != nil {
		return fmt.Errorf("failed to read carrier: %w", err)
	}

	codec := stego.NewLSBCodec(stegoConfig(c.Legacy, c.Whiten))
	stegoCarrier, err := codec.Encode(carrier, string(message), passphrase)
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = filepath.Join(c.OutDir, audio.GenerateOutputName(time.Now(), ".wav"))
	}
	if err := confirmOverwrite(output, c.Force); err != nil {
		return err
	}
	if err := audio.WriteWAVFile(output, stegoCarrier); err != nil {
		return fmt.Errorf("failed to write stego audio: %w", err)
	}

	psnr := audio.CalculatePSNR(carrier.Samples, stegoCarrier.Samples)
	if !audio.ValidatePSNR(psnr, minPSNR) {
		cli.PrintWarning(fmt.Sprintf("PSNR %s is below %.0f dB; the change may be audible", cli.FormatPSNR(psnr), minPSNR))
	}
	if c.Legacy {
		cli.PrintWarning("legacy framing has no length prefix; decode with --legacy")
	}

	required, _ := codec.RequiredSamples(string(message), passphrase)
	cli.PrintReport("Message encoded", []cli.Field{
		{Key: "Output", Value: output},
		{Key: "Framing", Value: framingName(c.Legacy)},
		{Key: "Samples used", Value: fmt.Sprintf("%d of %d", required, len(carrier.Samples))},
		{Key: "Capacity", Value: fmt.Sprintf("%d characters", codec.Capacity(carrier))},
		{Key: "PSNR", Value: cli.FormatPSNR(psnr)},
	})
	return nil
}

type DecodeCmd struct {
	Stego      string `arg:"" help:"Stego WAV file." type:"existingfile"`
	Output     string `short:"o" help:"Write the message to this file instead of stdout."`
	Passphrase string `help:"Passphrase; prompted for when empty." env:"STEGO_PASSPHRASE"`
	Legacy     bool   `help:"Read a payload embedded without a length prefix."`
	Whiten     bool   `help:"Undo passphrase-keyed whitening."`
	Force      bool   `short:"f" help:"Overwrite an existing output file without asking."`
}

func (c *DecodeCmd) Run() error {
	passphrase, err := resolvePassphrase(c.Passphrase)
	if err != nil {
		return err
	}

	carrier, err := audio.LoadWAV(c.Stego)
	if err != nil {
		return fmt.Errorf("failed to read carrier: %w", err)
	}

	message, err := stego.NewLSBCodec(stegoConfig(c.Legacy, c.Whiten)).Decode(carrier, passphrase)
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Fprint(cli.Output, message)
		return nil
	}

	if err := confirmOverwrite(c.Output, c.Force); err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, []byte(message), 0o644); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	cli.PrintSuccess(fmt.Sprintf("Message saved to %s", c.Output))
	return nil
}

type CapacityCmd struct {
	Carrier string `arg:"" help:"Carrier WAV file (16-bit PCM)." type:"existingfile"`
	Legacy  bool   `help:"Report capacity without the length prefix."`
}

func (c *CapacityCmd) Run() error {
	carrier, err := audio.LoadWAV(c.Carrier)
	if err != nil {
		return fmt.Errorf("failed to read carrier: %w", err)
	}

	meta := audio.Metadata(carrier)
	codec := stego.NewLSBCodec(stegoConfig(c.Legacy, false))
	cli.PrintReport(filepath.Base(c.Carrier), []cli.Field{
		{Key: "Channels", Value: strconv.Itoa(meta.Channels)},
		{Key: "Sample rate", Value: fmt.Sprintf("%d Hz", meta.SampleRate)},
		{Key: "Frames", Value: strconv.Itoa(meta.Frames)},
		{Key: "Duration", Value: fmt.Sprintf("%.2fs", meta.Duration)},
		{Key: "Samples", Value: strconv.Itoa(len(carrier.Samples))},
		{Key: "Framing", Value: framingName(c.Legacy)},
		{Key: "Capacity", Value: fmt.Sprintf("%d characters (%s)", codec.Capacity(carrier), cli.FormatBytes(int64(codec.Capacity(carrier))))},
	})
	return nil
}

type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg, err := config.NewServerConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return server.Run(cfg, server.NewLogger(cfg))
}

func resolvePassphrase(passphrase string) (string, error) {
	if passphrase == "" {
		passphrase = prompter.Password("Passphrase")
	}
	if err := crypto.ValidatePassphrase(passphrase); err != nil {
		return "", err
	}
	return passphrase, nil
}

func confirmOverwrite(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if !prompter.YN(fmt.Sprintf("%s exists. Overwrite?", path), false) {
		return errAborted
	}
	return nil
}

func stegoConfig(legacy, whiten bool) *models.StegoConfig {
	return &models.StegoConfig{
		LegacyFraming: legacy,
		UseEncryption: whiten,
	}
}

func framingName(legacy bool) string {
	if legacy {
		return models.FramingLegacy
	}
	return models.FramingPrefixed
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, stego.ErrIncorrectPassphrase):
		return 2
	case errors.Is(err, stego.ErrCapacityExceeded):
		return 3
	case errors.Is(err, stego.ErrCarrierFormat), errors.Is(err, stego.ErrMalformedBitstream):
		return 4
	default:
		return 1
	}
}
