// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wav-steganography/audio"
	"wav-steganography/crypto"
	"wav-steganography/models"
	"wav-steganography/stego"
)

const (
	Version = "1.0.0"

	// DefaultMaxUploadBytes is used when the handler is built with a non-positive limit.
	DefaultMaxUploadBytes = 32 << 20
)

type StegoHandler struct {
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewStegoHandler(maxUploadBytes int64, logger *slog.Logger) *StegoHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StegoHandler{
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
		"version": Version,
	})
}

// EncodeMessage embeds a message and passphrase into an uploaded WAV
// carrier and streams the stego WAV back.
func (h *StegoHandler) EncodeMessage(c *gin.Context) {
	if status, err := h.parseUpload(c); err != nil {
		c.JSON(status, models.EncodeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	passphrase := c.PostForm("passphrase")
	if err := crypto.ValidatePassphrase(passphrase); err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid passphrase: %v", err),
		})
		return
	}

	config, err := parseStegoConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	message, err := readMessage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	audioFile, audioHeader, err := c.Request.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: "Audio file is required",
		})
		return
	}
	defer audioFile.Close()

	audioData, err := io.ReadAll(audioFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read audio file: %v", err),
		})
		return
	}

	carrier, err := audio.ParseWAV(audioData)
	if err != nil {
		c.JSON(statusFor(err), models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read carrier: %v", err),
		})
		return
	}

	codec := stego.NewLSBCodec(config)
	stegoCarrier, err := codec.Encode(carrier, message, passphrase)
	if err != nil {
		h.logger.Info("encode rejected", "file", audioHeader.Filename, "error", err)
		c.JSON(statusFor(err), models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed message: %v", err),
		})
		return
	}

	stegoAudio, err := audio.EncodeWAV(stegoCarrier)
	if err != nil {
		c.JSON(statusFor(err), models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to write stego audio: %v", err),
		})
		return
	}

	required, _ := codec.RequiredSamples(message, passphrase)
	psnr := audio.CalculatePSNR(carrier.Samples, stegoCarrier.Samples)

	h.logger.Info("message embedded",
		"file", audioHeader.Filename,
		"samples", len(carrier.Samples),
		"bits", required,
		"psnr", psnr,
	)

	baseFilename := strings.TrimSuffix(audioHeader.Filename, filepath.Ext(audioHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.wav", baseFilename)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", contentDisposition(outputFilename))
	c.Header("X-Stego-PSNR", strconv.FormatFloat(psnr, 'f', 2, 64))
	c.Header("X-Stego-Bits", strconv.Itoa(required))
	c.Header("X-Stego-Capacity", strconv.Itoa(codec.Capacity(carrier)))
	c.Header("X-Stego-Message", "Secret message successfully embedded in PCM samples")

	c.Data(http.StatusOK, "audio/wav", stegoAudio)
}

// DecodeMessage recovers the message from an uploaded stego WAV.
func (h *StegoHandler) DecodeMessage(c *gin.Context) {
	if status, err := h.parseUpload(c); err != nil {
		c.JSON(status, models.ExtractResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	passphrase := c.PostForm("passphrase")
	if err := crypto.ValidatePassphrase(passphrase); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid passphrase: %v", err),
		})
		return
	}

	config, err := parseStegoConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	stegoFile, stegoHeader, err := c.Request.FormFile("stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Stego audio file is required",
		})
		return
	}
	defer stegoFile.Close()

	stegoAudio, err := io.ReadAll(stegoFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read stego audio file: %v", err),
		})
		return
	}

	carrier, err := audio.ParseWAV(stegoAudio)
	if err != nil {
		c.JSON(statusFor(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read carrier: %v", err),
		})
		return
	}

	message, err := stego.NewLSBCodec(config).Decode(carrier, passphrase)
	if err != nil {
		h.logger.Info("decode rejected", "file", stegoHeader.Filename, "error", err)
		c.JSON(statusFor(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract message: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, models.ExtractResponse{
		Success: true,
		Message: "Message extracted",
		Secret:  message,
	})
}

// Capacity reports how many characters an uploaded carrier can hold.
func (h *StegoHandler) Capacity(c *gin.Context) {
	if status, err := h.parseUpload(c); err != nil {
		c.JSON(status, models.CapacityResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	config, err := parseStegoConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	audioFile, _, err := c.Request.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.CapacityResponse{
			Success: false,
			Message: "Audio file is required",
		})
		return
	}
	defer audioFile.Close()

	audioData, err := io.ReadAll(audioFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read audio file: %v", err),
		})
		return
	}

	carrier, err := audio.ParseWAV(audioData)
	if err != nil {
		c.JSON(statusFor(err), models.CapacityResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read carrier: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, models.CapacityResponse{
		Success:       true,
		Message:       "Capacity calculated",
		Framing:       framingName(config),
		Samples:       len(carrier.Samples),
		MaxCharacters: stego.NewLSBCodec(config).Capacity(carrier),
		Audio:         audio.Metadata(carrier),
	})
}

// parseUpload caps the request body at maxUploadBytes and parses the
// multipart form, returning the status to answer with on failure.
func (h *StegoHandler) parseUpload(c *gin.Context) (int, error) {
	if c.Request.ContentLength > h.maxUploadBytes {
		return http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds the %d byte limit", h.maxUploadBytes)
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds the %d byte limit", tooLarge.Limit)
		}
		return http.StatusBadRequest, fmt.Errorf("failed to parse form: %w", err)
	}
	return http.StatusOK, nil
}

func contentDisposition(filename string) string {
	if header := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); header != "" {
		return header
	}
	return "attachment"
}

// readMessage takes the message from the "message" field, falling back to
// an uploaded "message_file".
func readMessage(c *gin.Context) (string, error) {
	if message, ok := c.GetPostForm("message"); ok {
		return message, nil
	}

	messageFile, _, err := c.Request.FormFile("message_file")
	if err != nil {
		return "", errors.New("a message or message file is required")
	}
	defer messageFile.Close()

	data, err := io.ReadAll(messageFile)
	if err != nil {
		return "", fmt.Errorf("failed to read message file: %w", err)
	}
	return string(data), nil
}

func parseStegoConfig(c *gin.Context) (*models.StegoConfig, error) {
	config := &models.StegoConfig{
		UseEncryption: c.PostForm("whiten") == "true",
	}

	switch framing := c.DefaultPostForm("framing", models.FramingPrefixed); framing {
	case models.FramingPrefixed:
	case models.FramingLegacy:
		config.LegacyFraming = true
	default:
		return nil, fmt.Errorf("framing must be %q or %q, got %q", models.FramingPrefixed, models.FramingLegacy, framing)
	}
	return config, nil
}

func framingName(config *models.StegoConfig) string {
	if config.LegacyFraming {
		return models.FramingLegacy
	}
	return models.FramingPrefixed
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stego.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, stego.ErrIncorrectPassphrase):
		return http.StatusUnauthorized
	case errors.Is(err, stego.ErrCarrierFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, stego.ErrMalformedBitstream), errors.Is(err, stego.ErrInvalidPassphrase):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
