package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/types"
)

// AvatarService renders initials avatars for roster entries and processes
// uploaded profile images into the same square PNG shape.
type AvatarService interface {
	CreateOperatorAvatar(ctx context.Context, operator *types.Operator) error
	CreateOperatorAvatarFromImage(ctx context.Context, operator *types.Operator, raw []byte) error
	GenerateOperatorAvatar(operator *types.Operator) (bytes.Buffer, error)
}

type avatarService struct {
	log         *logger.Logger
	fileService FileService

	bgColors []color.NRGBA
	fontFace font.Face
}

func NewAvatarService(log *logger.Logger, fileService FileService) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	colorsJSONPath := os.Getenv("AVATAR_COLORS_JSON_PATH")
	if strings.TrimSpace(colorsJSONPath) == "" {
		return nil, fmt.Errorf("Env var AVATAR_COLORS_JSON_PATH is empty")
	}
	serviceLog.Info("Loading avatar colors...", "path", colorsJSONPath)

	bgColors, err := loadColorsFromFile(colorsJSONPath)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar colors: %w", err)
	}
	if len(bgColors) == 0 {
		return nil, fmt.Errorf("avatar colors list is empty")
	}

	fontPath := os.Getenv("AVATAR_FONT")
	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("Env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		log:         serviceLog,
		fileService: fileService,
		bgColors:    bgColors,
		fontFace:    face,
	}, nil
}

func (as *avatarService) CreateOperatorAvatar(ctx context.Context, operator *types.Operator) error {
	buf, err := as.GenerateOperatorAvatar(operator)
	if err != nil {
		return err
	}

	oldURL := strings.TrimSpace(operator.AvatarURL)

	url, err := as.fileService.SaveAvatar(operator.OperatorHandle, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to store operator avatar: %w", err)
	}
	operator.AvatarURL = url

	if oldURL != "" && oldURL != url {
		if err := as.fileService.Remove(oldURL); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldURL", oldURL, "error", err)
		}
	}
	return nil
}

func (as *avatarService) GenerateOperatorAvatar(operator *types.Operator) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.pickColor(operator.Name)
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(operator.FirstName(), operator.LastName())

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func (as *avatarService) CreateOperatorAvatarFromImage(ctx context.Context, operator *types.Operator, raw []byte) error {
	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return err
	}

	oldURL := strings.TrimSpace(operator.AvatarURL)

	url, err := as.fileService.SaveAvatar(operator.OperatorHandle, processed.Bytes())
	if err != nil {
		return fmt.Errorf("failed to store operator avatar: %w", err)
	}
	operator.AvatarURL = url

	if oldURL != "" && oldURL != url {
		if err := as.fileService.Remove(oldURL); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldURL", oldURL, "error", err)
		}
	}
	return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}

	return out, nil
}

// pickColor is deterministic per operator name so regenerating an avatar
// keeps the same background.
func (as *avatarService) pickColor(name string) color.NRGBA {
	var sum int
	for _, r := range strings.ToLower(name) {
		sum += int(r)
	}
	return as.bgColors[sum%len(as.bgColors)]
}

func computeInitials(first, last string) string {
	fInit := "?"
	if len(first) > 0 {
		fInit = strings.ToUpper(first[:1])
	}
	lInit := "?"
	if len(last) > 0 {
		lInit = strings.ToUpper(last[:1])
	}
	return fInit + lInit
}

func loadColorsFromFile(jsonPath string) ([]color.NRGBA, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read file error: %w", err)
	}
	var hexes []string
	if err := json.Unmarshal(data, &hexes); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	colors := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		r, g, b, err := parseHexRGB(h)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", h, err)
		}
		colors = append(colors, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return colors, nil
}

func parseHexRGB(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars")
	}

	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hex")
	}
	return raw[0], raw[1], raw[2], nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
