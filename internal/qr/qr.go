package qr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// defaultSize is the badge edge length in pixels
const defaultSize = 256

// Generator renders member badge QR codes. Each badge encodes the check-in
// URL whose "member" query parameter carries the participant's name, which
// is exactly what the scanning station posts back as the decoded payload.
type Generator struct {
	baseURL string
	size    int
}

// New creates a Generator. baseURL is the externally reachable check-in URL
// prefix (e.g. https://party.example.com).
func New(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		size:    defaultSize,
	}
}

// PayloadURL returns the check-in URL a member's badge encodes
func (g *Generator) PayloadURL(memberName string) string {
	return fmt.Sprintf("%s/checkin?member=%s", g.baseURL, url.QueryEscape(memberName))
}

// BadgePNG renders the member's badge as a PNG image
func (g *Generator) BadgePNG(memberName string) ([]byte, error) {
	if memberName == "" {
		return nil, fmt.Errorf("member name required for badge")
	}

	png, err := qrcode.Encode(g.PayloadURL(memberName), qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("encoding badge: %w", err)
	}
	return png, nil
}
