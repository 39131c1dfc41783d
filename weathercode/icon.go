package weathercode

import (
	"encoding/base64"
	"fmt"
	"html"
)

// IconSize is the edge length of rendered icons in logical units.
const IconSize = 64

type Icon struct {
	Info
	DataURL string `json:"icon"`
}

// NewIcon translates code and renders its glyph as an image source.
func NewIcon(code int, isDay bool) Icon {
	info := Translate(code, isDay)
	return Icon{Info: info, DataURL: DataURL(info.Glyph)}
}

// SVG draws glyph centred on an IconSize square canvas.
func SVG(glyph string) []byte {
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[1]d" viewBox="0 0 %[1]d %[1]d">`+
			`<text x="%[2]d" y="%[2]d" font-family="Arial" font-size="48" text-anchor="middle" dominant-baseline="middle">%[3]s</text>`+
			`</svg>`,
		IconSize, IconSize/2, html.EscapeString(glyph),
	))
}

func DataURL(glyph string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(SVG(glyph))
}
