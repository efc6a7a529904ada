package chart

import (
	"bytes"
	"fmt"
	"strings"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"popgen/internal/errors"
)

// PNG rasterizes the pyramid at its configured size and DPI. The canvas is
// created per call, so repeated exports of the same pyramid are
// byte-identical.
func (p *Pyramid) PNG() ([]byte, error) {
	canvas := vgimg.NewWith(
		vgimg.UseWH(p.width, p.height),
		vgimg.UseDPI(p.dpi),
	)
	p.plot.Draw(draw.New(canvas))

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, errors.RenderFailed("failed to encode chart PNG", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download name for an exported pyramid, with spaces in
// the country name replaced by underscores.
func Filename(country string, year int) string {
	return fmt.Sprintf("pyramid_%s_%d.png", strings.ReplaceAll(country, " ", "_"), year)
}
