// Package resolution derives randomized SDXL-friendly render
// dimensions from a source image's aspect ratio.
package resolution

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
)

// RatioMode controls the orientation of the derived dimensions.
type RatioMode string

const (
	// ModeAny picks the orientation at random.
	ModeAny RatioMode = "any"
	// ModeImage keeps the source orientation.
	ModeImage RatioMode = "image"
	// ModePortrait forces height >= width.
	ModePortrait RatioMode = "portrait"
	// ModeLandscape forces width >= height.
	ModeLandscape RatioMode = "landscape"
)

// ErrInvalidMode is returned for an unrecognized ratio mode.
var ErrInvalidMode = errors.New("invalid ratio mode")

// Params bound a random dimension derivation.
type Params struct {
	Width     int
	Height    int
	Mode      RatioMode
	MinPixels int
	MaxPixels int
	Step      int
	Seed      int64
}

// Result is a derived resolution plus the simplified source ratio.
type Result struct {
	Width       int
	Height      int
	AspectRatio string
}

// Defaults applied to zero-valued Params fields.
const (
	defaultMinPixels = 1024 * 1024
	defaultMaxPixels = 1536 * 1536
	defaultStep      = 8
)

// RandomDimensions picks a random total pixel area within the
// configured range and derives dimensions that preserve the source
// aspect ratio, rounded to multiples of Step. Degenerate source
// dimensions fall back to 512x512.
func RandomDimensions(p Params) (Result, error) {
	switch p.Mode {
	case "", ModeAny, ModeImage, ModePortrait, ModeLandscape:
	default:
		return Result{}, ErrInvalidMode
	}
	if p.Mode == "" {
		p.Mode = ModeAny
	}
	if p.MinPixels <= 0 {
		p.MinPixels = defaultMinPixels
	}
	if p.MaxPixels <= 0 {
		p.MaxPixels = defaultMaxPixels
	}
	if p.MinPixels > p.MaxPixels {
		p.MinPixels = p.MaxPixels
	}
	if p.Step <= 0 {
		p.Step = defaultStep
	}

	if p.Width <= 0 || p.Height <= 0 {
		return Result{Width: 512, Height: 512, AspectRatio: "1/1"}, nil
	}

	aspect := float64(p.Width) / float64(p.Height)
	ratioNum, ratioDen := approximateRatio(aspect, 100)

	rng := rand.New(rand.NewSource(p.Seed))
	targetArea := float64(p.MinPixels) + rng.Float64()*float64(p.MaxPixels-p.MinPixels)

	idealHeight := math.Sqrt(targetArea / aspect)
	idealWidth := aspect * idealHeight

	step := float64(p.Step)
	width := int(math.Round(idealWidth/step) * step)
	if width < p.Step {
		width = p.Step
	}
	height := int(math.Round(float64(width)/aspect/step) * step)
	if height < p.Step {
		height = p.Step
	}

	long, short := width, height
	if height > width {
		long, short = height, width
	}

	switch p.Mode {
	case ModeAny:
		if rng.Intn(2) == 1 {
			width, height = height, width
		}
	case ModeImage:
		// Keep the source orientation as derived.
	case ModeLandscape:
		width, height = long, short
	case ModePortrait:
		width, height = short, long
	}

	return Result{
		Width:       width,
		Height:      height,
		AspectRatio: formatRatio(ratioNum, ratioDen),
	}, nil
}

// approximateRatio finds the best rational approximation of x with a
// denominator no larger than maxDen.
func approximateRatio(x float64, maxDen int) (int, int) {
	bestNum, bestDen := 1, 1
	bestErr := math.Abs(x - 1)
	for den := 1; den <= maxDen; den++ {
		num := int(math.Round(x * float64(den)))
		if num < 1 {
			num = 1
		}
		err := math.Abs(x - float64(num)/float64(den))
		if err < bestErr {
			bestNum, bestDen, bestErr = num, den, err
		}
	}
	g := gcd(bestNum, bestDen)
	return bestNum / g, bestDen / g
}

func formatRatio(num, den int) string {
	return strconv.Itoa(num) + "/" + strconv.Itoa(den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
