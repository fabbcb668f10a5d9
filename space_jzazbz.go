package clahe

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Jzazbz equalizes Jz; az and bz are carried. sRGB white is placed at the
// 203 cd/m² reference white and Jz is normalized so that white maps to 1.
var Jzazbz ColorSpace = pixelAdapter{name: "Jzazbz", conv: jzazbzSpace{}}

// Safdar et al., "Perceptually uniform color space for image signals
// including high dynamic range and wide gamut", Optics Express 2017.
const (
	jzB     = 1.15
	jzG     = 0.66
	jzC1    = 3424.0 / 4096
	jzC2    = 2413.0 / 128
	jzC3    = 2392.0 / 128
	jzN     = 2610.0 / 16384
	jzP     = 1.7 * 2523.0 / 32
	jzD     = -0.56
	jzD0    = 1.6295499532821566e-11
	jzWhite = 203.0 // cd/m²
)

// jzMax is Jz of sRGB white.
var jzMax = func() float64 {
	jz, _, _ := xyzToJzazbz(colorful.Color{R: 1, G: 1, B: 1}.Xyz())
	return jz
}()

func pq(v float64) float64 {
	t := math.Pow(max(v, 0)/10000, jzN)
	return math.Pow((jzC1+jzC2*t)/(1+jzC3*t), jzP)
}

func pqInverse(v float64) float64 {
	t := math.Pow(max(v, 0), 1/jzP)
	num := jzC1 - t
	if num >= 0 {
		return 0
	}
	den := jzC3*t - jzC2
	if den >= 0 {
		return 10000
	}
	return 10000 * math.Pow(num/den, 1/jzN)
}

func xyzToJzazbz(x, y, z float64) (jz, az, bz float64) {
	x, y, z = x*jzWhite, y*jzWhite, z*jzWhite
	xp := jzB*x - (jzB-1)*z
	yp := jzG*y - (jzG-1)*x

	l := pq(0.41478972*xp + 0.579999*yp + 0.0146480*z)
	m := pq(-0.2015100*xp + 1.120649*yp + 0.0531008*z)
	s := pq(-0.0166008*xp + 0.264800*yp + 0.6684799*z)

	iz := 0.5 * (l + m)
	az = 3.524000*l - 4.066708*m + 0.542708*s
	bz = 0.199076*l + 1.096799*m - 1.295875*s
	jz = (1+jzD)*iz/(1+jzD*iz) - jzD0
	return jz, az, bz
}

func jzazbzToXYZ(jz, az, bz float64) (x, y, z float64) {
	jd := jz + jzD0
	iz := jd / (1 + jzD - jzD*jd)

	l := pqInverse(iz + 0.138605043271539*az + 0.0580473161561189*bz)
	m := pqInverse(iz - 0.138605043271539*az - 0.0580473161561189*bz)
	s := pqInverse(iz - 0.0960192420263190*az - 0.811891896056039*bz)

	xp := 1.9242264357876067*l - 1.0047923125953657*m + 0.037651404030618*s
	yp := 0.35031676209499907*l + 0.7264811939316552*m - 0.06538442294808501*s
	z = -0.09098281098284752*l - 0.3127282905230739*m + 1.5227665613052603*s

	x = (xp + (jzB-1)*z) / jzB
	y = (yp + (jzG-1)*x) / jzG
	return x / jzWhite, y / jzWhite, z / jzWhite
}

type jzazbzSpace struct{}

func (jzazbzSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	jz, az, bz := xyzToJzazbz(toColorful(r, g, b).Xyz())
	return float32(jz / jzMax), float32(az), float32(bz)
}

func (jzazbzSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	x, y, z := jzazbzToXYZ(float64(l)*jzMax, float64(c0), float64(c1))
	return fromColorful(colorful.Xyz(x, y, z))
}
