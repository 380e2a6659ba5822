package timing

// Extrapolate controls what Interpolate does outside the input range.
type Extrapolate int

const (
	ExtendBoth Extrapolate = iota
	ClampLeft
	ClampRight
	ClampBoth
)

// Interpolate maps x from the input range onto the output range linearly.
func Interpolate(x float64, in, out [2]float64, mode Extrapolate) float64 {
	if in[1] == in[0] {
		return out[0]
	}
	if (mode == ClampLeft || mode == ClampBoth) && x < in[0] {
		x = in[0]
	}
	if (mode == ClampRight || mode == ClampBoth) && x > in[1] {
		x = in[1]
	}
	t := (x - in[0]) / (in[1] - in[0])
	return Lerp(out[0], out[1], t)
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOutCubic applies smooth easing function
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
