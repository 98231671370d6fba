// internal/utils/math.go
package utils

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// Clamp ограничивает значение диапазоном [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InverseLerp возвращает положение v между from и to в долях (без ограничения)
func InverseLerp(from, to, v float64) float64 {
	if from == to {
		return 1
	}
	return (v - from) / (to - from)
}
