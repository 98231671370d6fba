// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService — это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом в симуляции.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Float64 возвращает число в диапазоне [0, 1).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Symmetric возвращает число в диапазоне [-amplitude, amplitude).
func (s *PRNGService) Symmetric(amplitude float64) float64 {
	return (s.rng.Float64()*2 - 1) * amplitude
}
