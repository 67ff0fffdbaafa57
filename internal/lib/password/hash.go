// Package password реализует хеширование и проверку паролей на bcrypt.
//
// Hasher хранит стоимость bcrypt: в продакшене она выше, чем при разработке.
// bcrypt сам добавляет случайную соль к каждому хешу, а сравнение выполняется
// за постоянное время. bcrypt принимает не больше 72 байт, поэтому пароль
// сначала сворачивается в base64 от SHA-256 (44 байта).
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Стоимость bcrypt по умолчанию для разных окружений.
const (
	ProdCost = 12
	DevCost  = 10
)

// Hasher хеширует и сравнивает пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher создает Hasher. Стоимость вне диапазона bcrypt заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword(prehash("dummy-password-for-timing"), cost)
	return &Hasher{cost: cost, dummy: dummy}
}

// CostFor возвращает стоимость bcrypt для окружения env, если явная стоимость не задана.
func CostFor(env string, configured int) int {
	if configured > 0 {
		return configured
	}
	if env == "prod" {
		return ProdCost
	}
	return DevCost
}

// Cost возвращает используемую стоимость bcrypt.
func (h *Hasher) Cost() int {
	return h.cost
}

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func (h *Hasher) GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func (h *Hasher) CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), prehash(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CompareDummy выполняет сравнение с фиктивным хешем, чтобы ответ для
// несуществующего пользователя занимал столько же времени, сколько и для существующего.
func (h *Hasher) CompareDummy(externalPassword string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, prehash(externalPassword))
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
