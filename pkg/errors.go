// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız, karşılaştırma string yerine errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Service katmanı bu error'ları fmt.Errorf("%w: detay", ...) ile sarıp döner,
// handler katmanı response.go'daki mapping ile HTTP status'a çevirir.
package pkg

import "errors"

// Domain-level error'lar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)

// Davet kullanımına özel error'lar.
//
// Redeem akışındaki her ön koşulun ayrı bir error'ı vardır, böylece
// caller "kod geçersiz" ile "kod tükendi"yi ayırt edebilir.
// Hepsi handler katmanında 4xx'e map edilir; beklenmeyen store hataları
// ErrInternal gibi 500 döner.
var (
	ErrInviteInvalid   = errors.New("invalid invite")
	ErrInviteExhausted = errors.New("invite exhausted")
	ErrInviteExpired   = errors.New("invite expired")
	ErrAlreadyMember   = errors.New("already a member")
	ErrInvalidRole     = errors.New("invalid role")
	ErrConstraint      = errors.New("constraint violation")
)
