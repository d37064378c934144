// Package models — Invite domain modeli.
//
// Invite, bir sunucuya katılmak için kullanılan davet kodunu temsil eder.
// Kod sunucu başına benzersiz 8 karakterlik hex string'dir. Uses alanı
// KALAN kullanım hakkını tutar — her başarılı redemption'da 1 azalır,
// 0'a inince davet tükenmiştir ve bir daha canlandırılamaz.
package models

import (
	"fmt"
	"strings"
	"time"
)

// InviteCodeLength, davet kodunun sabit uzunluğu.
const InviteCodeLength = 8

// invitePrefix, dışa dönük composite davet string'inin ön eki.
const invitePrefix = "invite::"

// Invite, bir davet kodunu temsil eder.
type Invite struct {
	ID        string `json:"id"`
	ServerID  string `json:"server_id"`
	Code      string `json:"code"`
	CreatorID string `json:"creator_id"`
	Uses      int    `json:"uses"`       // kalan kullanım hakkı
	ExpiresAt int64  `json:"expires_at"` // unix saniye, 0 = süresiz
	CreatedAt int64  `json:"created_at"` // unix saniye
}

// Expired, davetin verilen ana göre süresinin dolup dolmadığını döner.
// ExpiresAt = 0 süresiz demektir, hiçbir zaman expire olmaz.
func (i *Invite) Expired(now time.Time) bool {
	return i.ExpiresAt > 0 && i.ExpiresAt < now.Unix()
}

// String, dışa dönük composite davet temsilini döner:
// "invite::<8-karakter-kod>:<server-uuid>". Client'lar bu string'i
// paylaşır; redeem endpoint'i ParseInviteString ile geri çözer.
func (i *Invite) String() string {
	return fmt.Sprintf("%s%s:%s", invitePrefix, i.Code, i.ServerID)
}

// ParseInviteString, composite davet string'ini (code, serverID) çiftine
// çözer. Format dışı her girdi hata döner.
func ParseInviteString(s string) (code, serverID string, err error) {
	if !strings.HasPrefix(s, invitePrefix) {
		return "", "", fmt.Errorf("invite string must start with %q", invitePrefix)
	}

	rest := strings.TrimPrefix(s, invitePrefix)
	code, serverID, ok := strings.Cut(rest, ":")
	if !ok || code == "" || serverID == "" {
		return "", "", fmt.Errorf("invite string must be of form %scode:server_id", invitePrefix)
	}
	if len(code) != InviteCodeLength {
		return "", "", fmt.Errorf("invite code must be %d characters", InviteCodeLength)
	}

	return code, serverID, nil
}

// InviteWithCreator, daveti oluşturan kullanıcının bilgisiyle birlikte döner.
type InviteWithCreator struct {
	Invite
	CreatorUsername string `json:"creator_username"`
}

// CreateInviteRequest, yeni bir davet kodu oluşturma isteği.
//
// Code boş bırakılırsa service rastgele 8 karakterlik kod üretir.
// ExpiresAt unix saniyedir, 0 = süresiz. MaxUses davetin kaç kez
// kullanılabileceğini belirler (en az 1 — uses kalan hakkı tuttuğu
// için 0 "tükenmiş" anlamına gelir, "sınırsız" değil).
type CreateInviteRequest struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
	MaxUses   int    `json:"max_uses"`
}

// Validate, CreateInviteRequest kontrolü.
func (r *CreateInviteRequest) Validate() error {
	if r.MaxUses < 1 {
		return fmt.Errorf("max_uses must be at least 1")
	}
	if r.ExpiresAt < 0 {
		return fmt.Errorf("expires_at cannot be negative")
	}
	if r.Code != "" {
		if len(r.Code) != InviteCodeLength {
			return fmt.Errorf("invite code must be exactly %d characters", InviteCodeLength)
		}
		for _, ch := range r.Code {
			if !((ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')) {
				return fmt.Errorf("invite code can only contain lowercase letters and digits")
			}
		}
	}
	return nil
}

// RedeemInviteRequest, davet kullanma isteği. Composite string
// ("invite::code:server_id") kabul eder.
type RedeemInviteRequest struct {
	Invite string `json:"invite"`
}
