// Package models — Server domain modeli.
//
// Server, bir topluluğu (community) temsil eder. Sahiplik bilgisi burada
// değil memberships tablosunda tutulur (role='owner' satırı) — yetki
// kontrolleri her zaman üyelik kaydı üzerinden yapılır.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Server, sunucu verisini temsil eder.
type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateServerRequest, yeni sunucu oluşturma isteği.
type CreateServerRequest struct {
	Name string `json:"name"`
}

// Validate, CreateServerRequest kontrolü.
func (r *CreateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("server name must be between 1 and 100 characters")
	}
	return nil
}

// UpdateServerRequest, sunucu yeniden adlandırma isteği.
type UpdateServerRequest struct {
	Name string `json:"name"`
}

// Validate, UpdateServerRequest kontrolü.
func (r *UpdateServerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("server name must be between 1 and 100 characters")
	}
	return nil
}
