// Package models — Channel domain modeli.
package models

import "time"

// ChannelType, kanal tipini temsil eder.
type ChannelType string

// İzin verilen kanal tipleri.
const (
	ChannelTypeText  ChannelType = "text"
	ChannelTypeVoice ChannelType = "voice"
)

// Sunucu oluşturulurken açılan default kanal isimleri.
const (
	DefaultTextChannelName  = "General"
	DefaultVoiceChannelName = "General Voice"
)

// Channel, bir sunucuya bağlı kanalı temsil eder.
// Bu serviste kanallar yalnızca sunucu oluşturma sırasında açılır;
// kanal CRUD'u kapsam dışıdır.
type Channel struct {
	ID        string      `json:"id"`
	ServerID  string      `json:"server_id"`
	Name      string      `json:"name"`
	Type      ChannelType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}
