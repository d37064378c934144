// Package repository — SQLite'a özgü ortak yardımcılar.
package repository

import "strings"

// isUniqueViolation, SQLite UNIQUE constraint hatasını tanır.
// modernc.org/sqlite yapısal bir error tipi dışarı açmaz; driver'ın
// döndürdüğü mesaj "UNIQUE constraint failed: tablo.kolon" formatındadır.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
