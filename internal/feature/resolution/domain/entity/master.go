package entity

import "time"

// MasterSymbol represents one row of the local securities master.
// It is static reference data backing the optional local-map source,
// not resolution state.
type MasterSymbol struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Type      string    `gorm:"size:50;not null;default:'Common Stock'"`
	IsActive  bool      `gorm:"not null;default:true"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
