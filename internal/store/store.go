package store

import (
	"errors"
	"time"
)

// DefaultDBPath is the default relative path for the SQLite ledger.
// Open() creates the parent dir (e.g. .sawinhet).
const DefaultDBPath = ".sawinhet/sawinhet.db"

// ErrNotFound is returned by Get for an unknown conversion ID.
var ErrNotFound = errors.New("store: conversion not found")

// Conversion is one ledger entry: a flat record that was turned into a
// certificate document.
type Conversion struct {
	ID          string    `json:"id"`
	LeadCode    string    `json:"lead_code"`
	InputKey    string    `json:"input_key"`
	OutputPath  string    `json:"output_path"`
	Images      int       `json:"images"`
	PDFBytes    int64     `json:"pdf_bytes"`
	OutputBytes int64     `json:"output_bytes"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListOptions narrows List. Zero values mean no filter and no limit.
type ListOptions struct {
	LeadCode string
	Limit    int
}

// Store is the persistence facade for the conversion ledger.
// Domain and CLI use only this interface; implementation is SQLite or in-memory.
type Store interface {
	// Save records c. An empty ID or zero CreatedAt is filled in and
	// written back to c.
	Save(c *Conversion) error
	Get(id string) (*Conversion, error)
	// List returns conversions newest first.
	List(opts ListOptions) ([]*Conversion, error)
	Close() error
}
