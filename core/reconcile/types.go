package reconcile

import (
	"fmt"

	"geotree/core/taxonomy"
)

// Item is one external record mapped into the local schema.
type Item struct {
	Name   string
	Fields taxonomy.Fields
}

// Namer derives the name of a non-default translation.
type Namer func(langcode string, fields taxonomy.Fields) string

// Outcome describes what CreateOrUpdate did with one item.
type Outcome struct {
	// TermID is the id of the created or updated term.
	TermID uint `json:"term_id"`
	// Created is true when no term matched and a new one was inserted.
	Created bool `json:"created"`
	// Translations lists the non-default langcodes that were written.
	Translations []string `json:"translations"`
}

// ActionType represents the type of a planned write.
type ActionType string

const (
	// ActionCreate inserts a new term.
	ActionCreate ActionType = "create"
	// ActionUpdate overwrites an existing term and regenerates its translations.
	ActionUpdate ActionType = "update"
)

// Action represents a planned write for one item.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the reconciliation key (the default language name).
	Key string `json:"key"`

	// TermID is the term that would be updated. Zero for creates.
	TermID uint `json:"term_id,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains the actions an import would perform.
type Plan struct {
	// Actions contains one planned write per item.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalItems is the number of items planned.
	TotalItems int `json:"total_items"`

	// Creates counts items without a matching term.
	Creates int `json:"creates"`

	// Updates counts items matching an existing term.
	Updates int `json:"updates"`

	// Duplicates counts items whose name matches more than one term.
	Duplicates int `json:"duplicates"`
}

// PersistenceError is returned when the store rejects part of a reconciliation.
type PersistenceError struct {
	// Op is the failed step (query, load, languages, translate, save_translation, save).
	Op string
	// Name is the reconciliation key of the item.
	Name string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
