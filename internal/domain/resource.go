package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResourceType identifies the kind of material a node yields.
type ResourceType string

// Built-in resource types. The economy table may define more.
const (
	ResourceKelp  ResourceType = "kelp"
	ResourceRock  ResourceType = "rock"
	ResourcePearl ResourceType = "pearl"
	ResourceCoral ResourceType = "coral"
)

// DisplayName returns a human readable name, e.g. "sea_glass" -> "Sea Glass".
func (r ResourceType) DisplayName() string {
	// Casers carry state and must not be shared across goroutines
	return cases.Title(language.English).String(strings.ReplaceAll(string(r), "_", " "))
}

// Normalize lowercases and trims a resource type received from outside the engine.
func (r ResourceType) Normalize() ResourceType {
	return ResourceType(strings.ToLower(strings.TrimSpace(string(r))))
}

// Position is a world coordinate supplied by the external placement collaborator.
// The engine stores it but never interprets it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
