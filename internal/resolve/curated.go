package resolve

import "github.com/halvard/docstamp/internal/models"

// StandardTags is the tag vocabulary heuristic inference draws from.
// Curated entries may use additional project-specific tags.
var StandardTags = map[string]struct{}{
	// Audience
	"user": {}, "developer": {}, "architect": {}, "devops": {}, "admin": {},
	// Topic
	"nostr": {}, "authentication": {}, "messaging": {}, "channels": {},
	"security": {}, "deployment": {},
	// Type
	"guide": {}, "reference": {}, "tutorial": {}, "concept": {}, "api": {}, "config": {},
	// Feature
	"dm": {}, "search": {}, "calendar": {}, "zones": {}, "pwa": {},
	// Specific
	"architecture": {}, "adr": {}, "ddd": {}, "documentation": {},
}

// Curated maps repository-relative paths to hand-authored records. These
// take precedence over heuristic inference and are returned verbatim.
var Curated = map[string]models.Record{
	"adr/002-three-tier-hierarchy.md": {
		Title:       "ADR-002: Three-Tier BBS Hierarchy",
		Description: "Decision to use three-tier hierarchy (Zone/Section/Forum) for BBS organization",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "architecture", "channels", "design", "nostr"},
		Difficulty:  models.DifficultyAdvanced,
	},
	"adr/003-gcp-cloud-run-infrastructure.md": {
		Title:       "ADR-003: GCP Cloud Run Infrastructure",
		Description: "Decision to deploy relay on Google Cloud Run with PostgreSQL storage",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "deployment", "devops", "gcp", "infrastructure"},
		Difficulty:  models.DifficultyAdvanced,
	},
	"adr/004-zone-based-access-control.md": {
		Title:       "ADR-004: Zone-Based Access Control",
		Description: "Decision to implement zone-based cohort access control using admin whitelists",
		Category:    models.CategoryReference,
		Tags:        []string{"access-control", "adr", "admin", "security", "zones"},
		Difficulty:  models.DifficultyAdvanced,
	},
	"adr/005-nip-44-encryption-mandate.md": {
		Title:       "ADR-005: NIP-44 Encryption Mandate",
		Description: "Decision to mandate NIP-44 encryption for all new encrypted content",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "encryption", "nip-44", "nostr", "security"},
		Difficulty:  models.DifficultyAdvanced,
	},
	"adr/006-client-side-wasm-search.md": {
		Title:       "ADR-006: Client-Side WASM Search",
		Description: "Decision to implement client-side semantic search using WASM and HNSW indexing",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "performance", "pwa", "search", "wasm"},
		Difficulty:  models.DifficultyAdvanced,
	},
	"adr/007-sveltekit-ndk-frontend.md": {
		Title:       "ADR-007: SvelteKit + NDK Frontend",
		Description: "Decision to use SvelteKit with NDK for frontend development",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "architecture", "frontend", "ndk", "svelte"},
		Difficulty:  models.DifficultyIntermediate,
	},
	"adr/008-postgresql-relay-storage.md": {
		Title:       "ADR-008: PostgreSQL Relay Storage",
		Description: "Decision to use PostgreSQL for relay event storage with strfry",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "database", "postgresql", "relay", "storage"},
		Difficulty:  models.DifficultyAdvanced,
	},
	"adr/009-user-registration-flow.md": {
		Title:       "ADR-009: User Registration Flow",
		Description: "Decision on simplified user registration with password-based key derivation",
		Category:    models.CategoryReference,
		Tags:        []string{"adr", "authentication", "registration", "security", "user"},
		Difficulty:  models.DifficultyIntermediate,
	},
}
