package entity

// Outcome is the result of a successful login attempt. Artifacts are
// whatever the host hook extracted: tokens, cookies, account metadata.
// Outcomes are transient and never persisted.
type Outcome struct {
	Host      string
	AuthToken string
	Cookies   map[string]string
	Artifacts map[string]string
}
