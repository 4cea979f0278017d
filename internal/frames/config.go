package frames

// Config is the embedded widget's bootstrap configuration, built once per
// orchestration run after the customer has authenticated
type Config struct {
	APIKey    string
	AuthToken string // "Bearer <token>"
	APIBase   string // SDK API base + "/instore"
	LogLevel  string
}
