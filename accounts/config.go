package accounts

// Config for the account admin surface.
type Config struct {
	AdminTokens string `env:"ADMIN_TOKENS"`
	Collection  string `env:"ACCOUNTS_COLLECTION" envDefault:"accounts"`
}
