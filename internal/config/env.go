package config

import (
	"os"

	"github.com/cli/go-gh/v2/pkg/auth"
)

const botTokenEnv = "GITHUB_BOT_TOKEN"

// ResolveSecrets looks up tokens for host. The main token comes from
// GH_TOKEN / GITHUB_TOKEN or the gh CLI login; the bot token only from
// GITHUB_BOT_TOKEN.
func ResolveSecrets(host, repo string) Secrets {
	token, _ := auth.TokenForHost(host)
	return Secrets{
		Token:    token,
		Repo:     repo,
		BotToken: os.Getenv(botTokenEnv),
	}
}

// DefaultHost returns the GitHub host the gh CLI is configured for
func DefaultHost() string {
	host, _ := auth.DefaultHost()
	return host
}
