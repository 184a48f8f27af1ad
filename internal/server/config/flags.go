package config

import (
	"flag"
	"os"
	"time"

	"github.com/degreedialog/advisor/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   document store connection string
//	-n string   document store name
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-p string   LLM provider ("gemini" or "openai")
//	-m string   startup mode ("fail-fast" or "degrade")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-s", "-t", "-r", "-p", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.StoreURI, "d", config.StoreURI, "document store connection string")
	fs.StringVar(&config.StoreName, "n", config.StoreName, "document store name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.LLMProvider, "p", config.LLMProvider, "LLM provider (gemini or openai)")
	fs.StringVar(&config.StartupMode, "m", config.StartupMode, "startup mode (fail-fast or degrade)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
}
