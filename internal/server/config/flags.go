package config

import (
	"flag"
	"os"
	"time"

	"github.com/avdeev-d/gallerykeep/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   cookie signing secret
//	-t int      session TTL, hours
//	-i string   image directory for the local sink
//	-m string   Mailtrap API key
//	-h string   public hostname for links in outbound mail
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The TTL flag
// is accepted as an integer in hours and converted to a time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-i", "-m", "-h", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CookieSecret, "s", config.CookieSecret, "cookie signing secret")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Hours()), "session TTL (in hours)")

	fs.StringVar(&config.ImageDir, "i", config.ImageDir, "image directory")
	fs.StringVar(&config.MailtrapAPIKey, "m", config.MailtrapAPIKey, "Mailtrap API key")
	fs.StringVar(&config.PublicHost, "h", config.PublicHost, "public host for links")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Hour
}
