package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"evalgo.org/vcfcompat/internal/aria"
	"evalgo.org/vcfcompat/internal/catalog"
	"evalgo.org/vcfcompat/internal/version"
	"evalgo.org/vcfcompat/models"
)

// addAriaFlags registers the Aria Operations connection flags on cmd.
func addAriaFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("host", "H", "", "Aria Operations hostname, IP or URL")
	f.StringP("username", "u", "", "Aria Operations username")
	f.StringP("domain", "d", "", "authentication source (e.g. LOCAL)")
	f.StringP("password", "p", "", "Aria Operations password (prompted when empty)")
	f.Bool("no-verify-ssl", false, "skip TLS certificate verification")
}

// applyAriaFlags copies explicitly set connection flags over the loaded
// configuration.
func applyAriaFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("host") {
		cfg.Aria.Host, _ = f.GetString("host")
	}
	if f.Changed("username") {
		cfg.Aria.Username, _ = f.GetString("username")
	}
	if f.Changed("domain") {
		cfg.Aria.Domain, _ = f.GetString("domain")
	}
	if f.Changed("password") {
		cfg.Aria.Password, _ = f.GetString("password")
	}
	if f.Changed("no-verify-ssl") {
		cfg.Aria.Insecure, _ = f.GetBool("no-verify-ssl")
	}
}

func newAriaClient() (*aria.Client, error) {
	if cfg.Aria.Host == "" {
		return nil, fmt.Errorf("aria host is required (--host or VC_ARIA_HOST)")
	}
	if cfg.Aria.Username == "" {
		return nil, fmt.Errorf("aria username is required (--username or VC_ARIA_USERNAME)")
	}
	if cfg.Aria.Password == "" {
		password, err := promptPassword(cfg.Aria.Username)
		if err != nil {
			return nil, err
		}
		cfg.Aria.Password = password
	}

	creds := aria.Credentials{
		Username: cfg.Aria.Username,
		Domain:   cfg.Aria.Domain,
		Password: cfg.Aria.Password,
	}
	return aria.New(cfg.Aria.BaseURL(), creds,
		aria.WithInsecureSkipVerify(cfg.Aria.Insecure),
		aria.WithTimeout(cfg.Aria.Timeout),
		aria.WithPageSize(cfg.Aria.PageSize),
		aria.WithUserAgent(version.Get().UserAgent()),
	)
}

func newCatalogClient() (*catalog.Client, error) {
	return catalog.New(cfg.Catalog.URL,
		catalog.WithProgram(cfg.Catalog.Program),
		catalog.WithLimit(cfg.Catalog.Limit),
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithRateLimit(cfg.Catalog.RateLimit, cfg.Catalog.Burst),
		catalog.WithUserAgent(version.Get().UserAgent()),
	)
}

// collectInventory authenticates against Aria Operations and reads the host
// inventory. Only an authentication failure is returned as an error; hosts
// that cannot be read are logged and left out.
func collectInventory(ctx context.Context) (models.Inventory, error) {
	client, err := newAriaClient()
	if err != nil {
		return nil, err
	}

	log.WithField("host", cfg.Aria.Host).Info("authenticating with Aria Operations")
	if err := client.Authenticate(ctx); err != nil {
		return nil, err
	}
	log.Info("authentication successful")

	hosts, err := client.ListHosts(ctx)
	if err != nil {
		log.WithError(err).Warn("host list is incomplete")
	}
	log.WithField("hosts", len(hosts)).Info("found ESXi hosts")

	inv, err := client.CollectInventory(ctx, hosts)
	for _, e := range multierr.Errors(err) {
		log.WithError(e).Warn("host skipped")
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	log.WithFields(log.Fields{"models": len(inv), "hosts": inv.HostCount()}).Info("found unique server models")

	return inv, nil
}

func promptPassword(username string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("aria password is required (--password or VC_ARIA_PASSWORD)")
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(string(b))
	if password == "" {
		return "", fmt.Errorf("aria password is required")
	}
	return password, nil
}

// colorEnabled reports whether w is a terminal that can show ANSI colors.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
