package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runShowConfig,
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	RunE:  runInitConfig,
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)

	initConfigCmd.Flags().String("path", "config.yaml", "file to create")
	initConfigCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	shown := *cfg
	if shown.Aria.Password != "" {
		shown.Aria.Password = "********"
	}

	data, err := yaml.Marshal(&shown)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

const defaultConfig = `# vcfcompat configuration

aria:
  host: aria.example.com
  username: admin
  domain: LOCAL
  # password is prompted when empty; VC_ARIA_PASSWORD also works
  password: ""
  insecure: false
  page_size: 1000
  timeout: 60s

catalog:
  url: https://compatibilityguide.broadcom.com/compguide/programs/viewResults
  program: server
  limit: 20
  timeout: 30s
  rate_limit: 2
  burst: 1
  concurrency: 1

check:
  target_release: ESXi 9.0
  output: server_export.csv
  format: table

logging:
  level: info
  format: text
  output: stderr
`

func runInitConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
	return nil
}
