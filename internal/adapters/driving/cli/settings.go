package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-hub/internal/adapters/driven/auth"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure provider credentials and search defaults.

Environment variables GITHUB_TOKEN and EXA_API_KEY take precedence over the
stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Configure the GitHub token",
	RunE:  runSettingsGitHub,
}

var settingsExaCmd = &cobra.Command{
	Use:   "exa",
	Short: "Configure the Exa API key",
	RunE:  runSettingsExa,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Keys: " + strings.Join(settableKeys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

var settableKeys = []string{
	auth.KeyGitHubToken,
	keyGitHubBaseURL,
	auth.KeyExaAPIKey,
	keyExaBaseURL,
	keyPerPage,
}

// perPageChoices are offered by the wizard.
var perPageChoices = []int{10, 25, 50, 100}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsGitHubCmd)
	settingsCmd.AddCommand(settingsExaCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	creds := auth.Resolve(configStore)

	cmd.Println("[GitHub]")
	printSecret(cmd, "Token", creds.GitHubToken, auth.EnvGitHubToken, auth.KeyGitHubToken)
	printBaseURL(cmd, configStore.GetString(keyGitHubBaseURL), "https://api.github.com/")
	cmd.Println()

	cmd.Println("[Exa]")
	printSecret(cmd, "API Key", creds.ExaAPIKey, auth.EnvExaAPIKey, auth.KeyExaAPIKey)
	printBaseURL(cmd, configStore.GetString(keyExaBaseURL), "https://api.exa.ai")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Results per page: %d\n", defaultPerPage())
	cmd.Println()

	if !creds.HasPrimary() {
		cmd.Println("Warning: no GitHub token configured.")
		cmd.Println("Run 'sercha-hub settings github' or set GITHUB_TOKEN.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func printSecret(cmd *cobra.Command, label, value, env, key string) {
	if value == "" {
		cmd.Printf("  %s: (not set)\n", label)
		return
	}
	source := auth.Source(configStore, os.LookupEnv, env, key)
	if source == "env" {
		source = env
	}
	cmd.Printf("  %s: %s (from %s)\n", label, maskAPIKey(value), source)
}

func printBaseURL(cmd *cobra.Command, value, fallback string) {
	if value == "" {
		value = fallback + " (default)"
	}
	cmd.Printf("  Base URL: %s\n", value)
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}

	cmd.Println("sercha-hub Settings Wizard")
	cmd.Println("==========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: GitHub Token")
	cmd.Println("--------------------")
	if err := configureSecret(cmd, reader, "GitHub token", auth.KeyGitHubToken, true); err != nil {
		return err
	}
	cmd.Println()

	cmd.Println("Step 2: Exa API Key (optional, enables --enrich)")
	cmd.Println("------------------------------------------------")
	if err := configureSecret(cmd, reader, "Exa API key", auth.KeyExaAPIKey, false); err != nil {
		return err
	}
	cmd.Println()

	cmd.Println("Step 3: Results per page")
	cmd.Println("------------------------")
	for i, n := range perPageChoices {
		cmd.Printf("  %d. %d\n", i+1, n)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(perPageChoices), 1)
	if err := configStore.Set(keyPerPage, perPageChoices[idx-1]); err != nil {
		return fmt.Errorf("failed to save per page: %w", err)
	}
	cmd.Printf("Results per page set to %d\n\n", perPageChoices[idx-1])

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Printf("Settings saved to %s\n", configStore.Path())
	return nil
}

func runSettingsGitHub(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}
	return configureSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "GitHub token", auth.KeyGitHubToken, true)
}

func runSettingsExa(cmd *cobra.Command, _ []string) error {
	if err := ensureConfig(); err != nil {
		return err
	}
	return configureSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "Exa API key", auth.KeyExaAPIKey, true)
}

// configureSecret prompts for a secret and stores it. A blank answer keeps
// the current value unless required is set and nothing is stored yet.
func configureSecret(cmd *cobra.Command, reader *bufio.Reader, label, key string, required bool) error {
	current := configStore.GetString(key)
	if current != "" {
		cmd.Printf("Enter %s [%s]: ", label, maskAPIKey(current))
	} else {
		cmd.Printf("Enter %s: ", label)
	}
	value := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()

	if value == "" {
		if current == "" && required {
			return fmt.Errorf("%s is required", label)
		}
		cmd.Printf("%s unchanged\n", label)
		return nil
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", label, err)
	}
	cmd.Printf("%s saved\n", label)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], strings.TrimSpace(args[1])
	if !isSettable(key) {
		return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(settableKeys, ", "))
	}
	if err := ensureConfig(); err != nil {
		return err
	}

	var value any = raw
	if key == keyPerPage {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return errors.New("search.per_page must be an integer between 1 and 100")
		}
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !isSettable(key) {
		return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(settableKeys, ", "))
	}
	if err := ensureConfig(); err != nil {
		return err
	}
	if err := configStore.Delete(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	cmd.Printf("Removed %s\n", key)
	return nil
}

func isSettable(key string) bool {
	for _, k := range settableKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise it
// reads a line from reader.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
