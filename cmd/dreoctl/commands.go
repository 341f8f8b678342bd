package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dreoctl/dreocloud"
	"github.com/dreoctl/dreocloud/internal/config"
)

var (
	tokenFlag      string
	timeoutSeconds int
	jsonOutput     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Access token (overrides saved credentials)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Per-attempt request timeout in seconds")

	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print raw JSON attributes")
	setCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print raw JSON attributes")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cleanTokenCmd)
}

// resolveToken returns the token to use: the --token flag if given,
// otherwise the saved credentials.
func resolveToken() (string, error) {
	if tokenFlag != "" {
		return tokenFlag, nil
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if registry.Token() == "" {
		return "", fmt.Errorf("no access token saved - run 'dreoctl login' or pass --token")
	}
	return registry.Token(), nil
}

func newSession() *dreocloud.DeviceSession {
	session := dreocloud.NewDeviceSession()
	if timeoutSeconds > 0 {
		session.SetTimeout(time.Duration(timeoutSeconds) * time.Second)
	}
	return session
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a Dreo access token",
	Long: `Prompt for a Dreo access token and save it to the config file.

The token may carry a region suffix ("<secret>:EU"); the suffix selects
the regional endpoint and is stripped before the token is transmitted.
The token is stored with user-only file permissions.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Print("Access token: ")
	tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	// Validate before saving so a typoed suffix fails here, not later
	region, _, err := dreocloud.ParseToken(token)
	if err != nil {
		return err
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	registry.SetToken(token)
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Token saved (region: %s).\n", region)
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status <device-id>",
	Short: "Query the current status of a device",
	Example: `  # Query a device
  dreoctl status fan-1234

  # Raw attribute JSON
  dreoctl status fan-1234 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	token, err := resolveToken()
	if err != nil {
		return err
	}

	status, err := newSession().QueryStatus(cmd.Context(), token, args[0])
	if err != nil {
		return err
	}

	return printStatus(status)
}

var setCmd = &cobra.Command{
	Use:   "set <device-id> <key=value>...",
	Short: "Update device attributes",
	Long: `Update one or more device attributes and print the resulting status.

Values are parsed as booleans or numbers where possible, otherwise
sent as strings.`,
	Example: `  # Turn a fan on at speed 3
  dreoctl set fan-1234 poweron=true windlevel=3`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	token, err := resolveToken()
	if err != nil {
		return err
	}

	attributes, err := parseAttributes(args[1:])
	if err != nil {
		return err
	}

	status, err := newSession().UpdateStatus(cmd.Context(), token, args[0], attributes)
	if err != nil {
		return err
	}

	return printStatus(status)
}

// parseAttributes turns key=value arguments into typed attribute values.
func parseAttributes(pairs []string) (map[string]any, error) {
	attributes := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid attribute %q (expected key=value)", pair)
		}

		switch {
		case value == "true" || value == "false":
			attributes[key] = value == "true"
		default:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				attributes[key] = n
			} else {
				attributes[key] = value
			}
		}
	}
	return attributes, nil
}

func printStatus(status *dreocloud.DeviceStatus) error {
	if jsonOutput {
		data, err := json.MarshalIndent(status.Attributes, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Device:    %s\n", status.DeviceID)
	fmt.Printf("Timestamp: %s\n", status.Timestamp.Format(time.RFC3339))
	for key, value := range status.Attributes {
		fmt.Printf("  %-16s %v\n", key, value)
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream pushed device events",
	Long: `Connect to the regional websocket endpoint and print pushed device
events until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	token, err := resolveToken()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := dreocloud.NewWebSocketClient(token)
	client.OnMessage = func(message []byte) {
		fmt.Println(string(message))
	}
	client.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "Stream error: %v\n", err)
	}
	client.OnClose = func(code int, reason string) {
		fmt.Fprintf(os.Stderr, "Stream closed (code=%d reason=%q)\n", code, reason)
		stop()
	}

	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Disconnect()

	fmt.Fprintln(os.Stderr, "Watching for events (Ctrl-C to stop)...")
	<-ctx.Done()
	return nil
}

var cleanTokenCmd = &cobra.Command{
	Use:   "clean-token <token>",
	Short: "Print the sanitized form of a token",
	Long: `Strip the region suffix from a token and print the result.

Useful when a token must be passed to another tool that expects the
bare secret.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(dreocloud.CleanToken(args[0]))
		return nil
	},
}
