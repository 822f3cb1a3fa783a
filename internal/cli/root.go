// Package cli implements the headachectl command line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/client"
	"github.com/Znerf/headacheFront/internal/dashboard"
	"github.com/Znerf/headacheFront/internal/geo"
	"github.com/Znerf/headacheFront/internal/session"
)

var (
	cfgFile string
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "headachectl",
	Short: "Track daily headaches from the terminal",
	Long: `headachectl talks to the headache tracker API: log daily entries,
browse your history, manage your profile and check the weather at your
location.

Examples:
  headachectl signup --email you@example.com --name "You"
  headachectl login you@example.com
  headachectl dashboard
  headachectl log --headache --start 09:30 --end 11:00
  headachectl records --page 2`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.headachectl.yaml)")
	rootCmd.PersistentFlags().String("api-url", "http://localhost:8088", "base URL of the tracker API")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print raw JSON instead of tables")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".headachectl")
	}

	viper.SetEnvPrefix("HEADACHE")
	viper.AutomaticEnv()

	viper.SetDefault("geocoder_url", geo.DefaultGeocoderURL)
	viper.SetDefault("ip_locator_url", geo.DefaultIPLocatorURL)
	viper.SetDefault("session_file", filepath.Join(home, ".headachectl-session.json"))
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("geolocation", "ip")

	_ = viper.ReadInConfig()
}

// env bundles everything a command needs: the API client, the session store
// and a dashboard wired for terminal use.
type env struct {
	logger internal.Logger
	store  session.Store
	api    *client.Client
	dash   *dashboard.Dashboard
}

func newEnv() (*env, error) {
	logger, err := internal.NewLogger(viper.GetString("log_level"))
	if err != nil {
		return nil, err
	}

	store := session.NewFileStore(viper.GetString("session_file"))
	api := client.New(viper.GetString("api_url"), store, logger)

	// "ip" resolves position via the IP locator; "off" models a platform
	// with no geolocation capability.
	var position geo.PositionProvider
	if viper.GetString("geolocation") == "ip" {
		position = geo.NewIPLocator(viper.GetString("ip_locator_url"), logger)
	}

	dash := dashboard.New(dashboard.Config{
		API:      api,
		Session:  store,
		Logger:   logger,
		Navigate: func(route string) {
			if route == dashboard.RouteLogin {
				fmt.Fprintln(os.Stderr, "Not logged in. Run: headachectl login <email>")
			}
		},
		Position: position,
		Geocoder: geo.NewGeocoder(viper.GetString("geocoder_url"), logger),
	})

	return &env{logger: logger, store: store, api: api, dash: dash}, nil
}

// Output helpers shared by the commands.

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

func colorGreen(s string) string  { return "\033[32m" + s + "\033[0m" }
func colorYellow(s string) string { return "\033[33m" + s + "\033[0m" }
func colorRed(s string) string    { return "\033[31m" + s + "\033[0m" }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
