package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Znerf/headacheFront/internal/geo"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update profile fields. Only the given flags are sent; everything
else keeps its stored value.

Examples:
  headachectl profile set --name "Sam" --city Kathmandu --country Nepal
  headachectl profile set --lat 27.7172 --lon 85.324`,
	RunE: runProfileSet,
}

var profileLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Detect your location and save it to the profile",
	RunE:  runProfileLocate,
}

func init() {
	profileSetCmd.Flags().String("name", "", "display name")
	profileSetCmd.Flags().String("city", "", "city")
	profileSetCmd.Flags().String("state", "", "state or region")
	profileSetCmd.Flags().String("country", "", "country")
	profileSetCmd.Flags().String("lat", "", "latitude")
	profileSetCmd.Flags().String("lon", "", "longitude")

	profileLocateCmd.Flags().Bool("dry-run", false, "fill the form but do not save")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileLocateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if err := loadDashboard(e); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(e.dash.Profile)
	}
	printProfile(e.dash.Profile)
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if err := loadDashboard(e); err != nil {
		return err
	}

	form := &e.dash.ProfileForm
	if cmd.Flags().Changed("name") {
		form.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("city") {
		form.City, _ = cmd.Flags().GetString("city")
	}
	if cmd.Flags().Changed("state") {
		form.State, _ = cmd.Flags().GetString("state")
	}
	if cmd.Flags().Changed("country") {
		form.Country, _ = cmd.Flags().GetString("country")
	}
	if cmd.Flags().Changed("lat") {
		form.Latitude, _ = cmd.Flags().GetString("lat")
	}
	if cmd.Flags().Changed("lon") {
		form.Longitude, _ = cmd.Flags().GetString("lon")
	}

	if err := e.dash.SaveProfile(context.Background()); err != nil {
		printError(fmt.Errorf("%s", e.dash.ProfileStatus))
		return err
	}

	if jsonOut {
		return printJSON(e.dash.Profile)
	}
	fmt.Printf("%s %s\n", colorGreen("✓"), e.dash.ProfileStatus)
	return nil
}

func runProfileLocate(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if err := loadDashboard(e); err != nil {
		return err
	}

	e.dash.Locate(context.Background())
	if e.dash.GeoState == geo.StateFailed {
		printError(fmt.Errorf("%s", e.dash.GeoStatus))
		return fmt.Errorf("location detection failed")
	}
	fmt.Printf("%s %s\n", colorYellow("ℹ"), e.dash.GeoStatus)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Printf("Detected: city=%q state=%q country=%q lat=%s lon=%s\n",
			e.dash.ProfileForm.City, e.dash.ProfileForm.State, e.dash.ProfileForm.Country,
			e.dash.ProfileForm.Latitude, e.dash.ProfileForm.Longitude)
		return nil
	}

	if err := e.dash.SaveProfile(context.Background()); err != nil {
		printError(fmt.Errorf("%s", e.dash.ProfileStatus))
		return err
	}

	if jsonOut {
		return printJSON(e.dash.Profile)
	}
	fmt.Printf("%s %s\n", colorGreen("✓"), e.dash.ProfileStatus)
	return nil
}
