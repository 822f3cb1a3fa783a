package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Znerf/headacheFront/internal/client"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	signupCmd.Flags().String("email", "", "account email")
	signupCmd.Flags().String("password", "", "password, 8+ characters (prompted when omitted)")
	signupCmd.Flags().String("name", "", "display name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		if password, err = readPassword("Password: "); err != nil {
			return err
		}
	}

	resp, err := e.api.Login(context.Background(), client.LoginRequest{
		Email:    args[0],
		Password: password,
	})
	if err != nil {
		printError(err)
		return err
	}

	if err := e.store.SetTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(resp.User)
	}
	fmt.Printf("%s Logged in as %s\n", colorGreen("✓"), resp.User.Email)
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		if password, err = readPassword("Password (8+ characters): "); err != nil {
			return err
		}
	}

	resp, err := e.api.SignUp(context.Background(), client.SignUpRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		printError(err)
		return err
	}

	if err := e.store.SetTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(resp.User)
	}
	fmt.Printf("%s Account created for %s\n", colorGreen("✓"), resp.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	e.dash.Logout(context.Background())

	if !jsonOut {
		fmt.Printf("%s Logged out\n", colorGreen("✓"))
	}
	return nil
}
