package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rvasani/shopcopilot/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session token",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, err := promptLine("Username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	res, err := backend.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := credsStore.Save(&auth.Context{Token: res.Token, Username: res.Username}); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", res.Username)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, err := promptLine("Username: ")
	if err != nil {
		return err
	}
	email, err := promptLine("Email (optional): ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	res, err := backend.Register(cmd.Context(), username, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	if err := credsStore.Save(&auth.Context{Token: res.Token, Username: res.Username}); err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s\n", res.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := credsStore.Delete(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
