package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"bookmanager/internal/gateway"

	"github.com/spf13/cobra"
)

var (
	createName  string
	createEmail string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List and manage backend users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGateway()
		if err != nil {
			return err
		}
		users, err := client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
		return w.Flush()
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if createName == "" || createEmail == "" {
			return fmt.Errorf("--name and --email are required")
		}
		client, err := newGateway()
		if err != nil {
			return err
		}
		user, err := client.CreateUser(cmd.Context(), createName, createEmail)
		if err != nil {
			if errors.Is(err, gateway.ErrConflict) {
				return fmt.Errorf("a user with email %s already exists", createEmail)
			}
			return err
		}
		fmt.Printf("Created user %s (%s)\n", user.Name, user.ID)
		return nil
	},
}

var usersRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGateway()
		if err != nil {
			return err
		}
		if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("User deleted.")
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&createName, "name", "", "user name")
	usersCreateCmd.Flags().StringVar(&createEmail, "email", "", "user email")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersRmCmd)
	rootCmd.AddCommand(usersCmd)
}
