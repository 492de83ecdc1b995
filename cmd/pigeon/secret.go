package main

import (
	"errors"
	"fmt"

	"github.com/blackcoderx/pigeon/pkg/auth"
	"github.com/blackcoderx/pigeon/pkg/global"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	secretValue string
	oauthParams auth.OAuth2Params
)

func init() {
	secretSetCmd.Flags().StringVar(&secretValue, "value", "", "secret value (prompted for when omitted)")

	f := secretOAuthCmd.Flags()
	f.StringVar(&oauthParams.Flow, "flow", auth.FlowClientCredentials, "grant type: client_credentials or password")
	f.StringVar(&oauthParams.TokenURL, "token-url", "", "token endpoint")
	f.StringVar(&oauthParams.ClientID, "client-id", "", "client id")
	f.StringVar(&oauthParams.ClientSecret, "client-secret", "", "client secret")
	f.StringSliceVar(&oauthParams.Scopes, "scope", nil, "requested scopes")
	f.StringVar(&oauthParams.Username, "username", "", "resource owner username (password flow)")
	f.StringVar(&oauthParams.Password, "password", "", "resource owner password (password flow)")

	secretCmd.AddCommand(secretSetCmd, secretListCmd, secretRmCmd, secretOAuthCmd)
	rootCmd.AddCommand(secretCmd)
}

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage global secrets referenced by environments",
}

var secretSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Store a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		value := secretValue
		if value == "" {
			err := huh.NewInput().
				Title(fmt.Sprintf("Value for %s", name)).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("value cannot be empty")
					}
					return nil
				}).
				Value(&value).
				Run()
			if err != nil {
				return err
			}
		}

		return withGlobalState(func(state *global.State) error {
			state.Set(name, value)
			fmt.Fprintf(cmd.OutOrStdout(), "Secret '%s' saved\n", name)
			return nil
		})
	},
}

var secretListCmd = &cobra.Command{
	Use:   "list",
	Short: "List secret names",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := globalDir()
		if err != nil {
			return err
		}
		state, err := global.Load(dir)
		if err != nil {
			return err
		}
		for _, name := range state.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var secretRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGlobalState(func(state *global.State) error {
			if !state.Delete(args[0]) {
				return fmt.Errorf("secret '%s' not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Secret '%s' removed\n", args[0])
			return nil
		})
	},
}

var secretOAuthCmd = &cobra.Command{
	Use:   "oauth NAME",
	Short: "Fetch an OAuth2 access token and store it as a secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := auth.FetchToken(cmd.Context(), oauthParams)
		if err != nil {
			return err
		}
		return withGlobalState(func(state *global.State) error {
			state.Set(args[0], token.AccessToken)
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved as secret '%s' (%s)\n", args[0], auth.Describe(token))
			return nil
		})
	},
}

// withGlobalState loads the global state, applies fn and saves the result.
func withGlobalState(fn func(*global.State) error) error {
	dir, err := globalDir()
	if err != nil {
		return err
	}
	state, err := global.Load(dir)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return global.Save(dir, state)
}
