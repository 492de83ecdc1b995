package main

import (
	"fmt"
	"os"

	"github.com/blackcoderx/pigeon/pkg/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	envCmd.AddCommand(envImportCmd)
	rootCmd.AddCommand(importCmd, exportCmd, envCmd)
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge a YAML bundle of requests and environments into the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		bundle, err := storage.ReadBundle(data)
		if err != nil {
			return err
		}

		_, logger := newLogger(cmd.ErrOrStderr())
		store := openStore(logger)
		coll, err := store.LoadOrCreate()
		if err != nil {
			return err
		}
		coll.Merge(bundle)
		if err := store.Save(coll); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d requests and %d environments into %s\n",
			len(bundle.Requests), len(bundle.Environments), store.Dir)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the collection as a single YAML bundle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger := newLogger(cmd.ErrOrStderr())
		store := openStore(logger)
		if !store.Exists() {
			return fmt.Errorf("no collection at %s", store.Dir)
		}
		coll, err := store.Load()
		if err != nil {
			return err
		}
		data, err := storage.WriteBundle(coll)
		if err != nil {
			return err
		}
		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(exportOutput, data, 0644)
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage collection environments",
}

var envImportCmd = &cobra.Command{
	Use:   "import NAME FILE",
	Short: "Create or replace an environment from a .env file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		env, err := storage.EnvironmentFromDotenv(args[0], f)
		if err != nil {
			return err
		}

		_, logger := newLogger(cmd.ErrOrStderr())
		store := openStore(logger)
		coll, err := store.LoadOrCreate()
		if err != nil {
			return err
		}
		_, replaced := coll.EnvironmentByName(env.Name)
		coll.Merge(storage.Collection{Environments: []storage.Environment{env}})
		if err := store.Save(coll); err != nil {
			return err
		}
		verb := "created"
		if replaced {
			verb = "replaced"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Environment '%s' %s with %d values\n", env.Name, verb, len(env.Values))
		return nil
	},
}
