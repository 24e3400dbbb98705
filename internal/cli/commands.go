package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"asset-scan/internal/backend"
	"asset-scan/internal/scan"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newLoginCMD(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and print the backend cookie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := e.v.GetString(passwordFlagName)
			if password == "" {
				return errors.New("password is required, pass --password or set ASSETCTL_PASSWORD")
			}
			creds, user, err := e.client().Login(cmd.Context(), args[0], password)
			if err != nil {
				return errors.New(backend.Message(err, "login failed"))
			}
			fmt.Fprintf(e.out, "# signed in as %s\n%s\n", user.DisplayName(), creds.Cookie)
			return nil
		},
	}
	cmd.Flags().String(passwordFlagName, "", "password (or ASSETCTL_PASSWORD)")
	_ = e.v.BindPFlag(passwordFlagName, cmd.Flags().Lookup(passwordFlagName))
	return cmd
}

func newSetupCMD(e *env) *cobra.Command {
	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Manage master lists: asset-names, institutes, departments",
	}

	setupCmd.AddCommand(&cobra.Command{
		Use:   "list [key...]",
		Short: "Print master lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range args {
				if !backend.ValidSetupKey(key) {
					return errors.Errorf("unknown list %q", key)
				}
			}
			lists, problems, err := e.masterData().Load(cmd.Context(), e.creds(), args...)
			if err != nil {
				return err
			}
			keys := args
			if len(keys) == 0 {
				keys = backend.SetupKeys
			}
			for _, key := range keys {
				fmt.Fprintf(e.out, "%s:\n", key)
				for _, v := range lists[key] {
					fmt.Fprintf(e.out, "  %s\n", v)
				}
			}
			if len(problems) > 0 {
				return errors.New(strings.Join(problems, "; "))
			}
			return nil
		},
	})

	setupCmd.AddCommand(&cobra.Command{
		Use:   "add <institutes|departments> <value>",
		Short: "Add a master list entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := e.masterData().Add(cmd.Context(), e.creds(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, ch.Message)
			return nil
		},
	})

	setupCmd.AddCommand(&cobra.Command{
		Use:   "add-asset <name> <category>",
		Short: "Add an asset name with its category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := e.masterData().AddAssetName(cmd.Context(), e.creds(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, ch.Message)
			return nil
		},
	})

	setupCmd.AddCommand(&cobra.Command{
		Use:   "delete <key> <value>",
		Short: "Delete the entry exactly matching value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := e.masterData().Delete(cmd.Context(), e.creds(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, ch.Message)
			return nil
		},
	})

	return setupCmd
}

func newLookupCMD(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <registration>",
		Short: "Fetch an asset by registration number and print its form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := e.assets().Lookup(cmd.Context(), e.creds(), args[0])
			if err != nil {
				return err
			}
			return printJSON(e, map[string]any{
				"id":   loaded.Record.ID(),
				"form": loaded.Form,
			})
		},
	}
}

func newUpdateCMD(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <registration> --set field=value...",
		Short: "Change fields of one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := cmd.Flags().GetStringArray("set")
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				return errors.New("nothing to change, pass --set field=value")
			}

			svc := e.assets()
			loaded, err := svc.Lookup(cmd.Context(), e.creds(), args[0])
			if err != nil {
				return err
			}
			form := loaded.Form
			for _, s := range sets {
				field, value, ok := strings.Cut(s, "=")
				if !ok {
					return errors.Errorf("--set %q is not field=value", s)
				}
				if err := form.Set(field, value); err != nil {
					return err
				}
			}

			saved, err := svc.Save(cmd.Context(), e.creds(), loaded.Record.ID(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Updated successfully (verification date %q)\n", saved.VerificationDate)
			return nil
		},
	}
	cmd.Flags().StringArray("set", nil, "field=value to change, repeatable: --set status=repair")
	return cmd
}

func newDecodeCMD(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <image>",
		Short: "Read the QR code from an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			text, err := scan.DecodeImage(cmd.Context(), scan.NewQRDecoder(), f)
			if err != nil {
				return errors.Wrap(err, "Unable to read QR from image")
			}
			fmt.Fprintln(e.out, text)

			lookup, err := cmd.Flags().GetBool("lookup")
			if err != nil || !lookup {
				return err
			}
			loaded, err := e.assets().Lookup(cmd.Context(), e.creds(), text)
			if err != nil {
				return err
			}
			return printJSON(e, map[string]any{"id": loaded.Record.ID(), "form": loaded.Form})
		},
	}
	cmd.Flags().Bool("lookup", false, "also fetch the decoded asset")
	return cmd
}

func newImportCMD(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <xlsx>",
		Short: "Bulk update assets from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := e.imports().Import(cmd.Context(), e.creds(), f)
			if err != nil {
				return err
			}
			if len(res.Problems) > 0 {
				return errors.New(res.Message())
			}
			fmt.Fprintln(e.out, res.Message())
			for _, failure := range res.Failures {
				fmt.Fprintf(e.out, "  %s: %s\n", failure.RegistrationNumber, backend.Message(failure.Err, failure.Err.Error()))
			}
			if res.Failed() > 0 {
				return errors.Errorf("%d rows failed", res.Failed())
			}
			return nil
		},
	}
}

func printJSON(e *env, v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
