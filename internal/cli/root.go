// Package cli implements assetctl, the command-line twin of the web app.
package cli

import (
	"io"
	"strings"

	"asset-scan/internal/asset"
	"asset-scan/internal/backend"
	"asset-scan/internal/config"
	"asset-scan/internal/importer"
	"asset-scan/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	backendFlagName     = "backend"
	cookieFlagName      = "cookie"
	concurrencyFlagName = "concurrency"
	passwordFlagName    = "password"
)

// env wires services from the resolved flags and ASSETCTL_* variables.
type env struct {
	v   *viper.Viper
	out io.Writer
}

func (e *env) client() *backend.Client {
	return backend.New(strings.TrimRight(e.v.GetString(backendFlagName), "/"))
}

func (e *env) creds() backend.Credentials {
	return backend.Credentials{Cookie: e.v.GetString(cookieFlagName)}
}

func (e *env) masterData() *service.MasterDataService {
	return &service.MasterDataService{Backend: e.client()}
}

func (e *env) assets() *service.AssetService {
	return &service.AssetService{Backend: e.client(), Today: asset.Today}
}

func (e *env) imports() *service.ImportService {
	return &service.ImportService{Runner: &importer.Runner{
		Backend: e.client(),
		Limit:   e.v.GetInt(concurrencyFlagName),
		Today:   asset.Today,
	}}
}

func NewRootCMD(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("assetctl")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(backendFlagName, config.DefaultBackendURL)

	e := &env{v: v, out: out}

	rootCmd := &cobra.Command{
		Use:   "assetctl",
		Short: "Inventory asset verification from the command line",
		Long: `assetctl talks to the inventory backend the same way the web app does:
master lists, registration lookups, QR decoding and spreadsheet imports.
Sign in with 'assetctl login' and pass the printed cookie with --cookie or ASSETCTL_COOKIE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.String(backendFlagName, config.DefaultBackendURL, "inventory backend base URL")
	flags.String(cookieFlagName, "", "backend session cookie, as printed by 'assetctl login'")
	flags.Int(concurrencyFlagName, 0, "max concurrent row updates during import, 0 for unbounded")
	_ = v.BindPFlags(flags)

	rootCmd.AddCommand(
		newLoginCMD(e),
		newSetupCMD(e),
		newLookupCMD(e),
		newUpdateCMD(e),
		newDecodeCMD(e),
		newImportCMD(e),
	)
	return rootCmd
}
