package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ngodocs/internal/buildinfo"
	"github.com/cleared-dev/ngodocs/internal/config"
	"github.com/cleared-dev/ngodocs/internal/document"
	"github.com/cleared-dev/ngodocs/internal/id"
	"github.com/cleared-dev/ngodocs/internal/locale"
	"github.com/cleared-dev/ngodocs/internal/logging"
)

// ConfigEnv names the environment variable that points at the config file.
const ConfigEnv = "NGODOCS_CONFIG"

// skipConfig marks commands that run without loading ngodocs.yaml.
const skipConfig = "ngodocs/skip-config"

// app is the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *slog.Logger
	gen *id.Generator
	now func() time.Time
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{now: time.Now})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ngodocs",
		Short:   "Formatted receipts, minutes and resolutions for NGOs",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $"+ConfigEnv+" or ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newKindsCommand())
	rootCmd.AddCommand(newWordsCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newBatchCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)
	if a.gen == nil {
		a.gen = id.NewGenerator(nil)
	}
	if cmd.Annotations[skipConfig] != "" {
		return nil
	}

	cfg, path, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		a.log.Debug("loaded config", "path", path)
	}
	a.cfg = cfg
	return nil
}

// loadConfig resolves the config path from the flag, the environment or the
// working directory. A missing default file yields the built-in defaults.
func loadConfig(flagPath string) (*config.Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	cfg, err := config.Load(config.FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return cfg, config.FileName, nil
}

func (a *app) composer() *document.Composer {
	loc := locale.India{Symbol: a.cfg.Locale.CurrencySymbol, Unit: a.cfg.Locale.CurrencyName}
	f := a.cfg.Forms
	return document.NewComposer(loc, document.Defaults{
		PaymentMode:          f.PaymentMode,
		MembershipType:       f.MembershipType,
		Designation:          f.Designation,
		AuthorityDesignation: f.AuthorityDesignation,
		MeetingTime:          f.MeetingTime,
		ValidityDays:         f.ValidityDays,
	})
}

// prefill returns the configured organization values for the fields kind k has.
func (a *app) prefill(k document.Kind) map[string]string {
	org := a.cfg.Organization
	candidates := map[string]string{
		"org_name":            org.Name,
		"registration_number": org.RegistrationNumber,
		"authority_name":      org.AuthorityName,
	}
	out := make(map[string]string)
	for _, f := range document.Fields(k) {
		if v := candidates[f.Name]; v != "" {
			out[f.Name] = v
		}
	}
	return out
}
