package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/qfeat/internal/log"
	"github.com/cognicore/qfeat/pkg/qfeat"
	"github.com/cognicore/qfeat/pkg/qfeat/config"
)

// Viper keys shared by all commands. Each can also be set in the --config
// file or through QFEAT_<KEY> environment variables.
const (
	keyLogLevel   = "log_level"
	keySettings   = "settings"
	keyStoplist   = "stoplist"
	keyVocabulary = "vocabulary"
	keyDB         = "db"
	keyNoClasses  = "no_semantic_classes"
)

// app carries per-invocation state so commands stay testable.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "qfeat",
		Short: "Question classification feature extraction",
		Long: `qfeat turns questions into the features a question classifier uses:
phrase chunks, named entities, tagged words with their semantic classes and
search-engine query terms. It also loads annotated question corpora and
stores each load as a run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.String("log-level", log.LevelInfo, "log level: debug, info, warn, error")
	flags.String("settings", "", "settings file providing SEMANTIC_CLASS_PATH (.properties or YAML)")
	flags.String("stoplist", "", "YAML stoplist for search-engine query terms")
	flags.String("vocabulary", "", "YAML question type vocabulary")
	flags.Bool("no-semantic-classes", false, "extract without semantic-class terms")

	a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	a.v.BindPFlag(keySettings, flags.Lookup("settings"))
	a.v.BindPFlag(keyStoplist, flags.Lookup("stoplist"))
	a.v.BindPFlag(keyVocabulary, flags.Lookup("vocabulary"))
	a.v.BindPFlag(keyNoClasses, flags.Lookup("no-semantic-classes"))

	rootCmd.AddCommand(
		a.newExtractCmd(),
		a.newLoadCmd(),
		a.newRunsCmd(),
		a.newTypesCmd(),
	)
	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return err
		}
	}

	log.SetLevel(a.v.GetString(keyLogLevel))
	if a.cfgFile != "" {
		log.Default.Debugf("using config file %s", a.v.ConfigFileUsed())
	}
	return nil
}

// extractor builds the facade from the configured files.
func (a *app) extractor(opts qfeat.Options) (*qfeat.Extractor, error) {
	loader := config.Loader{
		SettingsPath:   a.v.GetString(keySettings),
		StoplistPath:   a.v.GetString(keyStoplist),
		VocabularyPath: a.v.GetString(keyVocabulary),
		Logger:         log.Default,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default
	}
	opts.NoSemanticClasses = a.v.GetBool(keyNoClasses)
	return qfeat.FromComponents(comp, opts), nil
}

// bindDB binds the --db flag of cmd. Several commands define --db, so the
// binding happens when the command runs.
func (a *app) bindDB(cmd *cobra.Command) error {
	return a.v.BindPFlag(keyDB, cmd.Flags().Lookup("db"))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
