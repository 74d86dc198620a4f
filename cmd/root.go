package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "vaga-responder"
)

type Config struct {
	OwnerID      int64         `mapstructure:"owner-id"`
	BotTokenFile string        `mapstructure:"bot-token-file"`
	ProfilesDir  string        `mapstructure:"profiles-dir"`
	Profile      string        `mapstructure:"profile"`
	SentLog      string        `mapstructure:"sent-log"`
	Ingest       *IngestConfig `mapstructure:"ingest"`
	Watch        *WatchConfig  `mapstructure:"watch"`
	Dedup        *DedupConfig  `mapstructure:"dedup"`
	Mail         *MailConfig   `mapstructure:"mail"`
	Notify       *NotifyConfig `mapstructure:"notify"`
	Enrich       *EnrichConfig `mapstructure:"enrich"`
}

type IngestConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type WatchConfig struct {
	Chats   string `mapstructure:"chats"`
	Exclude string `mapstructure:"exclude"`
}

type DedupConfig struct {
	Mode       string `mapstructure:"mode"`
	WindowDays int    `mapstructure:"window-days"`
}

type MailConfig struct {
	From            string      `mapstructure:"from"`
	SubjectPrefix   string      `mapstructure:"subject-prefix"`
	SubjectFallback string      `mapstructure:"subject-fallback"`
	Signature       string      `mapstructure:"signature"`
	Template        string      `mapstructure:"template"`
	AutoSend        bool        `mapstructure:"auto-send"`
	IncludeJobURL   bool        `mapstructure:"include-job-url"`
	AppendSource    bool        `mapstructure:"append-source"`
	RelatedTag      bool        `mapstructure:"related-tag"`
	CVPath          string      `mapstructure:"cv-path"`
	LinkedIn        string      `mapstructure:"linkedin"`
	GitHub          string      `mapstructure:"github"`
	SMTP            *SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	PasswordFile string `mapstructure:"password-file"`
}

type NotifyConfig struct {
	Rejected    bool `mapstructure:"rejected"`
	IncludeURLs bool `mapstructure:"include-urls"`
}

type EnrichConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	TimeoutMS int  `mapstructure:"timeout-ms"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "vaga-responder watches Telegram chats for job postings and answers the matching ones by email",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("bot-token-file", "VAGA_BOT_TOKEN_FILE"); err != nil {
		log.Fatalf("binding VAGA_BOT_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is vaga-responder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" && checkCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config.withDefaults(), nil
}

// withDefaults fills in everything the operator may omit.
func (c *Config) withDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.ProfilesDir == "" {
		c.ProfilesDir = "profiles"
	}
	if c.Profile == "" {
		c.Profile = "default"
	}
	if c.SentLog == "" {
		c.SentLog = "data/sent-log.json"
	}
	if c.Ingest == nil {
		c.Ingest = &IngestConfig{}
	}
	if c.Ingest.Addr == "" {
		c.Ingest.Addr = ":8080"
	}
	if c.Watch == nil {
		c.Watch = &WatchConfig{Chats: "*"}
	}
	if c.Dedup == nil {
		c.Dedup = &DedupConfig{}
	}
	if c.Dedup.Mode == "" {
		c.Dedup.Mode = "to"
	}
	if c.Dedup.WindowDays == 0 {
		c.Dedup.WindowDays = 30
	}
	if c.Mail == nil {
		c.Mail = &MailConfig{}
	}
	if c.Mail.SubjectPrefix == "" {
		c.Mail.SubjectPrefix = "Aplicação"
	}
	if c.Mail.SubjectFallback == "" {
		c.Mail.SubjectFallback = "Desenvolvedor"
	}
	if c.Mail.Template == "" {
		c.Mail.Template = "padrao"
	}
	if c.Notify == nil {
		c.Notify = &NotifyConfig{Rejected: false, IncludeURLs: true}
	}
	if c.Enrich == nil {
		c.Enrich = &EnrichConfig{}
	}
	if c.Enrich.TimeoutMS == 0 {
		c.Enrich.TimeoutMS = 6000
	}

	return c
}
