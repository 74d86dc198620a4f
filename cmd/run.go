package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/dedup"
	"github.com/vagabr/vaga-responder/internal/email"
	"github.com/vagabr/vaga-responder/internal/enrich"
	"github.com/vagabr/vaga-responder/internal/ingest"
	"github.com/vagabr/vaga-responder/internal/logger"
	"github.com/vagabr/vaga-responder/internal/mailer"
	"github.com/vagabr/vaga-responder/internal/profile"
	"github.com/vagabr/vaga-responder/internal/responder"
	"github.com/vagabr/vaga-responder/internal/salary"
	"github.com/vagabr/vaga-responder/internal/secrets"
	"github.com/vagabr/vaga-responder/internal/telegram"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the vaga-responder main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("no-ingest", false, "do not start the HTTP ingest server even when enabled in the config")
	runCmd.Flags().String("profile", "", "profile to activate on start, overrides the config")

	viper.BindPFlag("profile", runCmd.Flags().Lookup("profile"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the vaga-responder", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.OwnerID == 0 {
		logger.Warn("owner-id is not set, operator notifications are disabled")
	}

	botToken, err := resolveBotToken(config)
	if err != nil {
		logger.Fatal(
			"loading bot token",
			zap.Error(err),
			zap.String("hint", "set VAGA_BOT_TOKEN_FILE environment variable or the 'bot-token-file' key in the configuration file"),
		)
	}

	profiles := profile.NewManager(config.ProfilesDir, config.Profile)
	if _, err := profiles.SetActive(config.Profile); err != nil {
		logger.Fatal("loading the active profile",
			zap.String("profile", config.Profile),
			zap.Error(err),
		)
	}

	store, err := dedup.Open(config.SentLog, config.Dedup.WindowDays, logger)
	if err != nil {
		logger.Fatal("opening the sent log", zap.Error(err))
	}

	sender, err := buildMailer(config, logger)
	if err != nil {
		logger.Fatal("configuring smtp", zap.Error(err))
	}

	var enricher responder.Enricher
	if config.Enrich.Enabled {
		enricher = enrich.New(time.Duration(config.Enrich.TimeoutMS)*time.Millisecond, logger)
	}

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token:   botToken,
		OwnerID: config.OwnerID,
		Watch:   config.Watch.Chats,
		Exclude: config.Watch.Exclude,
	}, profiles, logger)
	if err != nil {
		logger.Fatal("connecting to telegram", zap.Error(err))
	}

	resp := responder.New(responder.Deps{
		Profiles: profiles,
		Scorer:   profile.NewScorer(salary.New(salary.Config{})),
		Builder:  buildEmailBuilder(config),
		Store:    store,
		Sender:   sender,
		Notifier: bot.Notifier(config.Notify.IncludeURLs),
		Enricher: enricher,
		Logger:   logger,
	}, responder.Options{
		AutoSend:       config.Mail.AutoSend,
		Template:       email.ParseTemplateID(config.Mail.Template),
		DedupMode:      dedup.ParseMode(config.Dedup.Mode),
		WindowDays:     config.Dedup.WindowDays,
		AppendSource:   config.Mail.AppendSource,
		RelatedTag:     config.Mail.RelatedTag,
		NotifyRejected: config.Notify.Rejected,
	})
	bot.SetProcessor(resp)

	logger.Info("watching chats",
		zap.String("chats", config.Watch.Chats),
		zap.String("exclude", config.Watch.Exclude),
		zap.String("profile", profiles.Active()),
		zap.String("dedup_mode", config.Dedup.Mode),
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	noIngest := cmd.Flag("no-ingest").Value.String() == "true"
	if config.Ingest.Enabled && !noIngest {
		srv := ingest.NewServer(resp, logger)
		go func() {
			errCh <- srv.Run(ctx, config.Ingest.Addr)
		}()
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("exiting", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "shutdown signal"))
}

func resolveBotToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.BotTokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("bot-token-file"))
	}

	if tokenFile == "" {
		return "", errors.New("telegram bot token file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "telegram bot token",
		File: tokenFile,
	})
}

func buildMailer(config *Config, logger *zap.Logger) (*mailer.Mailer, error) {
	smtp := config.Mail.SMTP
	if smtp == nil || smtp.Host == "" {
		return nil, errors.New("mail.smtp.host is required")
	}

	password, err := secrets.Load(secrets.Source{
		Name: "smtp password",
		File: smtp.PasswordFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading smtp password: %w", err)
	}

	from := config.Mail.From
	if from == "" {
		from = smtp.User
	}

	return mailer.New(mailer.Config{
		Host:           smtp.Host,
		Port:           smtp.Port,
		User:           smtp.User,
		Password:       password,
		From:           from,
		AttachmentPath: config.Mail.CVPath,
	}, logger), nil
}

func buildEmailBuilder(config *Config) *email.Builder {
	return &email.Builder{
		SubjectPrefix:   config.Mail.SubjectPrefix,
		SubjectFallback: config.Mail.SubjectFallback,
		Signature:       config.Mail.Signature,
		IncludeJobURL:   config.Mail.IncludeJobURL,
		Links: email.Links{
			LinkedIn: config.Mail.LinkedIn,
			GitHub:   config.Mail.GitHub,
		},
	}
}
