package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vagabr/vaga-responder/internal/logger"
	"github.com/vagabr/vaga-responder/internal/match"
	"github.com/vagabr/vaga-responder/internal/profile"
	"github.com/vagabr/vaga-responder/internal/role"
	"github.com/vagabr/vaga-responder/internal/salary"
)

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Classify one job posting against a profile without sending anything",
	Long: "Classify a posting passed as an argument (or piped on stdin) and print the verdict, " +
		"the salary score, the detected emails and the inferred role.",
	Run: func(cmd *cobra.Command, args []string) {
		check(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("profile", "p", "", "profile to classify against, prompts when unset")
}

func check(cmd *cobra.Command, args []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	text, err := readCheckText(args)
	if err != nil {
		logger.Fatal("reading the posting text", zap.Error(err))
	}

	name := cmd.Flag("profile").Value.String()
	if name == "" {
		name, err = pickProfile(config.ProfilesDir)
		if err != nil {
			logger.Fatal("choosing a profile", zap.Error(err))
		}
	}

	p, err := profile.Load(config.ProfilesDir, name)
	if err != nil {
		logger.Fatal("loading the profile", zap.String("profile", name), zap.Error(err))
	}

	salaries := salary.New(salary.Config{})
	scorer := profile.NewScorer(salaries)
	verdict := scorer.Classify(text, p)

	fmt.Printf("profile:  %s (%s)\n", name, p.Title)
	if verdict.Matched {
		fmt.Printf("verdict:  match (%s)\n", verdict.Tier)
	} else {
		fmt.Printf("verdict:  rejected — %s\n", verdict.Reason)
	}

	if value, score, ok := salaries.Score(text); ok {
		fmt.Printf("salary:   %d (score %d)\n", value, score)
	} else {
		fmt.Println("salary:   none detected")
	}

	emails := match.ExtractEmails(text)
	if len(emails) > 0 {
		fmt.Printf("emails:   %s\n", strings.Join(emails, ", "))
	} else {
		fmt.Println("emails:   none detected")
	}

	fmt.Printf("role:     %s\n", role.Infer(text, p.Title, config.Mail.SubjectFallback))
}

func readCheckText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text given: pass it as an argument or pipe it on stdin")
	}
	return text, nil
}

func pickProfile(dir string) (string, error) {
	names, err := profile.List(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no profiles found under %s", dir)
	}

	prompt := promptui.Select{
		Label: "Choose a profile",
		Items: names,
	}

	_, name, err := prompt.Run()
	return name, err
}
