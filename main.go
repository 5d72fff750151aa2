// Package main provides the entry point for the donation-action CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sgaunet/bullets"
	"github.com/spf13/cobra"
	"github.com/xrpdonation/donation-action/internal/action"
	"github.com/xrpdonation/donation-action/internal/logger"
	"github.com/xrpdonation/donation-action/internal/security"
	"github.com/xrpdonation/donation-action/pkg/config"
	"github.com/xrpdonation/donation-action/pkg/donation"
	"github.com/xrpdonation/donation-action/pkg/git"
	"github.com/xrpdonation/donation-action/pkg/github"
)

var (
	errTokenRequired    = errors.New("a GitHub token is required (repo-token input, --token or GITHUB_TOKEN)")
	errPRNumberRequired = errors.New("a pull request number is required (pr-number input or --pr-number)")
)

// options holds the command line flags.
type options struct {
	logLevel   string
	configPath string
	dryRun     bool
	address    string
	network    string
	prNumber   int
	token      string
}

var (
	opts options
	log  *bullets.Logger
)

var rootCmd = &cobra.Command{
	Use:   "donation-action",
	Short: "Track XRP donations on pull requests with labels",
	Long: `donation-action reads the donation target from a pull request body,
inspects its labels and latest comment, and moves the pull request through
the New, Funding and Done donation labels. When a target is first seen it
posts a comment with a donation link.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		gha := action.New()
		status, token, err := runDonation(cmd.Context(), gha)
		if err != nil {
			err = security.SanitizeErrorWithToken(err, token)
			gha.Fail(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		gha.SetStatus(status)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "info",
		"Set log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to the YAML configuration (default "+config.DefaultConfigPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "",
		"GitHub token, overrides the repo-token input and GITHUB_TOKEN")

	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Decide and report without changing the pull request")
	rootCmd.Flags().StringVar(&opts.address, "address", "", "XRP address receiving donations")
	rootCmd.Flags().StringVar(&opts.network, "network", "", "XRP Ledger network (mainnet, testnet)")
	rootCmd.Flags().IntVar(&opts.prNumber, "pr-number", 0, "Pull request number")

	rootCmd.AddCommand(labelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runDonation performs one pass over the pull request and returns the status.
// The token is returned even on failure so the error can be sanitized.
func runDonation(ctx context.Context, gha *action.Runner) (string, security.SecureToken, error) {
	log = logger.NewLogger(opts.logLevel)
	log.Info("donation-action starting...")

	inputs, err := gha.Inputs()
	if err != nil {
		return "", security.SecureToken{}, fmt.Errorf("failed to read inputs: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return "", security.SecureToken{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Debug("Configuration loaded successfully")

	inputs = applyOverrides(inputs, opts, cfg.Token)
	token := security.NewSecureToken(inputs.RepoToken)
	if token.IsEmpty() {
		return "", token, errTokenRequired
	}
	gha.Mask(token.Value())
	if inputs.PRNumber == 0 {
		return "", token, errPRNumberRequired
	}

	owner, repo, err := resolveRepository(cfg.Repository, ".")
	if err != nil {
		return "", token, err
	}

	httpClient, err := github.NewHTTPClient(ctx, token, cfg.HTTPTimeout)
	if err != nil {
		return "", token, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	client := github.NewGraphQLClient(httpClient, cfg.GraphQLURL)
	client.SetLogger(log)

	runner := donation.NewRunner(client, cfg.Taxonomy, cfg.DonationSiteURL)
	runner.SetLogger(log)
	runner.SetCommentTemplate(cfg.CommentTemplate)

	result, err := runner.Run(ctx, donation.Request{
		Owner:   owner,
		Repo:    repo,
		Number:  inputs.PRNumber,
		Address: inputs.Address,
		Network: inputs.Network,
		DryRun:  opts.dryRun,
	})
	if err != nil {
		return "", token, err
	}

	reportResult(owner, repo, inputs.PRNumber, result)
	return result.Status, token, nil
}

// applyOverrides lets command line flags win over step inputs. The token
// falls back to envToken when neither is set.
func applyOverrides(in action.Inputs, o options, envToken string) action.Inputs {
	if o.address != "" {
		in.Address = o.address
	}
	if o.network != "" {
		in.Network = o.network
	}
	if o.prNumber > 0 {
		in.PRNumber = o.prNumber
	}
	if o.token != "" {
		in.RepoToken = o.token
	}
	if in.RepoToken == "" {
		in.RepoToken = envToken
	}
	return in
}

// resolveRepository returns owner and name from slug, or from the origin
// remote of the checkout at dir when slug is empty.
func resolveRepository(slug, dir string) (string, string, error) {
	if slug == "" {
		repo, err := git.OpenRepository(dir)
		if err != nil {
			return "", "", fmt.Errorf("GITHUB_REPOSITORY is not set: %w", err)
		}
		slug, err = repo.Slug(git.DefaultRemote)
		if err != nil {
			return "", "", fmt.Errorf("failed to detect repository: %w", err)
		}
		log.Debug("Repository detected from git remote: " + slug)
	}

	owner, name, err := config.SplitRepository(slug)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse repository: %w", err)
	}
	return owner, name, nil
}

func reportResult(owner, repo string, number int, result *donation.Result) {
	if result.Target == nil {
		log.Infof("%s/%s#%d: %s", owner, repo, number, result.Status)
		return
	}
	log.Infof("%s/%s#%d (target %s): %s", owner, repo, number, result.Target.String(), result.Status)
	if result.DonationURL != "" {
		log.Info("Donation link: " + result.DonationURL)
	}
	if result.Decision.Action != donation.ActionNone && !result.Mutated {
		log.Warn("Dry run: pull request left unchanged")
	}
}
