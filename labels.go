package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xrpdonation/donation-action/internal/logger"
	"github.com/xrpdonation/donation-action/internal/security"
	"github.com/xrpdonation/donation-action/internal/ui"
	"github.com/xrpdonation/donation-action/pkg/config"
	"github.com/xrpdonation/donation-action/pkg/donation"
	"github.com/xrpdonation/donation-action/pkg/github"
)

var errLabelsDeclined = errors.New("label creation declined")

var assumeYes bool

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Create the donation labels missing from the repository",
	Long: `labels checks that the repository defines the New, Funding and Done
donation labels and creates the missing ones, using the colors and
descriptions from the configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLabels(cmd.Context())
	},
}

func init() {
	labelsCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Create missing labels without asking")
}

func runLabels(ctx context.Context) error {
	log = logger.NewLogger(opts.logLevel)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tokenValue := opts.token
	if tokenValue == "" {
		tokenValue = cfg.Token
	}
	token := security.NewSecureToken(tokenValue)
	if token.IsEmpty() {
		return errTokenRequired
	}

	owner, repo, err := resolveRepository(cfg.Repository, ".")
	if err != nil {
		return err
	}

	httpClient, err := github.NewHTTPClient(ctx, token, cfg.HTTPTimeout)
	if err != nil {
		return security.SanitizeErrorWithToken(fmt.Errorf("failed to create HTTP client: %w", err), token)
	}
	client, err := github.NewRESTClient(httpClient, cfg.APIURL)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	client.SetLogger(log)

	var prompter ui.Prompter = ui.NewSurveyPrompter()
	if assumeYes {
		prompter = ui.AutoConfirm{}
	}

	created, err := ensureLabels(ctx, client, prompter, owner, repo, cfg.File)
	if err != nil {
		return security.SanitizeErrorWithToken(err, token)
	}
	if len(created) == 0 {
		log.Info("All donation labels are present")
		return nil
	}
	log.Infof("Created %d label(s)", len(created))
	return nil
}

// ensureLabels creates the donation labels missing from owner/repo after
// confirmation and returns the names it created.
func ensureLabels(
	ctx context.Context,
	mgr github.LabelManager,
	prompter ui.Prompter,
	owner, repo string,
	file config.File,
) ([]string, error) {
	existing, err := mgr.ListLabelNames(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	missing := donation.MissingLabelNames(existing, file.Taxonomy)
	if len(missing) == 0 {
		return nil, nil
	}

	ok, err := prompter.Confirm(ui.CreateLabelsMessage(owner+"/"+repo, missing))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errLabelsDeclined
	}

	byName := make(map[string]donation.Stage, len(donation.Stages()))
	for _, stage := range donation.Stages() {
		byName[file.Taxonomy.LabelName(stage)] = stage
	}

	created := make([]string, 0, len(missing))
	for _, name := range missing {
		style := file.LabelStyles[byName[name]]
		log.Info("Creating label " + name)
		err := mgr.CreateLabel(ctx, owner, repo, github.NewLabel{
			Name:        name,
			Color:       style.Color,
			Description: style.Description,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create label %s: %w", name, err)
		}
		created = append(created, name)
	}

	return created, nil
}
