package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/qdm12/allowlist-updater/internal/config"
	"github.com/qdm12/allowlist-updater/internal/healthchecksio"
	"github.com/qdm12/allowlist-updater/internal/models"
	"github.com/qdm12/allowlist-updater/internal/network"
	"github.com/qdm12/allowlist-updater/internal/noop"
	jsonparams "github.com/qdm12/allowlist-updater/internal/params"
	"github.com/qdm12/allowlist-updater/internal/persistence"
	"github.com/qdm12/allowlist-updater/internal/provider/constants"
	"github.com/qdm12/allowlist-updater/internal/provider/providers/cloudsql"
	"github.com/qdm12/allowlist-updater/internal/provider/providers/gcpfirewall"
	"github.com/qdm12/allowlist-updater/internal/provider/providers/securitygroup"
	"github.com/qdm12/allowlist-updater/internal/provider/utils"
	"github.com/qdm12/allowlist-updater/internal/shoutrrr"
	"github.com/qdm12/allowlist-updater/internal/update"
	"github.com/qdm12/allowlist-updater/pkg/publicip"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)

	errorCh := make(chan error)
	go func() {
		errorCh <- _main(ctx, reader, os.Args, logger, buildInfo, time.Now)
	}()

	select {
	case <-ctx.Done():
		stop()
		logger.Warn("Caught OS signal, shutting down")
	case err := <-errorCh:
		stop()
		close(errorCh)
		cancel()
		if err == nil {
			os.Exit(0)
		}
		logger.Error(err.Error())
		os.Exit(1)
	}

	const shutdownGracePeriod = 5 * time.Second
	timer := time.NewTimer(shutdownGracePeriod)
	select {
	case err := <-errorCh:
		if !timer.Stop() {
			<-timer.C
		}
		if err != nil {
			logger.Error(err.Error())
		}
		logger.Info("Shutdown successful")
	case <-timer.C:
		logger.Warn("Shutdown timed out")
	}

	cancel()
	os.Exit(1)
}

var ErrTargetsFailed = errors.New("some targets failed to update")

func _main(ctx context.Context, reader *reader.Reader, args []string, logger log.LoggerInterface,
	buildInfo models.BuildInformation, timeNow func() time.Time) (err error) {
	if len(args) > 1 {
		switch args[1] {
		case "version", "-version", "--version":
			fmt.Println(buildInfo.VersionString())
			return nil
		}
	}

	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	shoutrrrSettings := shoutrrr.Settings{
		Addresses:    config.Shoutrrr.Addresses,
		DefaultTitle: config.Shoutrrr.DefaultTitle,
		Logger:       logger.New(log.SetComponent("shoutrrr")),
	}
	shoutrrrClient, err := shoutrrr.New(shoutrrrSettings)
	if err != nil {
		return fmt.Errorf("setting up Shoutrrr: %w", err)
	}

	jsonReader := jsonparams.NewReader(logger)
	targets, err := jsonReader.JSONTargets(*config.Paths.ConfigFile)
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return err
	}

	client := &http.Client{Timeout: config.Client.Timeout}
	defer client.CloseIdleConnections()

	hioClient := healthchecksio.New(client, config.Health.HealthchecksioBaseURL,
		*config.Health.HealthchecksioUUID)
	pingHealthchecksio(ctx, hioClient, logger, healthchecksio.Start)

	err = updateAllowlists(ctx, config, targets, client, shoutrrrClient, logger, timeNow)
	pingHealthchecksio(context.Background(), hioClient, logger, healthchecksio.ExitState(err))
	return err
}

func updateAllowlists(ctx context.Context, config config.Config, targets models.Targets,
	client *http.Client, shoutrrrClient *shoutrrr.Client, logger log.LoggerInterface,
	timeNow func() time.Time) (err error) {
	if *config.Logger.Level == log.LevelDebug {
		client = network.MakeLogClient(client, logger.New(log.SetComponent("http client")))
	}

	ipGetter, err := publicip.NewFetcher(
		config.PubIP.ToHTTPSettings(client),
		config.PubIP.ToDNSSettings())
	if err != nil {
		return fmt.Errorf("creating public IP fetcher: %w", err)
	}

	providers := createProviders(ctx, targets, logger, timeNow)
	logProvidersCount(len(providers), logger)

	cache := persistence.NewCache(targets.CacheFile)
	updater := update.New(ipGetter, cache, providers, shoutrrrClient, logger)

	summary, err := updater.Run(ctx)
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return err
	}

	failed := summary.Failed()
	if len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTargetsFailed,
			len(failed), len(summary.Results))
	}

	return nil
}

func pingHealthchecksio(ctx context.Context, hioClient *healthchecksio.Client,
	logger log.LoggerInterface, state healthchecksio.State) {
	const timeout = 3 * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := hioClient.Ping(ctx, state)
	if err != nil {
		logger.Error("pinging healthchecks.io: " + err.Error())
	}
}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "allowlist-updater",
		Emails:     []string{"quentin.mcgaw@gmail.com"},
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
		// Sponsor information
		PaypalUser:    "qmcgaw",
		GithubSponsor: "qdm12",
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader, logger)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)
	logger.Info(config.String())

	return config, nil
}

func logProvidersCount(providersCount int, logger log.LeveledLogger) {
	switch providersCount {
	case 0:
		logger.Warn("Found no allowlist to update")
	case 1:
		logger.Info("Found a single allowlist kind to update")
	default:
		logger.Info("Found " + strconv.Itoa(providersCount) + " allowlist kinds to update")
	}
}

// createProviders creates the provider adapters in their update order,
// skipping the ones without target. An adapter which cannot be set up,
// for example due to missing credentials, is replaced by a no-op
// provider reporting its targets as skipped.
func createProviders(ctx context.Context, targets models.Targets,
	logger log.LoggerInterface, timeNow func() time.Time) (
	providers []update.Provider) {
	gcp := targets.GCP
	if !gcp.Empty() {
		googleOptions, err := utils.GoogleClientOptions(ctx, gcp.CredentialsFile)

		if len(gcp.FirewallRules) > 0 {
			providerLogger := logger.New(log.SetComponent(string(constants.GCPFirewall)))
			var api *gcpfirewall.ComputeAPI
			apiErr := err
			if apiErr == nil {
				api, apiErr = gcpfirewall.NewAPI(ctx, googleOptions...)
			}
			if apiErr != nil {
				providers = append(providers, noop.New(constants.GCPFirewall,
					gcp.FirewallRules, apiErr, providerLogger))
			} else {
				providers = append(providers, gcpfirewall.New(gcp.ProjectID,
					gcp.FirewallRules, api, providerLogger))
			}
		}

		if len(gcp.SQLInstances) > 0 {
			providerLogger := logger.New(log.SetComponent(string(constants.CloudSQL)))
			var api *cloudsql.SQLAdminAPI
			apiErr := err
			if apiErr == nil {
				api, apiErr = cloudsql.NewAPI(ctx, googleOptions...)
			}
			if apiErr != nil {
				providers = append(providers, noop.New(constants.CloudSQL,
					gcp.SQLInstances, apiErr, providerLogger))
			} else {
				providers = append(providers, cloudsql.New(gcp.ProjectID,
					gcp.SQLInstances, api, providerLogger, timeNow))
			}
		}
	}

	aws := targets.AWS
	if aws.Empty() {
		return providers
	}

	api, apiErr := securitygroup.NewAPI(ctx, aws.Region, aws.Profile)
	groupTargets := []struct {
		name    models.Provider
		targets models.SecurityGroupTargets
	}{
		{name: constants.SSHGroups, targets: aws.SSH},
		{name: constants.DatabaseGroups, targets: aws.Database},
	}
	for _, groupTarget := range groupTargets {
		if len(groupTarget.targets.Groups) == 0 {
			continue
		}
		providerLogger := logger.New(log.SetComponent(string(groupTarget.name)))
		if apiErr != nil {
			providers = append(providers, noop.New(groupTarget.name,
				groupIDs(groupTarget.targets.Groups), apiErr, providerLogger))
			continue
		}
		providers = append(providers, securitygroup.New(groupTarget.name,
			groupTarget.targets, api, providerLogger))
	}

	return providers
}

func groupIDs(groups []models.SecurityGroup) (ids []string) {
	ids = make([]string, len(groups))
	for i, group := range groups {
		ids[i] = group.ID
	}
	return ids
}
