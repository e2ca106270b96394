package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"panda-menu/internal/config"
	"panda-menu/internal/logger"
	"panda-menu/internal/release"
)

var (
	cfgPath     string
	version     string
	source      string
	dir         string
	buildCmd    string
	packageJSON string
	publish     bool
)

var rootCmd = &cobra.Command{
	Use:   "release",
	Short: "Package the built panda-menu script into a versioned release",
	Long: `release copies the built script into the release directory as
<name>-<version>.js, writes metadata-<version>.json with SRI digests and
adds the version to versions.json. Artifacts can also be published to an
S3-compatible bucket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRelease,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfgPath, "config", "configs", "directory containing config.yaml")
	f.StringVar(&version, "version", "", "release version (default: version from package.json)")
	f.StringVar(&source, "source", "", "built script to release (default: release.source)")
	f.StringVar(&dir, "dir", "", "release directory (default: release.dir)")
	f.StringVar(&buildCmd, "build-cmd", "", "command run before packaging (default: release.build_cmd)")
	f.StringVar(&packageJSON, "package-json", "", "package.json to read the version from (default: release.package_json)")
	f.BoolVar(&publish, "publish", false, "upload artifacts to the configured S3 bucket")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRelease(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", cfgPath, err)
	}

	appLogger, err := logger.NewLogger(cfg.Logger, "panda-menu-release")
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer appLogger.Sync()

	rc := cfg.Release
	if source == "" {
		source = rc.Source
	}
	if dir == "" {
		dir = rc.Dir
	}
	if buildCmd == "" {
		buildCmd = rc.BuildCmd
	}
	if packageJSON == "" {
		packageJSON = rc.PackageJSON
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if version == "" {
		if version, err = release.ReadPackageVersion(packageJSON); err != nil {
			return err
		}
	}
	if _, err := release.ParseVersion(version); err != nil {
		return err
	}
	appLogger.Info("Preparing release", zap.String("name", rc.Name), zap.String("version", version))

	if buildCmd != "" {
		if err := release.RunBuild(ctx, buildCmd, appLogger); err != nil {
			return err
		}
	}

	var opts []release.Option
	if publish {
		if !rc.S3.Enabled {
			return fmt.Errorf("--publish requires release.s3.enabled")
		}
		opts = append(opts, release.WithPublisher(release.NewS3Publisher(rc.S3, appLogger)))
	}

	res, err := release.NewPackager(rc.Name, dir, appLogger, opts...).Release(ctx, version, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Release %s complete.\n\n", res.Metadata.Version)
	fmt.Fprintln(out, "To include with SRI, use:")
	fmt.Fprintln(out, res.ScriptTag())
	return nil
}
