package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/capture-arbiter/arbiter"
	"github.com/spance/capture-arbiter/arbiter/catalog"
	"github.com/spance/capture-arbiter/arbiter/consent"
	"github.com/spance/capture-arbiter/arbiter/definitions"
	"github.com/spance/capture-arbiter/arbiter/frames"
	"github.com/spance/capture-arbiter/arbiter/hardware"
	"github.com/spance/capture-arbiter/arbiter/helper"
	"github.com/spance/capture-arbiter/config"
	"github.com/spance/capture-arbiter/utils"
	"github.com/spf13/cobra"
)

// Flags holds the per-invocation values from the command line.
type Flags struct {
	ConfigFile  string
	Audio       string
	Video       string
	RequestType string
	AudioDevice string
	VideoDevice string
	Origin      string
	ListDevices bool

	// Overrides for config values, applied only when the flag was set.
	CatalogFile string
	Lang        string
	Consent     string
	Hardware    bool
	Watch       bool
	Debug       bool
}

var flags = &Flags{}

var rootCmd = &cobra.Command{
	Use:   "capture-arbiter",
	Short: "Decide which capture devices a page may use",
	Long: `capture-arbiter resolves a single microphone, camera, tab or desktop
capture request against the attached devices and prints the granted devices.
Without --audio/--video it reads one request per line from stdin.`,
	Example: `  # Microphone and camera with default devices
  capture-arbiter --audio mic --video camera

  # Ask for a specific microphone
  capture-arbiter --audio mic --audio-device 3f1c0a6e9b2d

  # Pepper style open of one camera
  capture-arbiter --video camera --request-type pepper

  # Whole desktop with system audio
  capture-arbiter --audio desktop --video desktop

  # Use devices from a file and reload it on change
  capture-arbiter --catalog devices.yaml --watch

  # Probe real hardware and list it
  capture-arbiter --hardware --list-devices`,
	SilenceUsage: true,
	RunE:         run,
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config",
		getEnv("CAPTURE_ARBITER_CONFIG", ""),
		"Config file (default ./arbiter.yaml)")

	// Request options
	rootCmd.Flags().StringVarP(&flags.Audio, "audio", "a", "",
		"Audio capture: none, mic, tab or desktop")
	rootCmd.Flags().StringVarP(&flags.Video, "video", "v", "",
		"Video capture: none, camera, tab or desktop")
	rootCmd.Flags().StringVarP(&flags.RequestType, "request-type", "t", "generate_stream",
		"Request type: generate_stream, pepper, device_access or device_update")
	rootCmd.Flags().StringVar(&flags.AudioDevice, "audio-device", "",
		"Requested audio device id")
	rootCmd.Flags().StringVar(&flags.VideoDevice, "video-device", "",
		"Requested video device id, or a desktop media id such as screen:0:0")
	rootCmd.Flags().StringVar(&flags.Origin, "origin", "",
		"Security origin of the requesting page")

	// Catalog options
	rootCmd.Flags().BoolVar(&flags.ListDevices, "list-devices", false,
		"List capture devices and exit")
	rootCmd.PersistentFlags().StringVar(&flags.CatalogFile, "catalog", "",
		"Device catalog file (.yaml or .json)")
	rootCmd.PersistentFlags().BoolVar(&flags.Hardware, "hardware", false,
		"Probe attached capture hardware instead of a catalog file")
	rootCmd.PersistentFlags().BoolVar(&flags.Watch, "watch", false,
		"Reload the catalog file when it changes")

	// Other options
	rootCmd.PersistentFlags().StringVar(&flags.Lang, "lang", "",
		"Language for consent prompts (cn or en, default: cn)")
	rootCmd.PersistentFlags().StringVar(&flags.Consent, "consent", "",
		"Consent mode: allow, prompt or deny (default: allow)")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false,
		"Enable debug mode (default: false)")
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cobra.CheckErr(rootCmd.Execute())
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", utils.JsonString(cfg)).Msg("configuration")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry, err := buildCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	if flags.ListDevices {
		printDevices(registry)
		return nil
	}

	lines := utils.NewLineReader(os.Stdin)
	deps := arbiter.Dependencies{
		Catalog: registry,
		Frames:  frames.AnyFrame{},
		Consent: buildConsent(cfg, lines),
	}

	if flags.Audio != "" || flags.Video != "" {
		req, err := requestFromFlags()
		if err != nil {
			return err
		}
		return arbitrateAndPrint(ctx, req, deps, cfg.Lang)
	}

	log.Info().Msg("Entering interactive mode. Type 'quit' to exit.")
	return interactive(ctx, lines, registry, deps, cfg.Lang)
}

// interactive reads one request per line until quit, end of input or ctx is
// done.
func interactive(ctx context.Context, lines *utils.LineReader, registry *catalog.Registry, deps arbiter.Dependencies, lang string) error {
	for {
		if ctx.Err() != nil {
			log.Info().Msg("Interrupted, goodbye!")
			return nil
		}

		fmt.Fprint(os.Stderr, "Enter request: ")
		line, err := lines.ReadLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Interrupted, goodbye!")
			}
			return nil
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			log.Info().Msg("Goodbye!")
			return nil
		case "":
			continue
		case "devices":
			printDevices(registry)
			continue
		}

		req, err := helper.ParseRequestLine(line)
		if err != nil {
			log.Error().Err(err).Msg("Invalid request")
			continue
		}
		if err := arbitrateAndPrint(ctx, req, deps, lang); err != nil {
			log.Error().Err(err).Msg("Error")
		}
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	set := cmd.Flags().Changed
	if set("catalog") {
		cfg.CatalogFile = flags.CatalogFile
	}
	if set("lang") {
		cfg.Lang = flags.Lang
	}
	if set("consent") {
		cfg.Consent = flags.Consent
	}
	if set("hardware") {
		cfg.Hardware = flags.Hardware
	}
	if set("watch") {
		cfg.Watch = flags.Watch
	}
	if set("debug") {
		cfg.Debug = flags.Debug
	}
	return cfg, cfg.Validate()
}

func buildCatalog(ctx context.Context, cfg *config.Config) (*catalog.Registry, error) {
	registry := catalog.NewRegistry()

	switch {
	case cfg.Hardware:
		if err := hardware.Probe(ctx, registry); err != nil {
			log.Warn().Err(err).Msg("Hardware probe incomplete")
		}
	case cfg.Watch:
		registry.OnDeviceChange(func() {
			log.Debug().
				Int("audio", len(registry.AudioDevices())).
				Int("video", len(registry.VideoDevices())).
				Msg("[buildCatalog] device catalog changed")
		})
		if err := catalog.Watch(ctx, registry, cfg.CatalogFile); err != nil {
			return nil, err
		}
	case cfg.CatalogFile != "":
		file, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		catalog.Apply(registry, file)
	default:
		if err := catalog.LoadDemo(registry); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultAudioDevice != "" || cfg.DefaultVideoDevice != "" {
		registry.SetPreferredDefaults(cfg.DefaultAudioDevice, cfg.DefaultVideoDevice)
	}
	return registry, nil
}

func buildConsent(cfg *config.Config, lines *utils.LineReader) arbiter.ConsentAuthority {
	policy := &consent.Policy{Allow: cfg.AllowOrigins, Block: cfg.BlockOrigins}
	switch cfg.Consent {
	case config.ConsentPrompt:
		return consent.Chain{policy, consent.NewPrompt(lines, os.Stderr, cfg.Lang)}
	case config.ConsentDeny:
		return consent.Deny{}
	default:
		return policy
	}
}

func requestFromFlags() (definitions.CaptureRequest, error) {
	var req definitions.CaptureRequest

	audio, ok := definitions.ParseStreamType(flags.Audio, true)
	if !ok {
		return req, fmt.Errorf("invalid audio type: %s", flags.Audio)
	}
	video, ok := definitions.ParseStreamType(flags.Video, false)
	if !ok {
		return req, fmt.Errorf("invalid video type: %s", flags.Video)
	}
	requestType, ok := definitions.ParseRequestType(flags.RequestType)
	if !ok {
		return req, fmt.Errorf("invalid request type: %s", flags.RequestType)
	}

	req = definitions.CaptureRequest{
		SecurityOrigin:         flags.Origin,
		RequestType:            requestType,
		AudioType:              audio,
		VideoType:              video,
		RequestedAudioDeviceID: flags.AudioDevice,
		RequestedVideoDeviceID: flags.VideoDevice,
	}
	return req, nil
}

func arbitrateAndPrint(ctx context.Context, req definitions.CaptureRequest, deps arbiter.Dependencies, lang string) error {
	done := make(chan definitions.Resolution, 1)
	r := arbiter.Arbitrate(ctx, req, func(devices []definitions.MediaDevice, result definitions.ResultCode) {
		done <- definitions.Resolution{Devices: devices, Result: result}
	}, deps)
	defer r.Close()

	select {
	case res := <-done:
		log.Info().Msg(helper.DescribeResolution(res, lang))
		return utils.WriteJson(os.Stdout, res)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func printDevices(registry *catalog.Registry) {
	show := func(kind string, devices []definitions.MediaDevice) {
		if len(devices) == 0 {
			log.Info().Msgf("No %s devices.", kind)
			return
		}
		log.Info().Msgf("%s devices:", kind)
		log.Info().Msg(strings.Repeat("-", 60))
		sorted := lo.Map(devices, func(d definitions.MediaDevice, _ int) string {
			return fmt.Sprintf("  %-30s %s", d.ID, d.Label)
		})
		sort.Strings(sorted)
		for _, line := range sorted {
			log.Info().Msg(line)
		}
	}
	show("Audio", registry.AudioDevices())
	show("Video", registry.VideoDevices())

	defaults := registry.DefaultDevices(true, true)
	log.Info().Strs("defaults", lo.Map(defaults, func(d definitions.MediaDevice, _ int) string { return d.ID })).Msg("Default devices")
}
