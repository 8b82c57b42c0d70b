// Command doorbell-controller samples the doorbell's motion and button
// sensors, dispatches debounced events to local actuators and the
// remote service, and serves a local status page.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arlenner/doorbell-controller/internal/actuator"
	"github.com/arlenner/doorbell-controller/internal/config"
	"github.com/arlenner/doorbell-controller/internal/controller"
	"github.com/arlenner/doorbell-controller/internal/gpio"
	"github.com/arlenner/doorbell-controller/internal/logger"
	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/status"
	"github.com/arlenner/doorbell-controller/internal/transport"
	"github.com/arlenner/doorbell-controller/internal/web"
)

var (
	configPath string
	logLevel   string
	printState bool

	rootCmd = &cobra.Command{
		Use:   "doorbell-controller",
		Short: "Run the smart doorbell event controller.",
		Long: `Polls the PIR motion sensor and doorbell button, debounces them,
drives the local LEDs, chime, and camera trigger, and forwards events
plus periodic status to the remote service over HTTP or MQTT.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return run(cfg)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&printState, "print-state", false, "read both sensors once and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	device, err := gpio.NewRealDevice(gpio.Pins{
		Motion:        cfg.Pins.Motion,
		Doorbell:      cfg.Pins.Doorbell,
		StatusLED:     cfg.Pins.StatusLED,
		MotionLED:     cfg.Pins.MotionLED,
		Buzzer:        cfg.Pins.Buzzer,
		CameraTrigger: cfg.Pins.CameraTrigger,
	})
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer device.Close()

	if printState {
		motion, doorbell, err := device.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		fmt.Printf("motion: %s, doorbell: %s\n", stateString(motion), stateString(doorbell))
		return nil
	}

	notifier, endpoint, err := newNotifier(cfg, log)
	if err != nil {
		return fmt.Errorf("init transport: %w", err)
	}
	defer notifier.Close()

	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		DeviceID:           cfg.DeviceID,
		Location:           cfg.Location,
		Transport:          string(cfg.Transport.Kind),
		Endpoint:           endpoint,
		HTTPAddr:           cfg.HTTPAddr,
		TickMs:             int64(cfg.Timing.TickMs),
		MotionCooldownMs:   int64(cfg.Timing.MotionCooldownMs),
		DoorbellCooldownMs: int64(cfg.Timing.DoorbellCooldownMs),
		ReportIntervalMs:   int64(cfg.Timing.ReportIntervalMs),
	})

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("http server error", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infow("http status server listening", "addr", cfg.HTTPAddr)
	}

	mode := logic.DefaultMode()
	acts := actuator.New(device, cfg.Timing.CameraHold(), log)

	ctrl := controller.New(controller.Options{
		Reader:           device,
		Acts:             acts,
		Notifier:         notifier,
		Tracker:          tracker,
		Mode:             &mode,
		DeviceID:         cfg.DeviceID,
		Location:         cfg.Location,
		MotionCooldown:   cfg.Timing.MotionCooldown(),
		DoorbellCooldown: cfg.Timing.DoorbellCooldown(),
		ReportInterval:   cfg.Timing.ReportInterval(),
		LinkBlink:        cfg.Timing.LinkBlink(),
		StartTime:        startTime,
		LinkStrength:     readLinkStrength,
		Log:              log,
	})

	log.Infow("started",
		"device_id", cfg.DeviceID,
		"location", cfg.Location,
		"transport", cfg.Transport.Kind,
		"tick", cfg.Timing.Tick(),
		"motion_cooldown", cfg.Timing.MotionCooldown(),
		"doorbell_cooldown", cfg.Timing.DoorbellCooldown(),
		"report_interval", cfg.Timing.ReportInterval(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Timing.Tick())
	defer ticker.Stop()

	ctrl.Run(ctx, ticker.C, time.Now)
	log.Infow("shut down")
	return nil
}

func newNotifier(cfg *config.Config, log *zap.SugaredLogger) (transport.Notifier, string, error) {
	switch cfg.Transport.Kind {
	case config.TransportMQTT:
		n, err := transport.NewMQTTNotifier(cfg.Transport.Broker, cfg.DeviceID, cfg.Transport.Timeout(), log)
		return n, cfg.Transport.Broker, err
	default:
		n := transport.NewHTTPNotifier(cfg.Transport.ServerURL, cfg.Transport.APIKey, cfg.Transport.Timeout(), log)
		return n, cfg.Transport.ServerURL, nil
	}
}

func stateString(active bool) string {
	if active {
		return "ACTIVE"
	}
	return "IDLE"
}

// readLinkStrength returns the wireless signal level in dBm from
// /proc/net/wireless, or 0 when no wireless interface is present.
func readLinkStrength() int {
	data, err := os.ReadFile("/proc/net/wireless")
	if err != nil {
		return 0
	}
	return parseWirelessLevel(string(data))
}

func parseWirelessLevel(data string) int {
	lines := strings.Split(data, "\n")
	if len(lines) < 3 {
		return 0
	}

	// " wlan0: 0000   60.  -50.  -256 ..." — level is the fourth field.
	fields := strings.Fields(lines[2])
	if len(fields) < 4 {
		return 0
	}

	level, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 64)
	if err != nil {
		return 0
	}
	return int(level)
}
