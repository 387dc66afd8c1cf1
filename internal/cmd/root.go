// Package cmd wires the launcher binary: load config, stand up the
// protocol entities on a router, drive the TDMA tick loop, and run the
// backhaul and test-harness network services alongside it.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/config"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/logging"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/cmce"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/cron"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/llc"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/lmac"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mle"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/mm"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/network/testharness"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/network/transport"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/phy"
	pduumac "github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/pdu/umac"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/router"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/stackcfg"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/tdma"
	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/umac"
)

// tickInterval is one TETRA timeslot's wall-clock duration: 510 modulation
// bits (255 symbols at 18 ksymbol/s, i.e. 36 kbit/s), 4 slots/frame, 1/4 of
// a 56.67 ms frame.
const tickInterval = 14167 * time.Microsecond

// testHarnessAddr is the QUIC test-PDU service bind address.
const testHarnessAddr = "[::]:4433"

func NewCommand(version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tetrastack",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		RunE:              runRoot,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	cmd.Flags().String("config", "/etc/tetrastack/config.toml", "path to the TOML configuration file")
	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer stop()

	fmt.Printf("tetrastack - %s (%s)\n", cmd.Annotations["version"], cmd.Annotations["commit"])

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("reading --config flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Configure(cfg.LogLevel)
	slog.Info("config loaded", "path", configPath, "stack_mode", cfg.StackMode)

	device, err := buildDevice(cfg.PhyIO)
	if err != nil {
		return fmt.Errorf("failed to build phy device: %w", err)
	}

	stackConfig := buildStackConfig(cfg)
	r := buildRouter(stackConfig, device, cfg.CellInfo)

	housekeeper, err := cron.New()
	if err != nil {
		return fmt.Errorf("failed to create housekeeping scheduler: %w", err)
	}
	state := &stackcfg.StackState{}
	if err := housekeeper.RegisterCellLoadHeartbeat(state, time.Minute); err != nil {
		return fmt.Errorf("failed to register cell-load heartbeat: %w", err)
	}
	housekeeper.Start()
	defer housekeeper.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		runTickLoop(gctx, r)
		return nil
	})

	if cfg.Brew.Enabled {
		worker, err := buildTransportWorker(cfg.Brew)
		if err != nil {
			return fmt.Errorf("failed to build brew transport worker: %w", err)
		}
		g.Go(func() error {
			worker.Run(gctx)
			return nil
		})
	}

	harness := testharness.NewServer(testHarnessAddr)
	g.Go(func() error {
		if err := harness.Run(gctx); err != nil {
			return fmt.Errorf("test-harness service stopped: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

// buildStackConfig adapts the on-disk config shape into the runtime
// StackConfig the protocol entities share.
func buildStackConfig(cfg *config.Config) stackcfg.StackConfig {
	var mode stackcfg.StackMode
	switch cfg.StackMode {
	case config.StackModeMs:
		mode = stackcfg.ModeMs
	case config.StackModeMon:
		mode = stackcfg.ModeMon
	default:
		mode = stackcfg.ModeBs
	}

	return stackcfg.StackConfig{
		Mode: mode,
		NetInfo: stackcfg.NetInfo{
			Mcc: cfg.NetInfo.Mcc,
			Mnc: cfg.NetInfo.Mnc,
		},
		CellInfo: stackcfg.CellInfo{
			MainCarrier:         cfg.CellInfo.MainCarrier,
			FreqBand:            cfg.CellInfo.FreqBand,
			FreqOffset:          cfg.CellInfo.FreqOffset,
			DuplexSpacing:       cfg.CellInfo.DuplexSpacing,
			ReverseOperation:    cfg.CellInfo.ReverseOperation,
			CustomDuplexSpacing: cfg.CellInfo.CustomDuplexSpacing,
			LocationArea:        cfg.CellInfo.LocationArea,
			ColourCode:          cfg.CellInfo.ColourCode,
		},
	}
}

// buildDevice wires the phy_io.backend selection to a concrete phy.Device.
func buildDevice(io config.PhyIO) (phy.Device, error) {
	switch io.Backend {
	case config.PhyBackendSoapySdr:
		return phy.NewSoapySdrDevice()
	default:
		return phy.NewFileDevice(io.DlTxFile, io.UlInputFile)
	}
}

// buildRouter constructs and registers every protocol entity the stack
// needs for one tick.
func buildRouter(stackConfig stackcfg.StackConfig, device phy.Device, cell config.CellInfo) *router.Router {
	r := router.New()

	r.Register(lmac.New(stackConfig, device))
	r.Register(umac.NewScheduler(stackConfig, buildMacSysinfo(cell)))
	r.Register(llc.New())
	r.Register(mle.New())
	r.Register(mm.New(stackConfig.NetInfo.Mcc, stackConfig.NetInfo.Mnc, cell.LocationArea))
	r.Register(cmce.New())

	return r
}

func buildMacSysinfo(cell config.CellInfo) pduumac.MacSysinfo {
	return pduumac.MacSysinfo{
		MainCarrier:      cell.MainCarrier,
		FreqBand:         cell.FreqBand,
		FreqOffset:       cell.FreqOffset,
		DuplexSpacing:    cell.DuplexSpacing,
		ReverseOperation: cell.ReverseOperation,
	}
}

// runTickLoop drives Router.Tick at the TDMA slot cadence until ctx is
// cancelled.
func runTickLoop(ctx context.Context, r *router.Router) {
	t := tdma.Default()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t = r.Tick(t)
		}
	}
}

// buildTransportWorker wires the Brew backhaul transport worker
// from configuration, selecting TCP or QUIC.
func buildTransportWorker(b config.Brew) (*transport.Worker, error) {
	const (
		defaultConnectTimeout = 5 * time.Second
		defaultReplyTimeout   = 5 * time.Second
	)

	connectTimeout := defaultConnectTimeout
	if b.ConnectTimeout > 0 {
		connectTimeout = time.Duration(b.ConnectTimeout) * time.Second
	}

	var dial transport.Dialer
	switch b.Transport {
	case "quic":
		dial = transport.DialQUIC(b.Addr, false)
	default:
		if _, _, err := net.SplitHostPort(b.Addr); err != nil {
			return nil, fmt.Errorf("invalid brew.addr: %w", err)
		}
		dial = transport.DialTCP(b.Addr)
	}

	return transport.NewWorker(dial, connectTimeout, defaultReplyTimeout), nil
}
