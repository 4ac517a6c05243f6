package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/ivlev/dofcapture/internal/config"
	"github.com/ivlev/dofcapture/internal/director"
	"github.com/ivlev/dofcapture/internal/dof"
	"github.com/ivlev/dofcapture/internal/effects"
	"github.com/ivlev/dofcapture/internal/engine"
	"github.com/ivlev/dofcapture/internal/logging"
	"github.com/ivlev/dofcapture/internal/renderer"
)

func main() {
	cli, err := config.LoadCLIFromEnv()
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	configPtr := flag.String("config", cli.ConfigPath, "Path to the YAML settings file")
	logLevelPtr := flag.String("log-level", cli.LogLevel, "Log level: debug, info, warn, error")
	fpsPtr := flag.Int("fps", cli.FPS, "Frames per second of the simulated host (0 = as fast as possible)")
	previewPtr := flag.String("preview", "", "Write the sample position preview PNG to this path")
	previewSizePtr := flag.Int("preview-size", cli.PreviewSize, "Preview edge in pixels")
	planDirPtr := flag.String("plan-dir", cli.PlanDir, "Directory for step plan files")
	savePlanPtr := flag.Bool("save-plan", false, "Save the rendered step plan to -plan-dir")
	showPlanPtr := flag.String("show-plan", "", "Render the preview of a saved plan and exit ('latest' picks the newest in -plan-dir)")
	orderPtr := flag.String("order", "inner", "Render order: inner, outer, random")
	focusPtr := flag.Float64("focus", 0, "Focus delta applied during setup")
	qualityPtr := flag.Int("quality", 0, "Number of rings (0 = from settings)")
	ringOffsetPtr := flag.Float64("ring-offset", 0, "Ring angle offset in radians applied during setup")
	boostPtr := flag.Float64("highlight-boost", -1, "Highlight boost factor (negative = from settings)")
	reloadPtr := flag.Bool("reload", false, "Reload the host effects during setup")
	saveConfigPtr := flag.Bool("save-config", true, "Write the settings back to -config after the capture")

	flag.Parse()

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(*logLevelPtr),
	})))

	if *showPlanPtr != "" {
		if err := showPlan(*showPlanPtr, *planDirPtr, *previewPtr, *previewSizePtr); err != nil {
			log.Fatalf("[-] %v", err)
		}
		return
	}

	order, err := parseOrder(*orderPtr)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	store, err := config.LoadStore(*configPtr)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	cfg := config.Defaults()
	config.Load(store, &cfg)

	cam := engine.NewSimCamera()
	rt := effects.NewDepthOfFieldRuntime()
	ctrl := dof.New(cam, dof.WithConfig(cfg), dof.WithRenderOrder(order))

	opts := engine.Options{
		FPS:           *fpsPtr,
		ReloadEffects: *reloadPtr,
		OverlaySize:   *previewSizePtr,
	}
	focus, quality, ringOffset, boost := *focusPtr, *qualityPtr, *ringOffsetPtr, *boostPtr
	opts.Setup = func(c *dof.Controller, rt effects.Runtime) {
		if quality > 0 && !c.SetQuality(quality) {
			logging.Logger().Warn("quality rejected", "quality", quality)
		}
		if ringOffset != 0 {
			c.SetRingAngleOffset(ringOffset)
		}
		if boost >= 0 {
			c.SetHighlightBoostFactor(boost)
		}
		if focus != 0 {
			c.SetFocusDelta(rt, focus)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("--- [DEPTH OF FIELD CAPTURE] ---")
	fmt.Printf("[*] Settings: %s | Blur: %s | Order: %s\n", *configPtr, ctrl.Params().BlurType, order)
	fmt.Printf("[*] Aperture: %.3f | Quality: %d | Wait frames: %d\n", cfg.MaxBokehSize, cfg.Quality, cfg.NumberOfFramesToWaitPerFrame)
	fmt.Println("--------------------------------")

	project := engine.NewCaptureProject(ctrl, rt, cam, opts)
	report, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Capture failed: %v", err)
	}

	fmt.Printf(
		"--- [CAPTURE REPORT] ---\n"+
			"Steps: %d\n"+
			"Blended frames: %d\n"+
			"Presented frames: %d\n"+
			"Camera moves: %d\n"+
			"Total Time: %.2fs\n"+
			"------------------------\n",
		report.Steps, report.Blends, report.Frames, report.Moves, report.Duration.Seconds(),
	)

	if *previewPtr != "" {
		img := ctrl.Preview(*previewSizePtr)
		if err := renderer.WritePNG(*previewPtr, img); err != nil {
			log.Fatalf("[-] %v", err)
		}
		fmt.Printf("[*] Preview saved: %s\n", *previewPtr)
	}

	if *savePlanPtr {
		path := director.GeneratePlanPath(*planDirPtr)
		plan := director.NewPlan(ctrl.Params(), ctrl.CameraSteps())
		if err := director.WritePlan(plan, path); err != nil {
			log.Fatalf("[-] Could not save plan: %v", err)
		}
		fmt.Printf("[*] Plan saved: %s\n", path)
	}

	if *saveConfigPtr {
		config.Save(store, ctrl.Config())
		if err := store.Save(*configPtr); err != nil {
			log.Fatalf("[-] %v", err)
		}
	}

	fmt.Println("[+++] Done!")
}

func parseOrder(s string) (director.RenderOrder, error) {
	switch strings.ToLower(s) {
	case "inner", "inner-to-outer":
		return director.InnerToOuter, nil
	case "outer", "outer-to-inner":
		return director.OuterToInner, nil
	case "random", "randomized":
		return director.Randomized, nil
	}
	return 0, fmt.Errorf("unknown render order %q", s)
}

func showPlan(path, planDir, previewPath string, size int) error {
	if path == "latest" {
		latest, err := director.FindLatestPlan(planDir)
		if err != nil {
			return err
		}
		path = latest
	}

	plan, err := director.ReadPlan(path)
	if err != nil {
		return err
	}
	fmt.Printf("[*] Plan %s: version %s, %d steps, %s blur\n", path, plan.Version, len(plan.Steps), plan.Params.BlurType)

	if previewPath == "" {
		previewPath = strings.TrimSuffix(path, ".yaml") + ".png"
	}
	boosted := director.BoostedRingCount(plan.Params.SphericalAberrationFactor, plan.Params.Quality)
	img := renderer.Preview(plan.Steps, renderer.PreviewOptions{
		Size:         size,
		MaxBokehSize: plan.Params.MaxBokehSize,
		CenterWeight: director.SphericalAberrationWeight(boosted, 1, plan.Params.SphericalAberrationDimFactor),
	})
	if err := renderer.WritePNG(previewPath, img); err != nil {
		return err
	}
	fmt.Printf("[*] Preview saved: %s\n", previewPath)
	return nil
}
