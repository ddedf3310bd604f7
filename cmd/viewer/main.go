// Interactive viewer for the simulation: field heatmap, organisms, and the
// EP spend menu.
//
// Usage: go run ./cmd/viewer [-config path] [-seed N]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/primordia/config"
	"github.com/pthm-cable/primordia/sim"
	"github.com/pthm-cable/primordia/telemetry"
)

const (
	gridSize    = 640
	panelWidth  = 320
	windowWidth = gridSize + panelWidth + 30
	windowHigh  = gridSize + 20
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	engine, err := sim.NewEngine(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHigh, "Primordia")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	w, h := cfg.World.Width, cfg.World.Height
	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	cellW := float32(gridSize) / float32(w)
	cellH := float32(gridSize) / float32(h)

	paused := false
	turnsPerSec := float32(5)
	var acc float32
	var spendErr string

	var snap *telemetry.Snapshot
	snap, err = engine.Step()
	if err != nil {
		slog.Error("first turn failed", "error", err)
		os.Exit(1)
	}
	updateTexture(texture, snap, cfg.World.NutrientMax, cfg.World.ToxinMax)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		step := rl.IsKeyPressed(rl.KeyN)

		if !paused && !snap.Extinct {
			acc += rl.GetFrameTime() * turnsPerSec
			if acc >= 1 {
				acc--
				step = true
			}
		}
		if step && !snap.Extinct {
			next, err := engine.Step()
			if err != nil {
				slog.Error("turn failed", "error", err)
				break
			}
			snap = next
			updateTexture(texture, snap, cfg.World.NutrientMax, cfg.World.ToxinMax)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
			rl.Rectangle{X: 10, Y: 10, Width: gridSize, Height: gridSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, gridSize, gridSize, rl.DarkGray)

		for _, org := range snap.Organisms {
			cx := 10 + (float32(org.X)+0.5)*cellW
			cy := 10 + (float32(org.Y)+0.5)*cellH
			radius := cellW * 0.35
			c := organismColor(org)
			rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, radius, c)
		}

		// Side panel
		panelX := float32(gridSize + 20)
		panelY := float32(10)

		rl.DrawText(fmt.Sprintf("Turn %d", snap.Turn), int32(panelX), int32(panelY), 20, rl.White)
		panelY += 28
		rl.DrawText(fmt.Sprintf("Population: %d", len(snap.Organisms)), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("EP: %.0f", snap.Lineage.EP), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("Births: %d  Deaths: %d", snap.Lineage.Births, snap.Lineage.Deaths), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("Event: %s", snap.ActiveWorldEvent), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 30

		// Speed control
		rl.DrawText("Turns per second", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		turnsPerSec = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"1", "30",
			turnsPerSec, 1, 30,
		)
		rl.DrawText(fmt.Sprintf("%.0f", turnsPerSec), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.LightGray)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, pauseLabel(paused)) {
			paused = !paused
		}
		panelY += 45

		// EP spend menu
		rl.DrawText("Evolve (EP spends)", int32(panelX), int32(panelY), 16, rl.White)
		panelY += 24
		for _, opt := range engine.SpendOptions() {
			label := fmt.Sprintf("%s  (%.0f EP)", opt.Name, opt.Cost)
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 20, Height: 28}, label) {
				if err := engine.SpendEP(opt); err != nil {
					spendErr = err.Error()
				} else {
					spendErr = ""
				}
			}
			panelY += 34
		}
		if spendErr != "" {
			rl.DrawText(spendErr, int32(panelX), int32(panelY), 13, rl.Red)
			panelY += 20
		}
		panelY += 10

		// Lineage template
		rl.DrawText("Base genome", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		base := engine.BaseGenome()
		for g, v := range base.Values() {
			rl.DrawText(fmt.Sprintf("%-22s %.3f", geneName(g), v), int32(panelX), int32(panelY), 13, rl.LightGray)
			panelY += 16
		}

		if snap.Extinct {
			msg := fmt.Sprintf("EXTINCT on turn %d", snap.Turn)
			tw := rl.MeasureText(msg, 32)
			rl.DrawText(msg, 10+(gridSize-tw)/2, 10+gridSize/2-16, 32, rl.Red)
		}

		rl.DrawText("[space] pause   [n] step", int32(panelX), windowHigh-24, 12, rl.Gray)

		rl.EndDrawing()
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

func geneName(g int) string {
	names := []string{"metabolism_rate", "base_metabolism", "movement_cost", "sensory_range", "toxin_resistance", "repro_threshold"}
	if g < len(names) {
		return names[g]
	}
	return fmt.Sprintf("gene_%d", g)
}

// organismColor shades from red (starving) to white (fat) by energy.
func organismColor(org telemetry.OrganismState) color.RGBA {
	t := float32(org.Energy) / 200
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: 255,
		G: uint8(80 + t*175),
		B: uint8(80 + t*175),
		A: 255,
	}
}

// updateTexture paints nutrient as green and toxin as purple, blended.
func updateTexture(texture rl.Texture2D, snap *telemetry.Snapshot, nutrientMax, toxinMax float64) {
	pixels := make([]color.RGBA, len(snap.Nutrient))
	for i := range snap.Nutrient {
		n := snap.Nutrient[i] / nutrientMax
		if n > 1 {
			n = 1
		}
		x := snap.Toxin[i] / toxinMax
		if x > 1 {
			x = 1
		}
		pixels[i] = color.RGBA{
			R: uint8(10 + x*200),
			G: uint8(15 + n*200),
			B: uint8(25 + x*160),
			A: 255,
		}
	}
	rl.UpdateTexture(texture, pixels)
}
