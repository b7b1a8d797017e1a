package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/taigrr/sundial/pkg/render"
	"github.com/taigrr/sundial/pkg/scene"
)

// Environment variables that provide flag defaults.
const (
	envPrefix = "SUNDIAL_"
	envFile   = ".env"
)

// sceneConfig holds the flags shared by every command.
type sceneConfig struct {
	assetDir     string
	skyboxDir    string
	meshPath     string
	meshScale    float64
	groundRadius int
	timeOfDay    float64
	workers      int
	threaded     bool
	stars        bool

	dayHorizon   string
	dayZenith    string
	nightHorizon string
	nightZenith  string

	logLevel string
	logFile  string
}

// loadEnv reads .env from the working directory. A missing file is fine.
func loadEnv() {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Warn("could not read env file", "path", envFile, "err", err)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(envPrefix + key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn("ignoring invalid integer", "var", envPrefix+key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn("ignoring invalid number", "var", envPrefix+key, "value", v)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn("ignoring invalid bool", "var", envPrefix+key, "value", v)
	}
	return fallback
}

func (c *sceneConfig) bindFlags(fs *pflag.FlagSet) {
	defaults := scene.DefaultDioramaOptions()
	sky := scene.NewSky()

	fs.StringVar(&c.assetDir, "assets", getEnv("ASSETS", ""), "directory with block textures (empty for flat colors)")
	fs.StringVar(&c.skyboxDir, "skybox", getEnv("SKYBOX", ""), "directory with cube map faces (empty for the procedural sky)")
	fs.StringVar(&c.meshPath, "mesh", getEnv("MESH", ""), "glTF/GLB model to place in the scene")
	fs.Float64Var(&c.meshScale, "mesh-scale", getEnvFloat("MESH_SCALE", defaults.MeshScale), "uniform scale for --mesh")
	fs.IntVar(&c.groundRadius, "ground", getEnvInt("GROUND", defaults.GroundRadius), "half width of the ground in blocks")
	fs.Float64Var(&c.timeOfDay, "time", getEnvFloat("TIME", 0), "time of day in [0,1), 0 is midday")
	fs.IntVar(&c.workers, "workers", getEnvInt("WORKERS", 0), "render bands when threaded (0 for the default)")
	fs.BoolVar(&c.threaded, "threads", getEnvBool("THREADS", true), "render bands concurrently")
	fs.BoolVar(&c.stars, "stars", getEnvBool("STARS", true), "draw stars in the night sky")

	fs.StringVar(&c.dayHorizon, "sky-day-horizon", getEnv("SKY_DAY_HORIZON", ""), "day horizon color as hex (default "+sky.DayHorizon.Hex()+")")
	fs.StringVar(&c.dayZenith, "sky-day-zenith", getEnv("SKY_DAY_ZENITH", ""), "day zenith color as hex (default "+sky.DayZenith.Hex()+")")
	fs.StringVar(&c.nightHorizon, "sky-night-horizon", getEnv("SKY_NIGHT_HORIZON", ""), "night horizon color as hex (default "+sky.NightHorizon.Hex()+")")
	fs.StringVar(&c.nightZenith, "sky-night-zenith", getEnv("SKY_NIGHT_ZENITH", ""), "night zenith color as hex (default "+sky.NightZenith.Hex()+")")

	fs.StringVar(&c.logLevel, "log-level", getEnv("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&c.logFile, "log-file", getEnv("LOG_FILE", ""), "write logs to this file")
}

// setupLogging configures the default logger. When no log file is given,
// logs go to fallback. The returned closer is never nil.
func (c *sceneConfig) setupLogging(fallback io.Writer) (io.Closer, error) {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(level)

	if c.logFile == "" {
		log.SetOutput(fallback)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// buildScene assembles the diorama and applies the sky overrides.
func (c *sceneConfig) buildScene() (*scene.Scene, error) {
	if c.timeOfDay < 0 || c.timeOfDay >= 1 {
		return nil, fmt.Errorf("--time must be in [0,1), got %v", c.timeOfDay)
	}

	s := scene.Diorama(scene.DioramaOptions{
		AssetDir:     c.assetDir,
		SkyboxDir:    c.skyboxDir,
		GroundRadius: c.groundRadius,
		MeshPath:     c.meshPath,
		MeshScale:    c.meshScale,
	})

	colors := []struct {
		flag string
		hex  string
		dst  *render.Color
	}{
		{"sky-day-horizon", c.dayHorizon, &s.Sky.DayHorizon},
		{"sky-day-zenith", c.dayZenith, &s.Sky.DayZenith},
		{"sky-night-horizon", c.nightHorizon, &s.Sky.NightHorizon},
		{"sky-night-zenith", c.nightZenith, &s.Sky.NightZenith},
	}
	for _, sc := range colors {
		if sc.hex == "" {
			continue
		}
		col, err := render.ParseHex(sc.hex)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", sc.flag, err)
		}
		*sc.dst = col
	}
	s.Sky.Stars = c.stars
	s.UpdateSun(c.timeOfDay)

	log.Debug("scene ready",
		"primitives", len(s.Primitives),
		"lights", len(s.PointLights),
		"cubemap", s.Sky.UsesCubemap())
	return s, nil
}
