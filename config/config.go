package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/drive-golf/game"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "drivegolf.cfg.json"

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file
// leaves the defaults in place.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("nats.dataDir", "data/nats")
	viper.SetDefault("nats.clearData", true)
	viper.SetDefault("nats.bucket", "drivegolf")

	viper.SetDefault("sim.tickRate", 60)
	viper.SetDefault("sim.maxSubSteps", 5)

	viper.SetDefault("autopilot.enabled", false)
	viper.SetDefault("autopilot.interval", "100ms")

	setGameDefaults(game.DefaultConfig())

	viper.SetEnvPrefix("DRIVEGOLF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Warn("No config file found, using defaults", "dir", configDir)
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	log.Info("Loaded config", "file", viper.ConfigFileUsed())
	return nil
}

func setGameDefaults(d game.Config) {
	v := d.Vehicle
	viper.SetDefault("vehicle.mass", v.Mass)
	viper.SetDefault("vehicle.linearDamping", v.LinearDamping)
	viper.SetDefault("vehicle.angularDamping", v.AngularDamping)
	viper.SetDefault("vehicle.maxSpeed", v.MaxSpeed)
	viper.SetDefault("vehicle.turnRate", v.TurnRate)
	viper.SetDefault("vehicle.baseSteerFactor", v.BaseSteerFactor)
	viper.SetDefault("vehicle.speedSteerFactor", v.SpeedSteerFactor)
	viper.SetDefault("vehicle.minSteerSpeed", v.MinSteerSpeed)
	viper.SetDefault("vehicle.throttleRate", v.ThrottleRate)
	viper.SetDefault("vehicle.decelerationMultiplier", v.DecelerationMultiplier)
	viper.SetDefault("vehicle.throttleEpsilon", v.ThrottleEpsilon)
	viper.SetDefault("vehicle.forwardThrottle", v.ForwardThrottle)
	viper.SetDefault("vehicle.reverseThrottle", v.ReverseThrottle)
	viper.SetDefault("vehicle.accelerationRate", v.AccelerationRate)
	viper.SetDefault("vehicle.minAccelerationFactor", v.MinAccelerationFactor)
	viper.SetDefault("vehicle.topSpeedDamping", v.TopSpeedDamping)
	viper.SetDefault("vehicle.maxSpeedDeficit", v.MaxSpeedDeficit)
	viper.SetDefault("vehicle.brakingConstant", v.BrakingConstant)
	viper.SetDefault("vehicle.accelerationThreshold", v.AccelerationThreshold)
	viper.SetDefault("vehicle.coastDamping", v.CoastDamping)
	viper.SetDefault("vehicle.velocityDeadzone", v.VelocityDeadzone)
	viper.SetDefault("vehicle.groundHeight", v.GroundHeight)
	viper.SetDefault("vehicle.movingThreshold", v.MovingThreshold)
	viper.SetDefault("vehicle.movingSmoothing", v.MovingSmoothing)
	viper.SetDefault("vehicle.idleSmoothing", v.IdleSmoothing)

	s := v.Stuck
	viper.SetDefault("vehicle.stuck.activationThrottle", s.ActivationThrottle)
	viper.SetDefault("vehicle.stuck.triggerThrottle", s.TriggerThrottle)
	viper.SetDefault("vehicle.stuck.sampleInterval", s.SampleInterval)
	viper.SetDefault("vehicle.stuck.timeout", s.Timeout)
	viper.SetDefault("vehicle.stuck.stuckDistance", s.StuckDistance)
	viper.SetDefault("vehicle.stuck.recoveryDistance", s.RecoveryDistance)
	viper.SetDefault("vehicle.stuck.crawlDistance", s.CrawlDistance)
	viper.SetDefault("vehicle.stuck.lateralAmplitude", s.LateralAmplitude)
	viper.SetDefault("vehicle.stuck.oscillationRate", s.OscillationRate)
	viper.SetDefault("vehicle.stuck.reverseSpeed", s.ReverseSpeed)

	b := d.Ball
	viper.SetDefault("ball.mass", b.Mass)
	viper.SetDefault("ball.radius", b.Radius)
	viper.SetDefault("ball.friction", b.Friction)
	viper.SetDefault("ball.restitution", b.Restitution)
	viper.SetDefault("ball.linearDamping", b.LinearDamping)
	viper.SetDefault("ball.angularDamping", b.AngularDamping)
	viper.SetDefault("ball.movingThreshold", b.MovingThreshold)

	l := d.Launch
	viper.SetDefault("launch.powerScale", l.PowerScale)
	viper.SetDefault("launch.verticalRatio", l.VerticalRatio)
	viper.SetDefault("launch.velocityScale", l.VelocityScale)
	viper.SetDefault("launch.verticalVelocityScale", l.VerticalVelocityScale)
	viper.SetDefault("launch.spinScale", l.SpinScale)
	viper.SetDefault("launch.speedToPower", l.SpeedToPower)
	viper.SetDefault("launch.additiveReinforcement", l.AdditiveReinforcement)

	r := d.Router
	viper.SetDefault("router.minHitSpeed", r.MinHitSpeed)
	viper.SetDefault("router.hitCooldown", r.HitCooldown)
	viper.SetDefault("router.winSpeed", r.WinSpeed)

	c := d.Camera
	viper.SetDefault("camera.distanceBehind", c.DistanceBehind)
	viper.SetDefault("camera.height", c.Height)
	viper.SetDefault("camera.lookAhead", c.LookAhead)
	viper.SetDefault("camera.rotationSmoothness", c.RotationSmoothness)
	viper.SetDefault("camera.positionSmoothness", c.PositionSmoothness)
	viper.SetDefault("camera.minRotationRate", c.MinRotationRate)
	viper.SetDefault("camera.maxRotationRate", c.MaxRotationRate)
	viper.SetDefault("camera.maxRotationPerTick", c.MaxRotationPerTick)
	viper.SetDefault("camera.maxFrameDelta", c.MaxFrameDelta)
	viper.SetDefault("camera.minZoom", c.MinZoom)
	viper.SetDefault("camera.maxZoom", c.MaxZoom)
	viper.SetDefault("camera.initialZoom", c.InitialZoom)
	viper.SetDefault("camera.resetZoom", c.ResetZoom)
	viper.SetDefault("camera.zoomInFactor", c.ZoomInFactor)
	viper.SetDefault("camera.zoomOutFactor", c.ZoomOutFactor)
	viper.SetDefault("camera.panFactor", c.PanFactor)

	ss := d.Session
	viper.SetDefault("session.settleDelay", ss.SettleDelay)
	viper.SetDefault("session.celebrationDuration", ss.CelebrationDuration)
	viper.SetDefault("session.holeRadius", ss.HoleRadius)
	viper.SetDefault("session.defaultPower", ss.DefaultPower)
	viper.SetDefault("session.defaultAngle", ss.DefaultAngle)
	viper.SetDefault("session.powerStep", ss.PowerStep)
	viper.SetDefault("session.angleStep", ss.AngleStep)

	viper.SetDefault("publishEvery", d.PublishEvery)
	viper.SetDefault("eventHistory", d.EventHistory)
}

// Game builds the simulation tuning from the loaded configuration
func Game() (game.Config, error) {
	cfg := game.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return game.Config{}, fmt.Errorf("error decoding game config: %v", err)
	}
	return cfg, nil
}

// LogLevel returns the configured log level, falling back to info
func LogLevel() log.Level {
	level, err := log.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		log.Warn("Unknown log level, using info", "level", viper.GetString("logLevel"))
		return log.InfoLevel
	}
	return level
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
