package game

// VehicleConfig tunes the kinematic vehicle controller. Times are in seconds.
type VehicleConfig struct {
	Mass           float64 `mapstructure:"mass"`
	LinearDamping  float64 `mapstructure:"linearDamping"`
	AngularDamping float64 `mapstructure:"angularDamping"`

	MaxSpeed         float64 `mapstructure:"maxSpeed"`
	TurnRate         float64 `mapstructure:"turnRate"`
	BaseSteerFactor  float64 `mapstructure:"baseSteerFactor"`
	SpeedSteerFactor float64 `mapstructure:"speedSteerFactor"`
	MinSteerSpeed    float64 `mapstructure:"minSteerSpeed"`

	ThrottleRate           float64 `mapstructure:"throttleRate"`
	DecelerationMultiplier float64 `mapstructure:"decelerationMultiplier"`
	ThrottleEpsilon        float64 `mapstructure:"throttleEpsilon"`
	ForwardThrottle        float64 `mapstructure:"forwardThrottle"`
	ReverseThrottle        float64 `mapstructure:"reverseThrottle"`

	AccelerationRate      float64 `mapstructure:"accelerationRate"`
	MinAccelerationFactor float64 `mapstructure:"minAccelerationFactor"`
	TopSpeedDamping       float64 `mapstructure:"topSpeedDamping"`
	MaxSpeedDeficit       float64 `mapstructure:"maxSpeedDeficit"`
	BrakingConstant       float64 `mapstructure:"brakingConstant"`
	AccelerationThreshold float64 `mapstructure:"accelerationThreshold"`
	CoastDamping          float64 `mapstructure:"coastDamping"`
	VelocityDeadzone      float64 `mapstructure:"velocityDeadzone"`

	GroundHeight    float64 `mapstructure:"groundHeight"`
	MovingThreshold float64 `mapstructure:"movingThreshold"`
	MovingSmoothing float64 `mapstructure:"movingSmoothing"`
	IdleSmoothing   float64 `mapstructure:"idleSmoothing"`

	Stuck StuckConfig `mapstructure:"stuck"`
}

// StuckConfig tunes stuck detection and the unstick nudge
type StuckConfig struct {
	ActivationThrottle float64 `mapstructure:"activationThrottle"`
	TriggerThrottle    float64 `mapstructure:"triggerThrottle"`
	SampleInterval     float64 `mapstructure:"sampleInterval"`
	Timeout            float64 `mapstructure:"timeout"`
	StuckDistance      float64 `mapstructure:"stuckDistance"`
	RecoveryDistance   float64 `mapstructure:"recoveryDistance"`
	CrawlDistance      float64 `mapstructure:"crawlDistance"`
	LateralAmplitude   float64 `mapstructure:"lateralAmplitude"`
	OscillationRate    float64 `mapstructure:"oscillationRate"`
	ReverseSpeed       float64 `mapstructure:"reverseSpeed"`
}

// BallConfig describes the ball body
type BallConfig struct {
	Mass            float64 `mapstructure:"mass"`
	Radius          float64 `mapstructure:"radius"`
	Friction        float64 `mapstructure:"friction"`
	Restitution     float64 `mapstructure:"restitution"`
	LinearDamping   float64 `mapstructure:"linearDamping"`
	AngularDamping  float64 `mapstructure:"angularDamping"`
	MovingThreshold float64 `mapstructure:"movingThreshold"`
}

// LaunchConfig tunes the impulse launch model
type LaunchConfig struct {
	PowerScale            float64 `mapstructure:"powerScale"`
	VerticalRatio         float64 `mapstructure:"verticalRatio"`
	VelocityScale         float64 `mapstructure:"velocityScale"`
	VerticalVelocityScale float64 `mapstructure:"verticalVelocityScale"`
	SpinScale             float64 `mapstructure:"spinScale"`
	SpeedToPower          float64 `mapstructure:"speedToPower"`
	// AdditiveReinforcement adds the reinforcement velocity on top of the
	// impulse response instead of replacing it.
	AdditiveReinforcement bool `mapstructure:"additiveReinforcement"`
}

// RouterConfig holds collision classification thresholds
type RouterConfig struct {
	MinHitSpeed float64 `mapstructure:"minHitSpeed"`
	HitCooldown float64 `mapstructure:"hitCooldown"`
	WinSpeed    float64 `mapstructure:"winSpeed"`
}

// CameraConfig tunes the chase camera
type CameraConfig struct {
	DistanceBehind     float64 `mapstructure:"distanceBehind"`
	Height             float64 `mapstructure:"height"`
	LookAhead          float64 `mapstructure:"lookAhead"`
	RotationSmoothness float64 `mapstructure:"rotationSmoothness"`
	PositionSmoothness float64 `mapstructure:"positionSmoothness"`
	MinRotationRate    float64 `mapstructure:"minRotationRate"`
	MaxRotationRate    float64 `mapstructure:"maxRotationRate"`
	MaxRotationPerTick float64 `mapstructure:"maxRotationPerTick"`
	MaxFrameDelta      float64 `mapstructure:"maxFrameDelta"`
	MinZoom            float64 `mapstructure:"minZoom"`
	MaxZoom            float64 `mapstructure:"maxZoom"`
	InitialZoom        float64 `mapstructure:"initialZoom"`
	ResetZoom          float64 `mapstructure:"resetZoom"`
	ZoomInFactor       float64 `mapstructure:"zoomInFactor"`
	ZoomOutFactor      float64 `mapstructure:"zoomOutFactor"`
	PanFactor          float64 `mapstructure:"panFactor"`
}

// SessionConfig holds the round timings and aim controls
type SessionConfig struct {
	SettleDelay         float64 `mapstructure:"settleDelay"`
	CelebrationDuration float64 `mapstructure:"celebrationDuration"`
	HoleRadius          float64 `mapstructure:"holeRadius"`
	DefaultPower        int     `mapstructure:"defaultPower"`
	DefaultAngle        float64 `mapstructure:"defaultAngle"`
	PowerStep           int     `mapstructure:"powerStep"`
	AngleStep           float64 `mapstructure:"angleStep"`
}

// Config bundles everything the Manager needs to run a session
type Config struct {
	Vehicle VehicleConfig `mapstructure:"vehicle"`
	Ball    BallConfig    `mapstructure:"ball"`
	Launch  LaunchConfig  `mapstructure:"launch"`
	Router  RouterConfig  `mapstructure:"router"`
	Camera  CameraConfig  `mapstructure:"camera"`
	Session SessionConfig `mapstructure:"session"`

	// PublishEvery is the number of ticks between KV snapshot writes
	PublishEvery int `mapstructure:"publishEvery"`
	EventHistory int `mapstructure:"eventHistory"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		Vehicle: VehicleConfig{
			Mass:           1500,
			LinearDamping:  0.99,
			AngularDamping: 0.99,

			MaxSpeed:         1000,
			TurnRate:         1.2,
			BaseSteerFactor:  0.6,
			SpeedSteerFactor: 0.2,
			MinSteerSpeed:    0.3,

			ThrottleRate:           5,
			DecelerationMultiplier: 1.5,
			ThrottleEpsilon:        0.01,
			ForwardThrottle:        1.0,
			ReverseThrottle:        -0.5,

			AccelerationRate:      80,
			MinAccelerationFactor: 0.8,
			TopSpeedDamping:       0.2,
			MaxSpeedDeficit:       1.0,
			BrakingConstant:       2,
			AccelerationThreshold: 0.01,
			CoastDamping:          0.95,
			VelocityDeadzone:      0.1,

			GroundHeight:    0.5,
			MovingThreshold: 0.1,
			MovingSmoothing: 3,
			IdleSmoothing:   1,

			Stuck: StuckConfig{
				ActivationThrottle: 0.1,
				TriggerThrottle:    0.5,
				SampleInterval:     0.2,
				Timeout:            0.5,
				StuckDistance:      0.1,
				RecoveryDistance:   0.3,
				CrawlDistance:      0.05,
				LateralAmplitude:   2.5,
				OscillationRate:    10,
				ReverseSpeed:       2,
			},
		},
		Ball: BallConfig{
			Mass:            1,
			Radius:          0.5,
			Friction:        0.3,
			Restitution:     0.4,
			LinearDamping:   0.3,
			AngularDamping:  0.2,
			MovingThreshold: 0.1,
		},
		Launch: LaunchConfig{
			PowerScale:            0.75,
			VerticalRatio:         0.25,
			VelocityScale:         0.2,
			VerticalVelocityScale: 0.5,
			SpinScale:             8,
			SpeedToPower:          25,
		},
		Router: RouterConfig{
			MinHitSpeed: 0.5,
			HitCooldown: 2,
			WinSpeed:    10,
		},
		Camera: CameraConfig{
			DistanceBehind:     6,
			Height:             3,
			LookAhead:          10,
			RotationSmoothness: 1,
			PositionSmoothness: 2,
			MinRotationRate:    1.5,
			MaxRotationRate:    12,
			MaxRotationPerTick: 0.02,
			MaxFrameDelta:      0.1,
			MinZoom:            0.5,
			MaxZoom:            3,
			InitialZoom:        2,
			ResetZoom:          1,
			ZoomInFactor:       0.9,
			ZoomOutFactor:      1.1,
			PanFactor:          0.08,
		},
		Session: SessionConfig{
			SettleDelay:         1,
			CelebrationDuration: 5,
			HoleRadius:          10,
			DefaultPower:        50,
			DefaultAngle:        0,
			PowerStep:           5,
			AngleStep:           5,
		},
		PublishEvery: 6,
		EventHistory: 32,
	}
}
