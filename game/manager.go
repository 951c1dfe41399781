package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/mark3labs/drive-golf/game/shared"
	"github.com/mark3labs/drive-golf/utils"
	"github.com/nats-io/nats.go/jetstream"
)

// StateKey is the KV key the latest snapshot is written under
const StateKey = "current"

// Engine is the physics service the manager drives
type Engine interface {
	shared.Stepper
	SpawnVehicle(cfg VehicleConfig, at mgl64.Vec3, yaw float64) shared.Body
	SpawnBall(cfg BallConfig, at mgl64.Vec3) shared.Body
}

// Manager owns one session and runs its tick in a fixed order:
// intents, vehicle, engine step (contacts routed inline), router events,
// session, camera, snapshot.
type Manager struct {
	cfg    Config
	course Course
	engine Engine
	kv     jetstream.KeyValue
	ctx    context.Context

	mutex    sync.RWMutex
	inputMu  sync.Mutex
	intents  []Intent
	getTime  TimeStamper
	id       string
	name     string
	tick     uint64
	now      float64
	snapshot Snapshot

	vehicle *VehicleController
	ball    *Ball
	launch  LaunchModel
	router  *Router
	camera  *Camera
	session *Session

	pending []RouterEvent
	events  []GameEvent
}

// NewManager creates a session on the given engine. kv may be nil, in which
// case snapshots are kept in memory only.
func NewManager(ctx context.Context, kv jetstream.KeyValue, cfg Config, course Course, engine Engine) (*Manager, error) {
	if engine == nil {
		return nil, fmt.Errorf("physics engine is required")
	}

	launch := NewLaunchModel(cfg.Launch)
	m := &Manager{
		cfg:     cfg,
		course:  course,
		engine:  engine,
		kv:      kv,
		ctx:     ctx,
		getTime: DefaultTimeStamper,
		id:      uuid.NewString(),
		name:    utils.GenerateCourseName(),
		launch:  launch,
		vehicle: NewVehicleController(cfg.Vehicle, course.VehicleStart.Vec(), course.VehicleYaw),
		ball:    NewBall(cfg.Ball, launch, course.Tee.Vec()),
		camera:  NewCamera(cfg.Camera),
		session: NewSession(cfg.Session),
	}
	m.router = NewRouter(cfg.Router, m.session.Status)

	vehicleBody := engine.SpawnVehicle(cfg.Vehicle, course.VehicleStart.Vec(), course.VehicleYaw)
	ballBody := engine.SpawnBall(cfg.Ball, course.Tee.Vec())
	m.vehicle.Attach(vehicleBody)
	m.ball.Attach(ballBody)
	for _, b := range []shared.Body{vehicleBody, ballBody} {
		if b != nil {
			b.OnCollide(m.onContact)
		}
	}

	m.camera.Snap(CameraTarget{Position: m.vehicle.Position(), Yaw: m.vehicle.Yaw()})
	m.snapshot = m.buildSnapshot()

	if err := m.saveState(m.snapshot); err != nil {
		return nil, fmt.Errorf("failed to save initial game state: %v", err)
	}

	log.Info("Game manager initialized", "session", m.id, "name", m.name)
	return m, nil
}

// SetTimeStamper replaces the wall clock used to stamp events
func (m *Manager) SetTimeStamper(ts TimeStamper) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.getTime = ts
}

// Submit queues an intent for the next tick. Safe to call from any goroutine.
func (m *Manager) Submit(in Intent) {
	m.inputMu.Lock()
	m.intents = append(m.intents, in)
	m.inputMu.Unlock()
}

func (m *Manager) onContact(c shared.Contact) {
	m.pending = append(m.pending, m.router.HandleContact(c)...)
}

// Tick runs one fixed step of the whole simulation
func (m *Manager) Tick(dt float64) {
	m.mutex.Lock()

	m.tick++
	m.now += dt
	m.session.Advance(m.now)
	m.router.Advance(m.now)
	m.router.Forget()
	eventsBefore := len(m.events)

	m.applyIntents()
	m.vehicle.Tick(dt)
	m.engine.Step(dt)
	m.applyRouterEvents()

	nearHole := m.course.NearHole(m.ball.Position(), m.cfg.Session.HoleRadius)
	for _, t := range m.session.Tick(m.now, m.ball.IsMoving(), nearHole) {
		m.emit(EventStatusChanged, TransitionData{From: t.From, To: t.To})
	}
	if m.session.CelebrationFinished() {
		m.ball.Reset()
		m.emit(EventBallReset, nil)
	}

	m.camera.Tick(dt, CameraTarget{Position: m.vehicle.Position(), Yaw: m.vehicle.Yaw()})

	m.snapshot = m.buildSnapshot()
	snap := m.snapshot
	publish := len(m.events) != eventsBefore ||
		m.cfg.PublishEvery <= 1 || m.tick%uint64(m.cfg.PublishEvery) == 0
	m.mutex.Unlock()

	if publish {
		if err := m.saveState(snap); err != nil {
			log.Error("Error saving game state", "error", err)
		}
	}
}

func (m *Manager) applyIntents() {
	m.inputMu.Lock()
	intents := m.intents
	m.intents = nil
	m.inputMu.Unlock()

	for _, in := range intents {
		m.applyIntent(in)
	}
}

func (m *Manager) applyIntent(in Intent) {
	switch in.Kind {
	case IntentThrottle:
		m.vehicle.SetThrottle(in.Throttle)
	case IntentSteer:
		m.vehicle.SetSteering(in.Steer)
	case IntentSwing:
		t, ok := m.session.Swing()
		if !ok {
			log.Debug("Swing ignored", "status", m.session.Status())
			return
		}
		if !in.UseAim {
			m.session.SetAim(in.Shot)
		}
		shot := m.session.Aim()
		m.emit(EventStatusChanged, TransitionData{From: t.From, To: t.To})
		if m.ball.Launch(shot) {
			m.emit(EventBallSwung, ShotData{Power: shot.Power, Angle: shot.AngleDegrees})
		}
	case IntentAdjustPower:
		m.session.AdjustPower(in.Steps)
	case IntentAdjustAngle:
		m.session.AdjustAngle(in.Steps)
	case IntentResetPosition:
		m.vehicle.Reset(m.course.VehicleStart.Vec(), m.course.VehicleYaw)
		m.emit(EventVehicleReset, nil)
	case IntentResetBall:
		m.ball.Reset()
		if t, ok := m.session.Reset(); ok {
			m.emit(EventStatusChanged, TransitionData{From: t.From, To: t.To})
		}
		m.emit(EventBallReset, nil)
	case IntentZoom:
		m.camera.Zoom(in.Zoom)
	case IntentPan:
		m.camera.Pan(in.PanX, in.PanY)
	case IntentResetCamera:
		m.camera.Reset()
	default:
		log.Warn("Unknown intent", "kind", in.Kind)
	}
}

func (m *Manager) applyRouterEvents() {
	pending := m.pending
	m.pending = nil

	for _, ev := range pending {
		switch ev.Kind {
		case RouterHit:
			t, ok := m.session.RegisterHit()
			if !ok {
				continue
			}
			shot := m.launch.ShotFromImpact(ev.VehicleVelocity)
			m.emit(EventStatusChanged, TransitionData{From: t.From, To: t.To})
			m.emit(EventBallHit, ShotData{Power: shot.Power, Angle: shot.AngleDegrees, HitCount: m.session.HitCount()})
			m.ball.Launch(shot)
		case RouterHoled:
			t, ok := m.session.Hole()
			if !ok {
				continue
			}
			m.emit(EventHoled, ImpactData{Speed: ev.ImpactSpeed})
			m.emit(EventStatusChanged, TransitionData{From: t.From, To: t.To})
		case RouterRicochet:
			m.emit(EventRicochet, ImpactData{Speed: ev.ImpactSpeed})
		case RouterLie:
			m.ball.SetLie(ev.Lie)
		}
	}
}

func (m *Manager) emit(t EventType, data interface{}) {
	m.events = append(m.events, GameEvent{
		Type:      t,
		Data:      data,
		Tick:      m.tick,
		Timestamp: m.getTime(),
	})
	if limit := m.cfg.EventHistory; limit > 0 && len(m.events) > limit {
		m.events = m.events[len(m.events)-limit:]
	}
}

func (m *Manager) buildSnapshot() Snapshot {
	session := m.session.State()
	session.ID = m.id
	session.Name = m.name

	events := make([]GameEvent, len(m.events))
	copy(events, m.events)

	return Snapshot{
		Tick:    m.tick,
		Time:    m.now,
		Session: session,
		Vehicle: m.vehicle.State(),
		Ball:    m.ball.State(),
		Camera:  m.camera.State(),
		Events:  events,
	}
}

// GetState returns a copy of the latest snapshot
func (m *Manager) GetState() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := m.snapshot
	snap.Events = make([]GameEvent, len(m.snapshot.Events))
	copy(snap.Events, m.snapshot.Events)
	return snap
}

// saveState writes the snapshot to the KV store
func (m *Manager) saveState(snap Snapshot) error {
	if m.kv == nil {
		return nil
	}

	stateJSON, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %v", err)
	}

	if _, err = m.kv.Put(m.ctx, StateKey, stateJSON); err != nil {
		return fmt.Errorf("failed to save game state to KV: %v", err)
	}
	return nil
}

// WatchState creates a watcher for game state changes
// Returns the KeyWatcher directly so caller can use its Updates() channel
func (m *Manager) WatchState(ctx context.Context) (jetstream.KeyWatcher, error) {
	if m.kv == nil {
		return nil, fmt.Errorf("no KV store configured")
	}
	watcher, err := m.kv.Watch(ctx, StateKey, jetstream.UpdatesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to create KV watcher: %v", err)
	}
	return watcher, nil
}
