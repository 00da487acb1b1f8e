package state

import (
	"errors"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/curves"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/qdm12/reprint"
	"sort"
	"sync"
)

var (
	ErrUnknownFan   = errors.New("unknown fan")
	ErrUnknownCurve = errors.New("unknown curve")
)

// FanKey addresses a fan by the 1-based number of its controller and its channel index
type FanKey struct {
	Controller uint8
	Fan        uint8
}

func (k FanKey) String() string {
	return fmt.Sprintf("%d:%d", k.Controller, k.Fan)
}

// FanSnapshot is a detached copy of the runtime state of one fan
type FanSnapshot struct {
	Controller  uint8                   `json:"controller"`
	Fan         uint8                   `json:"fan"`
	Name        string                  `json:"name"`
	ActiveCurve string                  `json:"activeCurve"`
	Curves      map[string]curves.Curve `json:"curves"`
}

// fanState is guarded by its own lock, so operations on different fans never contend
type fanState struct {
	mu     sync.RWMutex
	key    FanKey
	name   string
	active string
	curves map[string]curves.Curve
}

// Store holds the mutable runtime state of every fan: the active curve
// and a working copy of each assignable curve.
type Store struct {
	fans cmap.ConcurrentMap[string, *fanState]
}

func NewEmptyStore() *Store {
	return &Store{
		fans: cmap.New[*fanState](),
	}
}

// NewStore populates a store from the topology defaults
func NewStore(config *configuration.Configuration) (*Store, error) {
	store := NewEmptyStore()
	for i, controller := range config.Controllers {
		for _, fan := range controller.Fans {
			curveSet, err := config.FanCurves(fan)
			if err != nil {
				return nil, &configuration.ConfigError{Section: "Controller", Id: controller.Id, Reason: err.Error()}
			}
			key := FanKey{Controller: uint8(i + 1), Fan: uint8(fan.Idx)}
			if err := store.Register(key, fan.Name, fan.ActiveCurve, curveSet); err != nil {
				return nil, &configuration.ConfigError{Section: "Controller", Id: controller.Id, Reason: err.Error()}
			}
		}
	}
	return store, nil
}

// Register adds a fan to the store, the active curve must be part of curveSet
func (s *Store) Register(key FanKey, name string, active string, curveSet map[string]curves.Curve) error {
	if _, ok := curveSet[active]; !ok {
		return fmt.Errorf("%w: fan %s has no curve %q", ErrUnknownCurve, key, active)
	}

	working := make(map[string]curves.Curve, len(curveSet))
	for id, curve := range curveSet {
		working[id] = curve.Clone()
	}

	entry := &fanState{
		key:    key,
		name:   name,
		active: active,
		curves: working,
	}
	if !s.fans.SetIfAbsent(key.String(), entry) {
		return fmt.Errorf("fan %s is already registered", key)
	}
	return nil
}

func (s *Store) get(key FanKey) (*fanState, error) {
	entry, ok := s.fans.Get(key.String())
	if !ok {
		return nil, fmt.Errorf("%w: controller %d fan %d", ErrUnknownFan, key.Controller, key.Fan)
	}
	return entry, nil
}

// GetActive returns the active curve id of the fan and a snapshot of its definition
func (s *Store) GetActive(key FanKey) (string, curves.Curve, error) {
	entry, err := s.get(key)
	if err != nil {
		return "", curves.Curve{}, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return entry.active, entry.curves[entry.active].Clone(), nil
}

// SetActive switches the active curve of the fan
func (s *Store) SetActive(key FanKey, curveId string) error {
	entry, err := s.get(key)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if _, ok := entry.curves[curveId]; !ok {
		return fmt.Errorf("%w: %q is not assignable to fan %s", ErrUnknownCurve, curveId, key)
	}
	entry.active = curveId
	return nil
}

// UpdateCurveData replaces the working copy of one of the fan's curves.
// The curve is validated first and must keep its kind, on any error
// the state is left untouched. The active curve is not changed.
func (s *Store) UpdateCurveData(key FanKey, curveId string, curve curves.Curve) error {
	if err := curves.Validate(curve); err != nil {
		return err
	}

	entry, err := s.get(key)
	if err != nil {
		return err
	}

	replacement := curve.Clone()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	existing, ok := entry.curves[curveId]
	if !ok {
		return fmt.Errorf("%w: %q is not assignable to fan %s", ErrUnknownCurve, curveId, key)
	}
	if !existing.SameKind(replacement) {
		return &curves.ValidationError{
			Reason: fmt.Sprintf("curve %q is a %s and can not be replaced by a %s", curveId, existing.Kind, replacement.Kind),
		}
	}
	entry.curves[curveId] = replacement
	return nil
}

// Curves returns a deep copy of all curves assignable to the fan
func (s *Store) Curves(key FanKey) (map[string]curves.Curve, error) {
	entry, err := s.get(key)
	if err != nil {
		return nil, err
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return reprint.This(entry.curves).(map[string]curves.Curve), nil
}

// Fan returns a detached copy of one fan, the active curve and the curve set
// are read under the same lock.
func (s *Store) Fan(key FanKey) (FanSnapshot, error) {
	entry, err := s.get(key)
	if err != nil {
		return FanSnapshot{}, err
	}
	return entry.snapshot(), nil
}

func (f *fanState) snapshot() FanSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FanSnapshot{
		Controller:  f.key.Controller,
		Fan:         f.key.Fan,
		Name:        f.name,
		ActiveCurve: f.active,
		Curves:      reprint.This(f.curves).(map[string]curves.Curve),
	}
}

// Keys returns all registered fans, ordered by controller and fan index
func (s *Store) Keys() []FanKey {
	var keys []FanKey
	for _, entry := range s.fans.Items() {
		keys = append(keys, entry.key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Controller != keys[j].Controller {
			return keys[i].Controller < keys[j].Controller
		}
		return keys[i].Fan < keys[j].Fan
	})
	return keys
}

// Snapshot returns a detached copy of every fan, ordered like Keys.
// Each fan is copied under its own lock, there is no global point in time.
func (s *Store) Snapshot() []FanSnapshot {
	keys := s.Keys()
	result := make([]FanSnapshot, 0, len(keys))
	for _, key := range keys {
		entry, err := s.get(key)
		if err != nil {
			continue
		}
		snapshot := entry.snapshot()
		result = append(result, snapshot)
	}
	return result
}
