package reminder

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sgoyal/zindagi/internal/logger"
	"github.com/sgoyal/zindagi/internal/validation"
)

// Registry owns the pending reminder timers, one per (user, profile).
// Registration is idempotent: scheduling an already-registered profile
// replaces its timer rather than duplicating it. After each firing the
// timer re-arms for the next day.
type Registry struct {
	checker *Checker

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewRegistry(checker *Checker) *Registry {
	return &Registry{
		checker: checker,
		timers:  make(map[string]*time.Timer),
	}
}

func timerKey(userID, profileName string) string {
	return userID + "/" + profileName
}

// Schedule arms (or re-arms) the daily trigger for one profile.
func (r *Registry) Schedule(userID, profileName string, hour, minute int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduleLocked(userID, profileName, hour, minute)
}

func (r *Registry) scheduleLocked(userID, profileName string, hour, minute int) {
	key := timerKey(userID, profileName)

	if existing, ok := r.timers[key]; ok {
		existing.Stop()
	}

	fire := NextFire(r.checker.now(), hour, minute)
	r.timers[key] = time.AfterFunc(time.Until(fire), func() {
		if err := r.checker.Check(userID, profileName); err != nil {
			logger.Error("reminder check failed", "profile", profileName, "error", err)
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		// Only re-arm if the trigger has not been cancelled meanwhile.
		if _, ok := r.timers[key]; ok {
			r.scheduleLocked(userID, profileName, hour, minute)
		}
	})

	logger.Info("reminder scheduled", "profile", profileName, "at", fire.Format(time.RFC3339))
}

// Cancel removes the pending trigger for one profile, if any.
func (r *Registry) Cancel(userID, profileName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := timerKey(userID, profileName)
	if t, ok := r.timers[key]; ok {
		t.Stop()
		delete(r.timers, key)
		logger.Info("reminder cancelled", "profile", profileName)
	}
}

// CancelAll stops every pending trigger.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, t := range r.timers {
		t.Stop()
		delete(r.timers, key)
	}
}

// Pending returns the keys of registered triggers, sorted.
func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.timers))
	for key := range r.timers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// RescheduleAll re-registers triggers for every profile of the user that
// has notifications enabled. This is the restart path: pending timers do
// not survive the process, so the daemon calls this on startup. Profiles
// with an unparsable notification time fall back to the default.
func (r *Registry) RescheduleAll(userID string) (int, error) {
	profiles, err := r.checker.Store.ListProfiles(userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range profiles {
		if !p.NotificationEnabled {
			continue
		}
		hour, minute := validation.ParseNotificationTime(p.NotificationTime)
		r.Schedule(userID, p.Name, hour, minute)
		count++
	}

	return count, nil
}

// Sync reconciles pending triggers with the stored profiles: enabled
// profiles are (re)armed and triggers for disabled or deleted profiles are
// cancelled. The daemon runs this periodically so settings changed from
// another process take effect without a restart.
func (r *Registry) Sync(userID string) (int, error) {
	profiles, err := r.checker.Store.ListProfiles(userID)
	if err != nil {
		return 0, err
	}

	enabled := make(map[string]bool)
	count := 0
	for _, p := range profiles {
		if !p.NotificationEnabled {
			continue
		}
		enabled[timerKey(userID, p.Name)] = true
		hour, minute := validation.ParseNotificationTime(p.NotificationTime)
		r.Schedule(userID, p.Name, hour, minute)
		count++
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for key, t := range r.timers {
		if !strings.HasPrefix(key, userID+"/") {
			continue
		}
		if !enabled[key] {
			t.Stop()
			delete(r.timers, key)
		}
	}

	return count, nil
}
