package alarm

import (
	"context"
	"time"

	"remindr/internal/logs"
	"remindr/internal/reminders/data"
)

// Clock compares the wall clock with the stored reminders once per tick and
// opens the session on a match.
type Clock struct {
	store    Reminders
	session  *Session
	interval time.Duration

	// OnTrigger, if set, is called after Check opens a session.
	OnTrigger func(data.Reminder)

	// reminders already opened in minute; reset when the minute changes
	minute time.Time
	rang   map[string]struct{}
}

func NewClock(store Reminders, session *Session, interval time.Duration) *Clock {
	return &Clock{
		store:    store,
		session:  session,
		interval: interval,
		rang:     map[string]struct{}{},
	}
}

// Check runs one tick at now. Reminders are scanned in collection order and
// at most one session opens per tick; other reminders due in the same
// minute are skipped, not queued. A reminder that already rang in this
// minute is not reopened after being dismissed, so reminders sharing a
// minute ring once each.
func (c *Clock) Check(now time.Time) (data.Reminder, bool) {
	if c.session.Ringing() {
		return data.Reminder{}, false
	}

	clock := data.ClockString(now)
	minute := now.Truncate(time.Minute)
	if !minute.Equal(c.minute) {
		c.minute = minute
		c.rang = map[string]struct{}{}
	}

	for _, r := range c.store.List() {
		if r.Time != clock {
			continue
		}
		if _, ok := c.rang[r.ID]; ok {
			continue
		}
		if !c.session.Open(r) {
			return data.Reminder{}, false
		}
		c.rang[r.ID] = struct{}{}
		if c.OnTrigger != nil {
			c.OnTrigger(r)
		}
		return r, true
	}
	return data.Reminder{}, false
}

// Start ticks every interval until ctx is cancelled.
func (c *Clock) Start(ctx context.Context) {
	logs.Logger.Printf("Alarm clock started (every %s)", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logs.Logger.Println("Alarm clock stopped")
			return
		case now := <-ticker.C:
			c.Check(now)
		}
	}
}
