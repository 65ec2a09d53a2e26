package updater

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/brasslaw/vigia/internal/config"
)

// StartCron registers the daily sync triggers and starts the scheduler.
// Times are "HH:MM" entries from configuration; each fired run carries a
// "cron-HHh" source label. The returned scheduler is already running.
func (u *Updater) StartCron(datajudTimes, comunicaTimes []string) (*cron.Cron, error) {
	c := cron.New()

	for _, hm := range datajudTimes {
		spec, source, err := cronEntry(hm)
		if err != nil {
			return nil, fmt.Errorf("updater: cron datajud %q: %w", hm, err)
		}
		if _, err := c.AddFunc(spec, func() {
			if _, err := u.RunMovementSync(context.Background(), source); err != nil {
				log.Printf("updater: cron movement sync: %v", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("updater: cron datajud %q: %w", hm, err)
		}
	}

	for _, hm := range comunicaTimes {
		spec, source, err := cronEntry(hm)
		if err != nil {
			return nil, fmt.Errorf("updater: cron comunica %q: %w", hm, err)
		}
		if _, err := c.AddFunc(spec, func() {
			if _, err := u.RunComunicaSync(context.Background(), source); err != nil {
				log.Printf("updater: cron comunica sync: %v", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("updater: cron comunica %q: %w", hm, err)
		}
	}

	c.Start()
	return c, nil
}

func cronEntry(hm string) (spec, source string, err error) {
	hour, minute, err := config.ParseClock(hm)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), fmt.Sprintf("cron-%02dh", hour), nil
}
