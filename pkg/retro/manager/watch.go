package manager

import (
	"github.com/fsnotify/fsnotify"

	"github.com/cloudretro/retrofront/pkg/config"
)

// Watch rescans the core store on filesystem changes, so externally
// installed or removed core libraries are picked up without a restart.
// It blocks until stop is closed.
func (m *Manager) Watch(stop <-chan struct{}, onChange func([]config.CoreInfo)) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.log.Error().Err(err).Msg("core watcher has failed")
		return
	}
	defer func() { _ = watcher.Close() }()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Create || event.Op == fsnotify.Remove {
					installed, err := m.GetInstalled(m.arch.Ext)
					if err != nil {
						m.log.Error().Err(err).Msg("core rescan error")
						continue
					}
					onChange(installed)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	if err = watcher.Add(m.Conf.GetCoresStorePath()); err != nil {
		m.log.Error().Err(err).Msg("core watch error")
	}
	<-stop
	m.log.Info().Msg("Core watch has ended")
}
