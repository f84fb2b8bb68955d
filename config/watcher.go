/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultWatchDelay collapses the burst of events editors produce when saving a file.
const DefaultWatchDelay = 200 * time.Millisecond

// Watch reloads the rule whenever the configuration file changes and blocks until ctx is done.
// The directory is watched so that files replaced by rename are followed.
func (m *Manager) Watch(ctx context.Context, delay time.Duration) error {
	fs, ok := m.source.(*FileSource)
	if !ok {
		return errors.Errorf("%s configuration source can not be watched", m.source.GetName())
	}
	path, err := filepath.Abs(fs.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher fault")
	}
	defer watcher.Close()
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watch '%s' fault", filepath.Dir(path))
	}
	logger.Infof("watching sharding configuration file '%s'", path)

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debugf("configuration file event: %s", event)
			timer.Reset(delay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("configuration file watcher error: %v", err)
		case <-timer.C:
			_ = m.Reload()
		}
	}
}
