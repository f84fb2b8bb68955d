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
	"strings"

	"go.uber.org/config"
)

const (
	FileProvider   = "file"
	StaticProvider = "static"
)

// Source loads the raw sharding configuration, every call reads it again.
type Source interface {
	GetName() string
	Load() (*config.YAML, error)
}

// FileSource reads a yaml file, it is the only source that can be watched.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (c *FileSource) GetName() string {
	return FileProvider
}

func (c *FileSource) Load() (*config.YAML, error) {
	return config.NewYAML(config.File(c.Path), config.Permissive())
}

// StaticSource serves yaml content kept in memory.
type StaticSource struct {
	content string
}

func NewStaticSource(content string) *StaticSource {
	return &StaticSource{content: content}
}

func (c *StaticSource) GetName() string {
	return StaticProvider
}

func (c *StaticSource) Load() (*config.YAML, error) {
	return config.NewYAML(config.Source(strings.NewReader(c.content)), config.Permissive())
}

type yamlSource struct {
	yaml *config.YAML
}

func (c *yamlSource) GetName() string {
	return StaticProvider
}

func (c *yamlSource) Load() (*config.YAML, error) {
	return c.yaml, nil
}
