// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build integration

package routefile

import (
	"context"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/consul"

	"rivaas.dev/routebuilder"
)

// ConsulTestSuite loads route tables from a real Consul agent.
type ConsulTestSuite struct {
	suite.Suite
	consul *consul.ConsulContainer
	client *api.Client
}

func (s *ConsulTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := consul.Run(ctx, "hashicorp/consul:1.15", testcontainers.WithLogger(log.TestLogger(s.T())))
	s.Require().NoError(err)
	s.consul = container

	endpoint, err := container.ApiEndpoint(ctx)
	s.Require().NoError(err)

	config := api.DefaultConfig()
	config.Address = endpoint
	s.client, err = api.NewClient(config)
	s.Require().NoError(err)
}

func (s *ConsulTestSuite) TearDownSuite() {
	if s.consul != nil {
		s.Require().NoError(s.consul.Terminate(context.Background()))
	}
}

func TestConsulTestSuite(t *testing.T) {
	suite.Run(t, new(ConsulTestSuite))
}

func (s *ConsulTestSuite) TestLoadConsul_YAML() {
	key := "routes/yaml"
	_, err := s.client.KV().Put(&api.KVPair{Key: key, Value: []byte(`
defaults:
  meta:
    layout: main
routes:
  - name: home
    path: /
  - name: post
    path: /post/:id
`)}, nil)
	s.Require().NoError(err)

	defs, err := LoadConsul(context.Background(), s.client.KV(), key, FormatYAML)
	s.Require().NoError(err)
	s.Equal([]routebuilder.Definition{
		{Name: "home", Path: "/", Meta: map[string]any{"layout": "main"}},
		{Name: "post", Path: "/post/:id", Meta: map[string]any{"layout": "main"}},
	}, defs)

	r, err := routebuilder.New(routebuilder.WithRoutes(defs...))
	s.Require().NoError(err)
	m, ok := r.Match("/post/9")
	s.True(ok)
	s.Equal("post", m.Name)
}

func (s *ConsulTestSuite) TestLoadConsul_MissingKey() {
	_, err := LoadConsul(context.Background(), s.client.KV(), "routes/missing", FormatJSON)
	s.ErrorIs(err, ErrKeyNotFound)
}

func (s *ConsulTestSuite) TestLoadConsul_FromEnvironment() {
	endpoint, err := s.consul.ApiEndpoint(context.Background())
	s.Require().NoError(err)
	s.T().Setenv("CONSUL_HTTP_ADDR", endpoint)

	key := "routes/toml"
	_, err = s.client.KV().Put(&api.KVPair{Key: key, Value: []byte("[[routes]]\nname = \"home\"\npath = \"/\"\n")}, nil)
	s.Require().NoError(err)

	kv, err := NewConsulKV()
	s.Require().NoError(err)

	defs, err := LoadConsul(context.Background(), kv, key, FormatTOML)
	s.Require().NoError(err)
	s.Equal([]routebuilder.Definition{{Name: "home", Path: "/"}}, defs)
}
