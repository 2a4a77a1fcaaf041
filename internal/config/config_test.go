package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) SetupTest() {
	s.T().Chdir(s.T().TempDir())
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := Load("")
	s.NoError(err)
	s.Equal(Config{
		Mongo: Mongo{URI: "mongodb://localhost:27017", Database: "test"},
		Query: Query{PrimaryKey: "_id", RawPrefix: "this"},
		Log:   Log{Level: "info"},
	}, cfg)
}

func (s *ConfigTestSuite) TestEnv() {
	s.T().Setenv("MOFIND_MONGO_URI", "mongodb://db:27017")
	s.T().Setenv("MOFIND_MONGO_COLLECTION", "people")
	s.T().Setenv("MOFIND_QUERY_LIMIT", "25")
	s.T().Setenv("MOFIND_LOG_DEVELOPMENT", "true")

	cfg, err := Load("")
	s.NoError(err)
	s.Equal("mongodb://db:27017", cfg.Mongo.URI)
	s.Equal("people", cfg.Mongo.Collection)
	s.Equal(int64(25), cfg.Query.Limit)
	s.True(cfg.Log.Development)
}

func (s *ConfigTestSuite) TestFile() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(
		"mongo:\n  database: shop\n  collection: orders\nquery:\n  rawprefix: doc\n",
	), 0o644))
	s.T().Setenv("MOFIND_MONGO_COLLECTION", "customers")

	cfg, err := Load(path)
	s.NoError(err)
	s.Equal("shop", cfg.Mongo.Database)
	s.Equal("customers", cfg.Mongo.Collection)
	s.Equal("doc", cfg.Query.RawPrefix)
	s.Equal("_id", cfg.Query.PrimaryKey)
}

func (s *ConfigTestSuite) TestWorkingDirectoryFile() {
	s.Require().NoError(os.WriteFile("mofind.yaml", []byte("log:\n  level: debug\n"), 0o644))
	cfg, err := Load("")
	s.NoError(err)
	s.Equal("debug", cfg.Log.Level)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}

func (s *ConfigTestSuite) TestInvalidValue() {
	s.T().Setenv("MOFIND_QUERY_LIMIT", "many")
	_, err := Load("")
	s.Error(err)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
