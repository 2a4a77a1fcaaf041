package fieldnavigator

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
)

type FieldNavigatorTestSuite struct {
	suite.Suite
	fn *FieldNavigator
}

func (s *FieldNavigatorTestSuite) SetupTest() {
	s.fn = NewFieldNavigator().(*FieldNavigator)
}

func (s *FieldNavigatorTestSuite) TestGetAddress() {
	addr, err := s.fn.GetAddress("a.b.0")
	s.NoError(err)
	s.Equal([]string{"a", "b", "0"}, addr)

	addr, err = s.fn.GetAddress("name")
	s.NoError(err)
	s.Equal([]string{"name"}, addr)

	for _, field := range []string{"", "a..b", ".a", "a."} {
		addr, err = s.fn.GetAddress(field)
		s.ErrorAs(err, new(domain.ErrFieldName), field)
		s.Nil(addr)
	}
}

func (s *FieldNavigatorTestSuite) TestFirstLevel() {
	doc := data.M{
		"hello": "world",
		"type":  data.M{"planet": true},
	}

	value, ok, err := s.fn.GetField(doc, "hello")
	s.NoError(err)
	s.True(ok)
	s.Equal("world", value)

	value, ok, err = s.fn.GetField(doc, "type", "planet")
	s.NoError(err)
	s.True(ok)
	s.Equal(true, value)
}

func (s *FieldNavigatorTestSuite) TestNotOk() {
	doc := data.M{"hello": "world", "nil": nil}

	_, ok, err := s.fn.GetField(doc, "helloo")
	s.NoError(err)
	s.False(ok)

	_, ok, err = s.fn.GetField(doc, "hello", "world")
	s.NoError(err)
	s.False(ok)

	_, ok, err = s.fn.GetField(doc)
	s.NoError(err)
	s.False(ok)

	value, ok, err := s.fn.GetField(doc, "nil")
	s.NoError(err)
	s.True(ok)
	s.Nil(value)

	_, ok, err = s.fn.GetField(nil, "a")
	s.NoError(err)
	s.False(ok)
}

func (s *FieldNavigatorTestSuite) TestBSON() {
	doc := bson.D{
		{Key: "profile", Value: bson.M{"name": "jo"}},
		{Key: "tags", Value: bson.A{"a", bson.D{{Key: "b", Value: 2}}}},
		{Key: "plain", Value: map[string]any{"x": 1}},
	}

	value, ok, err := s.fn.GetField(doc, "profile", "name")
	s.NoError(err)
	s.True(ok)
	s.Equal("jo", value)

	value, ok, err = s.fn.GetField(doc, "tags", "1", "b")
	s.NoError(err)
	s.True(ok)
	s.Equal(2, value)

	value, ok, err = s.fn.GetField(doc, "plain", "x")
	s.NoError(err)
	s.True(ok)
	s.Equal(1, value)

	_, ok, _ = s.fn.GetField(doc, "missing")
	s.False(ok)
}

func (s *FieldNavigatorTestSuite) TestListIndex() {
	doc := data.M{"list": []any{"a", "b"}, "arr": primitive.A{"c"}}

	value, ok, err := s.fn.GetField(doc, "list", "1")
	s.NoError(err)
	s.True(ok)
	s.Equal("b", value)

	value, ok, err = s.fn.GetField(doc, "arr", "0")
	s.NoError(err)
	s.True(ok)
	s.Equal("c", value)

	for _, idx := range []string{"2", "-1", "x"} {
		_, ok, err = s.fn.GetField(doc, "list", idx)
		s.NoError(err)
		s.False(ok, idx)
	}
}

func (s *FieldNavigatorTestSuite) TestEmptyPart() {
	_, ok, err := s.fn.GetField(data.M{"a": 1}, "a", "")
	s.ErrorAs(err, new(domain.ErrFieldName))
	s.False(ok)
}

func TestFieldNavigatorTestSuite(t *testing.T) {
	suite.Run(t, new(FieldNavigatorTestSuite))
}
