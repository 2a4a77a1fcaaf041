package optionbuilder

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
)

type M = data.M

type OptionBuilderTestSuite struct {
	suite.Suite
	ob domain.OptionBuilder
}

func (s *OptionBuilderTestSuite) SetupTest() {
	s.ob = NewOptionBuilder()
}

func (s *OptionBuilderTestSuite) ptr(n int64) *int64 { return &n }

func (s *OptionBuilderTestSuite) build(bag domain.QueryOptions, caller domain.FindOptions) domain.FindOptions {
	res, err := s.ob.Build(bag, caller)
	s.Require().NoError(err)
	return res
}

func (s *OptionBuilderTestSuite) TestEmpty() {
	s.Equal(domain.FindOptions{}, s.build(domain.QueryOptions{}, domain.FindOptions{}))
}

func (s *OptionBuilderTestSuite) TestOrderAndPage() {
	res := s.build(domain.QueryOptions{
		Order: map[string]any{"name": "desc"},
		Limit: 10,
		Page:  3,
	}, domain.FindOptions{})
	s.Equal(domain.FindOptions{
		Sort:  domain.Sort{{Key: "name", Order: -1}},
		Limit: s.ptr(10),
		Skip:  s.ptr(20),
	}, res)
}

func (s *OptionBuilderTestSuite) TestOrderDirections() {
	res := s.build(domain.QueryOptions{
		Order: M{"a": "DESC", "b": "asc", "c": -1, "d": 1, "e": "whatever", "f": "-1"},
	}, domain.FindOptions{})
	s.Equal(domain.Sort{
		{Key: "a", Order: -1},
		{Key: "b", Order: 1},
		{Key: "c", Order: -1},
		{Key: "d", Order: 1},
		{Key: "e", Order: 1},
		{Key: "f", Order: -1},
	}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestOrderList() {
	res := s.build(domain.QueryOptions{
		Order: []any{"name DESC", "age", "first name", "created asc"},
	}, domain.FindOptions{})
	s.Equal(domain.Sort{
		{Key: "name", Order: -1},
		{Key: "age", Order: 1},
		{Key: "first name", Order: 1},
		{Key: "created", Order: 1},
	}, res.Sort)

	res = s.build(domain.QueryOptions{Order: []string{"b desc"}}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "b", Order: -1}}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestOrderString() {
	res := s.build(domain.QueryOptions{Order: "name desc, age,"}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "name", Order: -1}, {Key: "age", Order: 1}}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestOrderUnsupported() {
	for _, order := range []any{42, true, []int{1}, struct{ Name string }{"desc"}} {
		res, err := s.ob.Build(domain.QueryOptions{Order: order}, domain.FindOptions{})
		s.Equal(domain.FindOptions{}, res)
		s.ErrorAs(err, new(domain.ErrOrderType))
	}
}

func (s *OptionBuilderTestSuite) TestOrderTypedMaps() {
	res := s.build(domain.QueryOptions{Order: map[string]string{"name": "desc", "age": "asc"}}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "age", Order: 1}, {Key: "name", Order: -1}}, res.Sort)

	res = s.build(domain.QueryOptions{Order: bson.M{"b": -1}}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "b", Order: -1}}, res.Sort)

	res = s.build(domain.QueryOptions{Order: &map[string]int{"c": -5}}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "c", Order: -1}}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestOrderOrderedDocuments() {
	res := s.build(domain.QueryOptions{
		Order: bson.D{{Key: "b", Value: "desc"}, {Key: "a", Value: "asc"}, {Key: "c", Value: -1}},
	}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "b", Order: -1}, {Key: "a", Order: 1}, {Key: "c", Order: -1}}, res.Sort)

	res = s.build(domain.QueryOptions{
		Order: []primitive.E{{Key: "z", Value: 1}, {Key: "y", Value: "DESC"}, {Key: "z", Value: -1}},
	}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "z", Order: 1}, {Key: "y", Order: -1}}, res.Sort)

	res = s.build(domain.QueryOptions{
		Order: domain.Sort{{Key: "q", Order: -7}, {Key: "p", Order: 0}},
	}, domain.FindOptions{})
	s.Equal(domain.Sort{{Key: "q", Order: -1}, {Key: "p", Order: 1}}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestCallerSortTakesPrecedence() {
	res := s.build(
		domain.QueryOptions{Order: M{"name": "desc", "age": "desc"}},
		domain.NewFindOptions(domain.WithSort(domain.Sort{{Key: "name", Order: 5}, {Key: "x", Order: -3}})),
	)
	s.Equal(domain.Sort{
		{Key: "name", Order: 1},
		{Key: "x", Order: -1},
		{Key: "age", Order: -1},
	}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestCallerSortWithoutOrder() {
	res := s.build(domain.QueryOptions{},
		domain.NewFindOptions(domain.WithSort(domain.Sort{{Key: "a", Order: 0}, {Key: "a", Order: -1}})))
	s.Equal(domain.Sort{{Key: "a", Order: 1}}, res.Sort)
}

func (s *OptionBuilderTestSuite) TestCallerLimitKept() {
	res := s.build(domain.QueryOptions{Limit: 10, Page: 2},
		domain.NewFindOptions(domain.WithLimit(5)))
	s.Equal(s.ptr(5), res.Limit)
	s.Equal(s.ptr(5), res.Skip)
}

func (s *OptionBuilderTestSuite) TestCallerSkipKept() {
	res := s.build(domain.QueryOptions{Limit: 10, Page: 4},
		domain.NewFindOptions(domain.WithSkip(1)))
	s.Equal(s.ptr(10), res.Limit)
	s.Equal(s.ptr(1), res.Skip)
}

func (s *OptionBuilderTestSuite) TestPageWithoutLimit() {
	res := s.build(domain.QueryOptions{Page: 4}, domain.FindOptions{})
	s.Nil(res.Limit)
	s.Nil(res.Skip)
}

func (s *OptionBuilderTestSuite) TestFirstPage() {
	res := s.build(domain.QueryOptions{Limit: 10, Page: 1}, domain.FindOptions{})
	s.Equal(s.ptr(10), res.Limit)
	s.Nil(res.Skip)
}

func (s *OptionBuilderTestSuite) TestDefaultLimit() {
	s.ob = NewOptionBuilder(WithDefaultLimit(50))
	res := s.build(domain.QueryOptions{Page: 2}, domain.FindOptions{})
	s.Equal(s.ptr(50), res.Limit)
	s.Equal(s.ptr(50), res.Skip)

	res = s.build(domain.QueryOptions{Limit: 3}, domain.FindOptions{})
	s.Equal(s.ptr(3), res.Limit)
}

func (s *OptionBuilderTestSuite) TestProjection() {
	res := s.build(domain.QueryOptions{Fields: []string{"name", "age"}}, domain.FindOptions{})
	s.Equal(M{"name": 1, "age": 1}, res.Projection)

	res = s.build(domain.QueryOptions{Fields: []string{"name"}},
		domain.NewFindOptions(domain.WithProjection(M{"x": 0})))
	s.Equal(M{"x": 0}, res.Projection)
}

func (s *OptionBuilderTestSuite) TestCallerNotModified() {
	sort := domain.Sort{{Key: "a", Order: 7}}
	caller := domain.NewFindOptions(domain.WithSort(sort))
	s.build(domain.QueryOptions{Order: "b", Limit: 2, Page: 2}, caller)
	s.Equal(domain.Sort{{Key: "a", Order: 7}}, sort)
	s.Nil(caller.Limit)
	s.Nil(caller.Skip)
}

func TestOptionBuilderTestSuite(t *testing.T) {
	suite.Run(t, new(OptionBuilderTestSuite))
}
