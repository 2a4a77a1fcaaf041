package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
)

type M = data.M

type A = []any

type NormalizerTestSuite struct {
	suite.Suite
	n *Normalizer
}

func (s *NormalizerTestSuite) SetupTest() {
	s.n = NewNormalizer().(*Normalizer)
}

func (s *NormalizerTestSuite) TestNil() {
	doc, err := s.n.Normalize(nil)
	s.NoError(err)
	s.Equal(M{}, doc)
}

func (s *NormalizerTestSuite) TestPositionalHoist() {
	doc, err := s.n.Normalize(M{"x": 1, "0": M{"y": 2}, "1": M{"z": 3}})
	s.NoError(err)
	s.Equal(M{"x": 1, "$and": A{M{"y": 2}, M{"z": 3}}}, doc)
}

func (s *NormalizerTestSuite) TestHoistOrderIsNumeric() {
	doc, err := s.n.Normalize(M{"10": M{"c": 3}, "2": M{"b": 2}, "1": M{"a": 1}})
	s.NoError(err)
	s.Equal(M{"$and": A{M{"a": 1}, M{"b": 2}, M{"c": 3}}}, doc)
}

func (s *NormalizerTestSuite) TestMergesWithExistingAnd() {
	doc, err := s.n.Normalize(M{
		"$and": A{M{"a": 1}},
		"0":    M{"b": 2},
	})
	s.NoError(err)
	s.Equal(M{"$and": A{M{"a": 1}, M{"b": 2}}}, doc)
}

func (s *NormalizerTestSuite) TestMergesWithExistingKeyedAnd() {
	doc, err := s.n.Normalize(M{
		"$and": M{"first": M{"a": 1}},
		"0":    M{"b": 2},
	})
	s.NoError(err)
	s.Equal(M{"$and": A{M{"a": 1}, M{"b": 2}}}, doc)
}

func (s *NormalizerTestSuite) TestKeyedAndWithoutHoistKeepsKeys() {
	doc, err := s.n.Normalize(M{
		"$and": M{"first": M{"a": 1, "0": M{"b": 2}}, "second": 3},
	})
	s.NoError(err)
	s.Equal(M{
		"$and": M{
			"first":  M{"a": 1, "$and": A{M{"b": 2}}},
			"second": 3,
		},
	}, doc)
}

func (s *NormalizerTestSuite) TestDeepNesting() {
	doc, err := s.n.Normalize(M{
		"0": M{"a": 1, "0": M{"b": 2, "0": M{"c": 3}}},
	})
	s.NoError(err)
	s.Equal(M{
		"$and": A{
			M{"a": 1, "$and": A{
				M{"b": 2, "$and": A{M{"c": 3}}},
			}},
		},
	}, doc)
}

func (s *NormalizerTestSuite) TestRecursesIntoFields() {
	doc, err := s.n.Normalize(M{"field": M{"0": M{"a": 1}, "b": 2}})
	s.NoError(err)
	s.Equal(M{"field": M{"b": 2, "$and": A{M{"a": 1}}}}, doc)
}

func (s *NormalizerTestSuite) TestSkipsConnectives() {
	in := M{
		"OR":  M{"0": M{"a": 1}},
		"and": M{"1": M{"b": 1}},
		"$or": A{M{"0": M{"c": 1}}},
	}
	doc, err := s.n.Normalize(in)
	s.NoError(err)
	s.Equal(in, doc)
}

func (s *NormalizerTestSuite) TestPositionalScalarsStay() {
	in := M{"0": 5, "2": "a > b"}
	doc, err := s.n.Normalize(in)
	s.NoError(err)
	s.Equal(in, doc)
}

func (s *NormalizerTestSuite) TestPositionalListHoist() {
	doc, err := s.n.Normalize(M{
		"x":    1,
		"0":    A{M{"y": 2}, map[string]any{"1": M{"w": 4}}},
		"1":    M{"z": 3},
		"2":    A{},
		"$and": A{M{"v": 0}},
	})
	s.NoError(err)
	s.Equal(M{"x": 1, "$and": A{
		M{"v": 0},
		M{"y": 2},
		M{"$and": A{M{"w": 4}}},
		M{"z": 3},
	}}, doc)
}

func (s *NormalizerTestSuite) TestPositionalOrderedDocuments() {
	doc, err := s.n.Normalize(M{"0": bson.D{{Key: "a", Value: 1}}, "1": A{bson.D{{Key: "b", Value: 2}}}})
	s.NoError(err)
	s.Equal(M{"$and": A{M{"a": 1}, M{"b": 2}}}, doc)
}

func (s *NormalizerTestSuite) TestPositionalListOfScalars() {
	doc, err := s.n.Normalize(M{"0": A{M{"a": 1}, 5}})
	s.Nil(doc)
	var target domain.ErrPositionalValue
	s.ErrorAs(err, &target)
	s.Equal(domain.ErrPositionalValue{Key: "0", Value: 5}, target)

	_, err = s.n.Normalize(M{"a": M{"0": A{"x = y"}}})
	s.ErrorAs(err, &target)
}

func (s *NormalizerTestSuite) TestAcceptsPlainMaps() {
	doc, err := s.n.Normalize(M{"0": map[string]any{"a": map[string]any{"1": M{"b": 2}}}})
	s.NoError(err)
	s.Equal(M{"$and": A{M{"a": M{"$and": A{M{"b": 2}}}}}}, doc)
}

func (s *NormalizerTestSuite) TestIdempotent() {
	in := M{
		"x":    1,
		"0":    M{"y": 2, "1": M{"w": 4}},
		"1":    M{"z": 3},
		"OR":   M{"a": 1, "b": 2},
		"name": M{"$gt": 3},
	}
	once, err := s.n.Normalize(in)
	s.NoError(err)
	twice, err := s.n.Normalize(once)
	s.NoError(err)
	s.Equal(once, twice)
}

func (s *NormalizerTestSuite) TestDoesNotModifyInput() {
	in := M{"x": 1, "0": M{"y": 2, "0": M{"z": 3}}}
	_, err := s.n.Normalize(in)
	s.NoError(err)
	s.Equal(M{"x": 1, "0": M{"y": 2, "0": M{"z": 3}}}, in)
}

func (s *NormalizerTestSuite) TestExistingAndScalar() {
	doc, err := s.n.Normalize(M{"$and": "raw", "0": M{"a": 1}})
	s.NoError(err)
	s.Equal(M{"$and": A{"raw", M{"a": 1}}}, doc)
}

func (s *NormalizerTestSuite) TestDocumentFactoryError() {
	fail := errors.New("factory")
	n := NewNormalizer(WithDocumentFactory(func(any) (domain.Document, error) {
		return nil, fail
	}))
	_, err := n.Normalize(M{"a": 1})
	s.ErrorIs(err, fail)
}

func (s *NormalizerTestSuite) TestNestedDocumentFactoryError() {
	calls := 0
	fail := errors.New("factory")
	n := NewNormalizer(WithDocumentFactory(func(in any) (domain.Document, error) {
		calls++
		if calls > 1 {
			return nil, fail
		}
		return data.NewDocument(in)
	}))
	_, err := n.Normalize(M{"a": M{"b": 1}})
	s.ErrorIs(err, fail)
}

func TestNormalizerTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}
