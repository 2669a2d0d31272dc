package postgres_test

import (
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/postgres"
)

func (suite *DBTestSuite) TestEnumScope() {
	// Arrange
	suite.seed(
		Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"},
		Person{Name: "bia", RelationshipStatus: 3, Tier: "SILVER"},
		Person{Name: "caio", RelationshipStatus: 1, Tier: "SILVER"},
	)

	for _, tc := range []struct {
		name     string
		scope    postgres.Scope
		expected []string
		err      error
	}{
		{"married", postgres.EnumScope(suite.status, "married"), []string{"ana", "caio"}, nil},
		{"single", postgres.EnumScope(suite.status, "single"), []string{"bia"}, nil},
		{"nobody-divorced", postgres.EnumScope(suite.status, "divorced"), nil, enumerate.ErrNotExist},
		{"unknown-key", postgres.EnumScope(suite.status, "engaged"), nil, enumerate.ErrNotExist},
		{"nil-attribute", postgres.EnumScope(nil, "married"), nil, enumerate.ErrMissingData},
		{"in", postgres.In(suite.status, "single", "divorced"), []string{"bia"}, nil},
		{"in-strings", postgres.In(suite.tier, "silver"), []string{"bia", "caio"}, nil},
		{"in-unknown-key", postgres.In(suite.status, "single", "engaged"), nil, enumerate.ErrNotExist},
		{"in-no-keys", postgres.In(suite.status), nil, enumerate.ErrMissingData},
	} {
		suite.Run(tc.name, func() {
			// Act
			var people []Person
			err := suite.db.Model(&Person{}).Scope(tc.scope).Order("name").Find(&people)

			// Assert
			suite.Require().ErrorIs(err, tc.err)

			var names []string
			for _, p := range people {
				names = append(names, p.Name)
			}
			suite.Require().Equal(tc.expected, names)
		})
	}
}

func (suite *DBTestSuite) TestScopes() {
	// Arrange
	suite.seed(
		Person{Name: "ana", RelationshipStatus: 1, Tier: "GOLD"},
		Person{Name: "bia", RelationshipStatus: 2, Tier: "GOLD"},
	)

	// Act
	scopes := postgres.Scopes(suite.status)

	// Assert
	suite.Require().Len(scopes, 3)
	suite.Require().Empty(postgres.Scopes(suite.tier))
	suite.Require().Empty(postgres.Scopes(nil))

	// Act
	n, err := suite.db.Model(&Person{}).Scope(scopes["Divorced"]).Count()

	// Assert
	suite.Require().Nil(err)
	suite.Require().EqualValues(1, n)

	// Act
	var p Person
	err = suite.db.Scope(scopes["Married"]).Scope(postgres.EnumScope(suite.tier, "gold")).First(&p)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal("ana", p.Name)

	// Act
	err = suite.db.Model(&Person{}).Scope(scopes["Single"]).Update(postgres.Updates{"tier": "SILVER"})

	// Assert
	suite.Require().ErrorIs(err, enumerate.ErrNotExist)
}
